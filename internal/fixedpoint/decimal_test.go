package fixedpoint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRescale(t *testing.T) {
	tests := []struct {
		name    string
		in      Decimal
		target  uint32
		want    Decimal
		wantErr error
	}{
		{
			name:   "scale up multiplies mantissa",
			in:     New(500_000, 6),
			target: 8,
			want:   New(50_000_000, 8),
		},
		{
			name:   "scale down truncates",
			in:     New(500_123, 6),
			target: 4,
			want:   New(5_001, 4),
		},
		{
			name:   "same scale is identity",
			in:     New(42, 2),
			target: 2,
			want:   New(42, 2),
		},
		{
			name:   "scale down loses sub-precision digits",
			in:     New(1_999, 3),
			target: 0,
			want:   New(1, 0),
		},
		{
			name:    "scale up overflowing 64 bits",
			in:      New(math.MaxUint64/10+1, 0),
			target:  2,
			wantErr: ErrOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Rescale(tt.target)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRescaleRoundTrip(t *testing.T) {
	// Up then back down with no truncation loss must restore the mantissa.
	orig := New(1_000_000, 4)
	up, err := orig.Rescale(9)
	require.NoError(t, err)
	down, err := up.Rescale(4)
	require.NoError(t, err)
	assert.Equal(t, orig, down)
}

func TestAdd(t *testing.T) {
	sum, err := New(1_000_000, 4).Add(New(500, 4))
	require.NoError(t, err)
	assert.Equal(t, New(1_000_500, 4), sum)

	_, err = New(1, 4).Add(New(1, 6))
	assert.ErrorIs(t, err, ErrScaleMismatch)

	_, err = New(math.MaxUint64, 0).Add(New(1, 0))
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestSub(t *testing.T) {
	diff, err := New(1_000_000, 4).Sub(New(1_000, 4))
	require.NoError(t, err)
	assert.Equal(t, New(999_000, 4), diff)

	_, err = New(1_000, 4).Sub(New(1_001, 4))
	assert.ErrorIs(t, err, ErrNegativeResult)

	_, err = New(1_000, 4).Sub(New(1, 2))
	assert.ErrorIs(t, err, ErrScaleMismatch)
}

func TestMulKeepsLeftScale(t *testing.T) {
	// Scale is not summed: 1000@4 * 5000@4 = 5,000,000@4.
	product, err := New(1_000, 4).Mul(New(5_000, 4))
	require.NoError(t, err)
	assert.Equal(t, New(5_000_000, 4), product)

	_, err = New(1_000, 4).Mul(New(5_000, 6))
	assert.ErrorIs(t, err, ErrScaleMismatch)

	_, err = New(math.MaxUint64, 0).Mul(New(2, 0))
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestDivTruncates(t *testing.T) {
	quotient, err := New(5_000_000, 4).Div(New(10_000, 4))
	require.NoError(t, err)
	assert.Equal(t, New(500, 4), quotient)

	quotient, err = New(7, 0).Div(New(2, 0))
	require.NoError(t, err)
	assert.Equal(t, New(3, 0), quotient)

	_, err = New(1, 0).Div(New(0, 0))
	assert.ErrorIs(t, err, ErrDivideByZero)

	_, err = New(1, 2).Div(New(1, 0))
	assert.ErrorIs(t, err, ErrScaleMismatch)
}

func TestString(t *testing.T) {
	assert.Equal(t, "100.0000", New(1_000_000, 4).String())
	assert.Equal(t, "0.500000", New(500_000, 6).String())
	assert.Equal(t, "7", New(7, 0).String())
}
