package fixedpoint

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrScaleMismatch occurs when an operation requires both operands to carry
	// the same number of decimal places and they do not.
	ErrScaleMismatch = errors.New("scale mismatch")

	// ErrNegativeResult indicates a subtraction would drive the mantissa below
	// zero. Balances never go negative.
	ErrNegativeResult = errors.New("negative result")

	// ErrOverflow indicates the mantissa no longer fits in 64 bits.
	ErrOverflow = errors.New("mantissa overflow")

	// ErrDivideByZero indicates division by a zero mantissa.
	ErrDivideByZero = errors.New("divide by zero")
)

// Decimal is a scaled-integer decimal: the represented quantity is
// Mantissa / 10^Scale. It is an immutable value type; operations return new
// values. All arithmetic is exact integer arithmetic, division truncates.
type Decimal struct {
	Mantissa uint64
	Scale    uint32
}

// New builds a Decimal from a raw mantissa and decimal-place count.
func New(mantissa uint64, scale uint32) Decimal {
	return Decimal{Mantissa: mantissa, Scale: scale}
}

// Rescale returns the same quantity expressed at target decimal places.
// Scaling up multiplies the mantissa; scaling down divides, truncating any
// digits below the new precision.
func (d Decimal) Rescale(target uint32) (Decimal, error) {
	switch {
	case target > d.Scale:
		factor, err := pow10(target - d.Scale)
		if err != nil {
			return Decimal{}, err
		}
		mantissa, err := mulCheck(d.Mantissa, factor)
		if err != nil {
			return Decimal{}, err
		}
		return Decimal{Mantissa: mantissa, Scale: target}, nil
	case target < d.Scale:
		factor, err := pow10(d.Scale - target)
		if err != nil {
			return Decimal{}, err
		}
		return Decimal{Mantissa: d.Mantissa / factor, Scale: target}, nil
	default:
		return d, nil
	}
}

// Add sums two values of identical scale.
func (d Decimal) Add(other Decimal) (Decimal, error) {
	if d.Scale != other.Scale {
		return Decimal{}, fmt.Errorf("add %d vs %d: %w", d.Scale, other.Scale, ErrScaleMismatch)
	}
	sum := d.Mantissa + other.Mantissa
	if sum < d.Mantissa {
		return Decimal{}, ErrOverflow
	}
	return Decimal{Mantissa: sum, Scale: d.Scale}, nil
}

// Sub subtracts other from d. Both operands must carry the same scale and
// the result must stay non-negative.
func (d Decimal) Sub(other Decimal) (Decimal, error) {
	if d.Scale != other.Scale {
		return Decimal{}, fmt.Errorf("sub %d vs %d: %w", d.Scale, other.Scale, ErrScaleMismatch)
	}
	if other.Mantissa > d.Mantissa {
		return Decimal{}, ErrNegativeResult
	}
	return Decimal{Mantissa: d.Mantissa - other.Mantissa, Scale: d.Scale}, nil
}

// Mul multiplies the mantissas and keeps the left operand's scale. The scale
// is deliberately not summed; callers divide the extra 10^scale factor back
// out themselves (see the swap engine). Operands must share a scale.
func (d Decimal) Mul(other Decimal) (Decimal, error) {
	if d.Scale != other.Scale {
		return Decimal{}, fmt.Errorf("mul %d vs %d: %w", d.Scale, other.Scale, ErrScaleMismatch)
	}
	product, err := mulCheck(d.Mantissa, other.Mantissa)
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{Mantissa: product, Scale: d.Scale}, nil
}

// Div divides the mantissas, truncating, keeping the left operand's scale.
// Operands must share a scale.
func (d Decimal) Div(other Decimal) (Decimal, error) {
	if d.Scale != other.Scale {
		return Decimal{}, fmt.Errorf("div %d vs %d: %w", d.Scale, other.Scale, ErrScaleMismatch)
	}
	if other.Mantissa == 0 {
		return Decimal{}, ErrDivideByZero
	}
	return Decimal{Mantissa: d.Mantissa / other.Mantissa, Scale: d.Scale}, nil
}

// IsZero reports whether the represented quantity is zero.
func (d Decimal) IsZero() bool {
	return d.Mantissa == 0
}

// Dec converts to a shopspring decimal for display and JSON rendering.
// Ledger arithmetic never goes through this path.
func (d Decimal) Dec() decimal.Decimal {
	return decimal.New(int64(d.Mantissa), -int32(d.Scale))
}

// String renders the quantity with its full stored precision.
func (d Decimal) String() string {
	return d.Dec().StringFixed(int32(d.Scale))
}

// Pow10 returns 10^exp as a Decimal mantissa at the given scale. Used to
// build divisor constants without repeating overflow checks at call sites.
func Pow10(exp, scale uint32) (Decimal, error) {
	mantissa, err := pow10(exp)
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{Mantissa: mantissa, Scale: scale}, nil
}

// maxPow10 is the largest power of ten representable in uint64 (10^19).
const maxPow10 = 19

func pow10(exp uint32) (uint64, error) {
	if exp > maxPow10 {
		return 0, ErrOverflow
	}
	result := uint64(1)
	for i := uint32(0); i < exp; i++ {
		result *= 10
	}
	return result, nil
}

func mulCheck(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	product := a * b
	if product/a != b {
		return 0, ErrOverflow
	}
	return product, nil
}
