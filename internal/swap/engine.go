package swap

import (
	"errors"
	"fmt"

	"github.com/paper-swap/paper_swap/internal/currency"
	"github.com/paper-swap/paper_swap/internal/fixedpoint"
	"github.com/paper-swap/paper_swap/internal/oracle"
	"github.com/paper-swap/paper_swap/internal/wallet"
)

var (
	// ErrUnsupportedExchange occurs when the ordered pair is not on the
	// allow-list of tradable pairs.
	ErrUnsupportedExchange = errors.New("unsupported exchange pair")

	// ErrInsufficientAmount occurs when the requested amount exceeds the raw
	// mantissa of the base currency balance.
	ErrInsufficientAmount = errors.New("insufficient amount")
)

// Receipt describes the outcome of an executed swap.
type Receipt struct {
	Pair     currency.Pair
	Amount   uint64
	Rate     fixedpoint.Decimal
	Credited fixedpoint.Decimal
	Debited  fixedpoint.Decimal
}

// Execute converts amount units of pair.Base into pair.Quote on the wallet,
// using the supplied oracle quote. The amount is expressed in the base
// currency's smallest stored unit (its raw mantissa at the current scale).
//
// The rate is first normalized to the base balance's scale: scaling up
// multiplies the rate mantissa, scaling down divides it, truncating. The
// credit is then amount * rate with the extra 10^scale factor divided back
// out, since Mul keeps the left operand's scale instead of summing scales.
//
// Execute validates everything before touching the wallet; on any error the
// wallet is unchanged. On success both balance slots are overwritten
// together.
func Execute(w *wallet.Wallet, pair currency.Pair, amount uint64, quote oracle.Quote) (Receipt, error) {
	if !pair.Supported() {
		return Receipt{}, fmt.Errorf("%s: %w", pair, ErrUnsupportedExchange)
	}

	base := w.Balance(pair.Base)
	if amount > base.Mantissa {
		return Receipt{}, fmt.Errorf("%d > %d %s: %w", amount, base.Mantissa, pair.Base, ErrInsufficientAmount)
	}

	rate, err := quote.Rate.Rescale(base.Scale)
	if err != nil {
		return Receipt{}, fmt.Errorf("normalize rate: %w", err)
	}

	debit := fixedpoint.New(amount, rate.Scale)
	newBase, err := base.Sub(debit)
	if err != nil {
		return Receipt{}, fmt.Errorf("debit %s: %w", pair.Base, err)
	}

	raw, err := debit.Mul(rate)
	if err != nil {
		return Receipt{}, fmt.Errorf("apply rate: %w", err)
	}
	divisor, err := fixedpoint.Pow10(base.Scale, rate.Scale)
	if err != nil {
		return Receipt{}, fmt.Errorf("apply rate: %w", err)
	}
	credit, err := raw.Div(divisor)
	if err != nil {
		return Receipt{}, fmt.Errorf("apply rate: %w", err)
	}

	newQuote, err := w.Balance(pair.Quote).Add(credit)
	if err != nil {
		return Receipt{}, fmt.Errorf("credit %s: %w", pair.Quote, err)
	}

	w.Balances[pair.Base] = newBase
	w.Balances[pair.Quote] = newQuote

	return Receipt{
		Pair:     pair,
		Amount:   amount,
		Rate:     rate,
		Credited: credit,
		Debited:  debit,
	}, nil
}
