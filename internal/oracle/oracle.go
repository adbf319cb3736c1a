package oracle

import (
	"context"
	"errors"
	"time"

	"github.com/paper-swap/paper_swap/internal/fixedpoint"
)

// ErrQuoteUnavailable indicates the price source has no data for the
// requested key. Callers must treat this as a failure, never as a zero rate.
var ErrQuoteUnavailable = errors.New("quote unavailable")

// DefaultSource is the price source quotes are keyed under when none is
// configured.
const DefaultSource = "binance"

// Quote is a point-in-time rate observation for a currency pair from a named
// source. Rate is a fixed-point value; its scale is whatever precision the
// source publishes at and is normalized downstream by the swap engine.
type Quote struct {
	Key    string
	Source string
	Rate   fixedpoint.Decimal
	AsOf   time.Time
}

// Oracle supplies the latest known rate for a pair key built via
// currency.Pair.QuoteKey.
type Oracle interface {
	LatestQuote(ctx context.Context, key string) (Quote, error)
}

// Publisher accepts new quote observations. Stores that buffer quotes
// implement both sides.
type Publisher interface {
	Publish(ctx context.Context, quote Quote) error
}

// Store buffers published quotes and serves the latest one per key.
type Store interface {
	Oracle
	Publisher
}
