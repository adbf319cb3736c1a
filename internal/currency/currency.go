package currency

import (
	"errors"
	"fmt"
)

// ErrUnknownSymbol occurs when a ticker outside the supported set is used.
// There is deliberately no default currency to fall through to.
var ErrUnknownSymbol = errors.New("unknown currency symbol")

// Symbol identifies one of the supported currencies. The set is closed and
// case-sensitive; construct values through Parse rather than casting free
// text.
type Symbol string

const (
	BTC  Symbol = "btc"
	DAI  Symbol = "dai"
	ETH  Symbol = "eth"
	EUR  Symbol = "eur"
	SUI  Symbol = "sui"
	USD  Symbol = "usd"
	USDC Symbol = "usdc"
	WBTC Symbol = "wbtc"
)

// Symbols lists every supported currency in stable order.
func Symbols() []Symbol {
	return []Symbol{BTC, DAI, ETH, EUR, SUI, USD, USDC, WBTC}
}

// Parse validates a ticker against the supported set.
func Parse(s string) (Symbol, error) {
	switch Symbol(s) {
	case BTC, DAI, ETH, EUR, SUI, USD, USDC, WBTC:
		return Symbol(s), nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownSymbol)
}

// Pair is an ordered currency pair: Base is sold, Quote is bought.
type Pair struct {
	Base  Symbol
	Quote Symbol
}

// supportedPairs is the fixed allow-list of tradable pairs.
var supportedPairs = map[Pair]struct{}{
	{BTC, USD}:  {},
	{ETH, DAI}:  {},
	{ETH, USD}:  {},
	{SUI, BTC}:  {},
	{SUI, EUR}:  {},
	{SUI, USD}:  {},
	{USDC, USD}: {},
	{WBTC, ETH}: {},
}

// Supported reports whether the ordered pair is tradable. Order matters:
// sui/usd is listed, usd/sui is not.
func (p Pair) Supported() bool {
	_, ok := supportedPairs[p]
	return ok
}

// String renders the pair in base/quote form.
func (p Pair) String() string {
	return fmt.Sprintf("%s/%s", p.Base, p.Quote)
}

// QuoteKey builds the oracle lookup key for this pair and price source,
// e.g. "sui/usd-binance".
func (p Pair) QuoteKey(source string) string {
	return fmt.Sprintf("%s/%s-%s", p.Base, p.Quote, source)
}
