package validate

import (
	"time"

	"synapse/wire"
)

// tradeSource keys trade temporal streams; there is a single ingest source
// in this deployment.
const tradeSource uint8 = 0

// Validator composes the full per-message check suite. Checksum runs first
// so corrupted payloads surface as checksum errors rather than structural
// ones. Owned by exactly one validation context.
type Validator struct {
	checksum *Checksum
	bounds   Bounds
	temporal *Temporal
	symbols  *Symbols
}

// New builds a composite validator.
func New(bounds Bounds, symbols *Symbols, skewTolerance time.Duration) *Validator {
	return &Validator{
		checksum: NewChecksum(),
		bounds:   bounds,
		temporal: NewTemporal(skewTolerance),
		symbols:  symbols,
	}
}

// ValidateMessage checks one parsed message: payload checksum against the
// header field, recognized msg_type, header timestamp window, then
// type-specific structure.
func (v *Validator) ValidateMessage(h wire.Header, payload []byte) error {
	if err := v.checksum.Validate(payload, h.Checksum); err != nil {
		return err
	}

	switch h.MsgType {
	case wire.MsgTrade, wire.MsgQuote, wire.MsgHeartbeat, wire.MsgSnapshot:
	default:
		return &UnknownTypeError{MsgType: h.MsgType}
	}

	if err := v.bounds.ValidateTimestamp(h.Timestamp); err != nil {
		return err
	}

	switch h.MsgType {
	case wire.MsgTrade:
		return v.validateTrade(payload)
	case wire.MsgQuote:
		return v.validateQuote(payload)
	}
	return nil
}

func (v *Validator) validateTrade(payload []byte) error {
	trade, err := wire.DecodeTrade(payload)
	if err != nil {
		return ErrCorruptFormat
	}

	if err := v.symbols.Validate(trade.Symbol); err != nil {
		return err
	}

	price := wire.ToDecimal(trade.Price)
	qty := wire.ToDecimal(trade.Quantity)

	if err := v.bounds.ValidatePrice(price, "price"); err != nil {
		return err
	}
	if err := v.bounds.ValidateQuantity(qty, "quantity"); err != nil {
		return err
	}
	return v.temporal.ValidateMonotonic(trade.Symbol, tradeSource, trade.Timestamp)
}

// Quotes carry no temporal check: a quote is a restatement of the book, not
// an event, and books may legally republish unchanged state.
func (v *Validator) validateQuote(payload []byte) error {
	quote, err := wire.DecodeQuote(payload)
	if err != nil {
		return ErrCorruptFormat
	}

	if err := v.symbols.Validate(quote.Symbol); err != nil {
		return err
	}

	bid := wire.ToDecimal(quote.BidPrice)
	ask := wire.ToDecimal(quote.AskPrice)

	// A crossed quote is rejected regardless of checksum validity.
	if quote.BidPrice >= quote.AskPrice {
		return &BoundsError{Field: "bid_price", Value: bid}
	}

	if err := v.bounds.ValidatePrice(bid, "bid_price"); err != nil {
		return err
	}
	return v.bounds.ValidatePrice(ask, "ask_price")
}

// ForgetSymbol evicts one trade stream's temporal state.
func (v *Validator) ForgetSymbol(symbol [8]byte) {
	v.temporal.ForgetSymbol(symbol, tradeSource)
}
