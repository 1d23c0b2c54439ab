package wire

import "encoding/binary"

// PriceScale converts between on-wire fixed-point integers and decimals.
// Prices and quantities travel as int64 scaled by 1e8; floating point never
// touches the wire.
const PriceScale = 100_000_000

// TradeSize is the fixed on-wire size of a Trade payload.
// 41 bytes of fields plus 7 reserved bytes.
const TradeSize = 48

// QuoteSize is the fixed on-wire size of a Quote payload.
// 48 bytes of fields plus 8 reserved bytes.
const QuoteSize = 56

// Trade sides.
const (
	SideBuy  uint8 = 0
	SideSell uint8 = 1
)

// Trade is an executed fill.
//
// Layout: symbol [8]byte | price i64 | quantity i64 | timestamp u64 |
// side u8 | trade_id u64 | reserved [7]byte.
type Trade struct {
	Symbol    [8]byte
	Price     int64
	Quantity  int64
	Timestamp uint64
	Side      uint8
	TradeID   uint64
}

// Quote is a top-of-book update.
//
// Layout: symbol [8]byte | bid_price i64 | bid_quantity i64 | ask_price i64 |
// ask_quantity i64 | timestamp u64 | reserved [8]byte.
type Quote struct {
	Symbol      [8]byte
	BidPrice    int64
	BidQuantity int64
	AskPrice    int64
	AskQuantity int64
	Timestamp   uint64
}

// ToDecimal converts a fixed-point wire value to its decimal reading.
func ToDecimal(v int64) float64 {
	return float64(v) / PriceScale
}

// FromDecimal converts a decimal value to its fixed-point wire form.
func FromDecimal(v float64) int64 {
	return int64(v * PriceScale)
}

// DecodeTrade reads a Trade from the front of b.
func DecodeTrade(b []byte) (Trade, error) {
	if len(b) < TradeSize {
		return Trade{}, ErrShortBuffer
	}
	var t Trade
	copy(t.Symbol[:], b[0:8])
	t.Price = int64(binary.LittleEndian.Uint64(b[8:16]))
	t.Quantity = int64(binary.LittleEndian.Uint64(b[16:24]))
	t.Timestamp = binary.LittleEndian.Uint64(b[24:32])
	t.Side = b[32]
	t.TradeID = binary.LittleEndian.Uint64(b[33:41])
	return t, nil
}

// Encode writes the trade into b, which must hold TradeSize bytes.
// Reserved bytes are zeroed.
func (t Trade) Encode(b []byte) error {
	if len(b) < TradeSize {
		return ErrShortBuffer
	}
	copy(b[0:8], t.Symbol[:])
	binary.LittleEndian.PutUint64(b[8:16], uint64(t.Price))
	binary.LittleEndian.PutUint64(b[16:24], uint64(t.Quantity))
	binary.LittleEndian.PutUint64(b[24:32], t.Timestamp)
	b[32] = t.Side
	binary.LittleEndian.PutUint64(b[33:41], t.TradeID)
	for i := 41; i < TradeSize; i++ {
		b[i] = 0
	}
	return nil
}

// DecodeQuote reads a Quote from the front of b.
func DecodeQuote(b []byte) (Quote, error) {
	if len(b) < QuoteSize {
		return Quote{}, ErrShortBuffer
	}
	var q Quote
	copy(q.Symbol[:], b[0:8])
	q.BidPrice = int64(binary.LittleEndian.Uint64(b[8:16]))
	q.BidQuantity = int64(binary.LittleEndian.Uint64(b[16:24]))
	q.AskPrice = int64(binary.LittleEndian.Uint64(b[24:32]))
	q.AskQuantity = int64(binary.LittleEndian.Uint64(b[32:40]))
	q.Timestamp = binary.LittleEndian.Uint64(b[40:48])
	return q, nil
}

// Encode writes the quote into b, which must hold QuoteSize bytes.
// Reserved bytes are zeroed.
func (q Quote) Encode(b []byte) error {
	if len(b) < QuoteSize {
		return ErrShortBuffer
	}
	copy(b[0:8], q.Symbol[:])
	binary.LittleEndian.PutUint64(b[8:16], uint64(q.BidPrice))
	binary.LittleEndian.PutUint64(b[16:24], uint64(q.BidQuantity))
	binary.LittleEndian.PutUint64(b[24:32], uint64(q.AskPrice))
	binary.LittleEndian.PutUint64(b[32:40], uint64(q.AskQuantity))
	binary.LittleEndian.PutUint64(b[40:48], q.Timestamp)
	for i := 48; i < QuoteSize; i++ {
		b[i] = 0
	}
	return nil
}

// MakeSymbol packs s into the zero-padded 8-byte wire form.
// Longer strings are truncated.
func MakeSymbol(s string) [8]byte {
	var sym [8]byte
	copy(sym[:], s)
	return sym
}

// SymbolString trims trailing zero padding from a wire symbol.
func SymbolString(sym [8]byte) string {
	n := len(sym)
	for n > 0 && sym[n-1] == 0 {
		n--
	}
	return string(sym[:n])
}
