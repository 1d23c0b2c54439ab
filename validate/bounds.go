package validate

import "fmt"

// Timestamp window shared by all presets: 2020-01-01 .. 2030-01-01 UTC,
// nanoseconds since epoch.
const (
	minTimestampNanos uint64 = 1_577_836_800_000_000_000
	maxTimestampNanos uint64 = 1_893_456_000_000_000_000
)

// Bounds holds the closed intervals a message's numeric fields must fall
// into. Values are decimal readings (wire fixed-point divided by the scale).
type Bounds struct {
	MinPrice     float64
	MaxPrice     float64
	MinQuantity  float64
	MaxQuantity  float64
	MinTimestamp uint64
	MaxTimestamp uint64
}

// CryptoBounds allows sub-satoshi granularity on both price and quantity.
func CryptoBounds() Bounds {
	return Bounds{
		MinPrice:     0.00000001,
		MaxPrice:     10_000_000,
		MinQuantity:  0.00000001,
		MaxQuantity:  10_000_000,
		MinTimestamp: minTimestampNanos,
		MaxTimestamp: maxTimestampNanos,
	}
}

// StockBounds uses cent price granularity and whole-share quantities.
func StockBounds() Bounds {
	return Bounds{
		MinPrice:     0.01,
		MaxPrice:     10_000_000,
		MinQuantity:  1,
		MaxQuantity:  1_000_000_000,
		MinTimestamp: minTimestampNanos,
		MaxTimestamp: maxTimestampNanos,
	}
}

// Preset resolves a named bounds preset from configuration.
func Preset(name string) (Bounds, error) {
	switch name {
	case "crypto":
		return CryptoBounds(), nil
	case "stocks":
		return StockBounds(), nil
	default:
		return Bounds{}, fmt.Errorf("validate: unknown bounds preset %q", name)
	}
}

// ValidatePrice checks price against the closed price interval.
func (b Bounds) ValidatePrice(price float64, field string) error {
	if price < b.MinPrice || price > b.MaxPrice {
		return &BoundsError{Field: field, Value: price}
	}
	return nil
}

// ValidateQuantity checks qty against the closed quantity interval.
func (b Bounds) ValidateQuantity(qty float64, field string) error {
	if qty < b.MinQuantity || qty > b.MaxQuantity {
		return &BoundsError{Field: field, Value: qty}
	}
	return nil
}

// ValidateTimestamp checks ts against the calendar window.
func (b Bounds) ValidateTimestamp(ts uint64) error {
	if ts < b.MinTimestamp || ts > b.MaxTimestamp {
		return &TimestampError{Timestamp: ts}
	}
	return nil
}
