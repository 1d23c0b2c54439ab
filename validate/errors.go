package validate

import (
	"errors"
	"fmt"
)

// ErrCorruptFormat reports a payload too short for its declared type.
var ErrCorruptFormat = errors.New("validate: corrupted payload format")

// ChecksumError reports a CRC-32 mismatch between the header field and the
// payload contents.
type ChecksumError struct {
	Expected   uint32
	Calculated uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("validate: checksum mismatch: expected=%#08x calculated=%#08x",
		e.Expected, e.Calculated)
}

// TimestampError reports a header timestamp outside the configured window.
type TimestampError struct {
	Timestamp uint64
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("validate: timestamp out of range: %d", e.Timestamp)
}

// BoundsError reports a numeric field outside its closed interval.
type BoundsError struct {
	Field string
	Value float64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("validate: out of bounds: field=%s value=%g", e.Field, e.Value)
}

// UnknownTypeError reports an unrecognized header msg_type code.
type UnknownTypeError struct {
	MsgType uint8
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("validate: unknown message type: %d", e.MsgType)
}

// TemporalError reports a timestamp older than the last one seen for its
// (symbol, source) key by more than the clock-skew tolerance.
type TemporalError struct {
	Prev    uint64
	Current uint64
}

func (e *TemporalError) Error() string {
	return fmt.Sprintf("validate: temporal order violated: prev=%d current=%d",
		e.Prev, e.Current)
}

// SymbolError reports a symbol that fails the charset rule or, in whitelist
// mode, is not in the allowed set.
type SymbolError struct {
	Symbol string
	Reason string
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("validate: invalid symbol %q: %s", e.Symbol, e.Reason)
}
