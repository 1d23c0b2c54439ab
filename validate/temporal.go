package validate

import "time"

// temporalKey identifies one timestamp stream.
type temporalKey struct {
	symbol [8]byte
	source uint8
}

// Temporal tracks the most recently seen timestamp per (symbol, source)
// stream and rejects messages that step backwards by more than the
// clock-skew tolerance.
//
// "Last seen" is deliberate: every observation overwrites the stored value,
// including late ones that passed only within tolerance. A burst of
// slightly-late messages therefore cannot cascade into rejections the way a
// max-ever watermark would cause.
//
// The map grows with the number of distinct keys; evict retired streams
// with ForgetSymbol. Not internally synchronized.
type Temporal struct {
	last      map[temporalKey]uint64
	tolerance uint64 // nanoseconds
}

// NewTemporal creates a temporal validator with the given clock-skew
// tolerance.
func NewTemporal(tolerance time.Duration) *Temporal {
	return &Temporal{
		last:      make(map[temporalKey]uint64),
		tolerance: uint64(tolerance.Nanoseconds()),
	}
}

// ValidateMonotonic checks ts against the stream's last seen timestamp.
// The first observation for a key always passes. Pass or fail, ts becomes
// the new "last" for the stream.
func (t *Temporal) ValidateMonotonic(symbol [8]byte, source uint8, ts uint64) error {
	key := temporalKey{symbol: symbol, source: source}

	last, seen := t.last[key]
	t.last[key] = ts

	if !seen {
		return nil
	}
	floor := last - t.tolerance
	if last < t.tolerance {
		floor = 0
	}
	if ts < floor {
		return &TemporalError{Prev: last, Current: ts}
	}
	return nil
}

// ForgetSymbol evicts one stream's state.
func (t *Temporal) ForgetSymbol(symbol [8]byte, source uint8) {
	delete(t.last, temporalKey{symbol: symbol, source: source})
}

// Tracked returns the number of streams currently held.
func (t *Temporal) Tracked() int { return len(t.last) }
