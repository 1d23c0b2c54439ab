package ingest

// Stream accumulates raw feed bytes and advances only when the pipeline
// consumes a complete frame. Unconsumed bytes stay in place, so a partial
// frame simply waits for the next append.
type Stream struct {
	buf []byte
	off int
}

// NewStream creates a stream with an initial capacity hint.
func NewStream(capacity int) *Stream {
	return &Stream{buf: make([]byte, 0, capacity)}
}

// Append adds raw bytes to the tail of the stream.
func (s *Stream) Append(p []byte) {
	// Reclaim consumed space before growing.
	if s.off > 0 && s.off >= len(s.buf)-s.off {
		n := copy(s.buf, s.buf[s.off:])
		s.buf = s.buf[:n]
		s.off = 0
	}
	s.buf = append(s.buf, p...)
}

// Len returns the number of unconsumed bytes.
func (s *Stream) Len() int { return len(s.buf) - s.off }

// Bytes returns the unconsumed view. Valid until the next Append or
// Advance.
func (s *Stream) Bytes() []byte { return s.buf[s.off:] }

// Advance consumes n bytes from the front.
func (s *Stream) Advance(n int) {
	if n > s.Len() {
		n = s.Len()
	}
	s.off += n
	if s.off == len(s.buf) {
		s.buf = s.buf[:0]
		s.off = 0
	}
}
