package arena

import "sync/atomic"

// Buffer is a zero-copy view into arena memory. Creating a buffer performs
// exactly one allocation; the buffer then shares ownership of the arena so
// the underlying region outlives the arena handle if needed.
//
// Bytes may be written by at most one writer at a time. That contract is
// caller discipline, not enforced here.
type Buffer struct {
	data  []byte
	arena *Arena

	// Seq is the ingest sequence stamped by the pipeline on accepted
	// messages. Zero for buffers allocated outside the pipeline.
	Seq uint64

	closed atomic.Bool
}

// NewBuffer allocates n bytes from a and retains the arena.
func NewBuffer(n int, a *Arena) (*Buffer, error) {
	data, err := a.Allocate(n)
	if err != nil {
		return nil, err
	}
	a.retain()
	return &Buffer{data: data, arena: a}, nil
}

// Bytes returns the bounds-limited view into arena memory. Valid until
// Close.
func (b *Buffer) Bytes() []byte { return b.data }

// Len returns the requested length of the view.
func (b *Buffer) Len() int { return len(b.data) }

// Close releases the buffer's share of the arena. Idempotent. The view
// must not be used afterwards.
func (b *Buffer) Close() {
	if b.closed.CompareAndSwap(false, true) {
		b.data = nil
		b.arena.release()
	}
}
