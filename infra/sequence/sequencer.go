// Package sequence issues monotonic ingest sequence numbers.
package sequence

import "sync/atomic"

// Sequencer stamps accepted messages with strictly increasing IDs so
// downstream consumers can detect gaps and reorderings after the lossy
// delivery queue.
type Sequencer struct {
	next atomic.Uint64
}

// New creates a sequencer. IDs start at start+1.
func New(start uint64) *Sequencer {
	s := &Sequencer{}
	s.next.Store(start)
	return s
}

// Next returns the next sequence ID.
func (s *Sequencer) Next() uint64 {
	return s.next.Add(1)
}

// Current returns the last issued sequence ID.
func (s *Sequencer) Current() uint64 {
	return s.next.Load()
}
