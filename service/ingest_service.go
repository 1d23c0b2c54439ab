package service

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"synapse/infra/arena"
	"synapse/ingest"
)

// ErrTransferBounds reports a boundary transfer larger than the buffer.
var ErrTransferBounds = errors.New("service: transfer exceeds buffer length")

// IngestService is the only write entry point into the ingestion core. It
// owns the accumulated stream, drains every complete frame on each push and
// hands ready buffers to whoever pops them.
//
// A popped buffer's memory stays valid exactly as long as the buffer is
// retained; the consumer releases it with Buffer.Close.
type IngestService struct {
	pipe *ingest.Pipeline
	log  *zap.Logger

	// One lock covers the stream: the intended deployment is a single
	// producer, but the interface tolerates concurrent pushers.
	mu     sync.Mutex
	stream *ingest.Stream
	closed bool
}

// NewIngestService wires the handle surface over a pipeline.
func NewIngestService(pipe *ingest.Pipeline, log *zap.Logger) *IngestService {
	return &IngestService{
		pipe:   pipe,
		log:    log,
		stream: ingest.NewStream(64 * 1024),
	}
}

// Push appends raw feed bytes and consumes every complete frame now
// available. Incomplete tails stay buffered for the next push. Invalid
// headers are counted and, with resync enabled, skipped; without resync a
// push stops at the first invalid header so the caller can intervene.
func (s *IngestService) Push(raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("service: push on closed ingestor")
	}
	s.stream.Append(raw)

	for {
		err := s.pipe.Process(s.stream)
		switch {
		case err == nil:
			continue
		case errors.Is(err, ingest.ErrIncomplete):
			return nil
		case errors.Is(err, ingest.ErrInvalidHeader):
			// With resync the stream has advanced to the next magic
			// candidate and the scan can continue. Without it the
			// cursor is pinned; retrying would loop forever.
			if !s.pipe.Resync() {
				return err
			}
			continue
		default:
			return err
		}
	}
}

// Pop returns the next ready buffer without blocking.
func (s *IngestService) Pop() (*arena.Buffer, bool) {
	select {
	case buf, ok := <-s.pipe.Out():
		return buf, ok
	default:
		return nil, false
	}
}

// Stats returns the fixed-layout counters snapshot.
func (s *IngestService) Stats() ingest.StatsSnapshot {
	return s.pipe.Stats()
}

// Close shuts the ingestor down. Buffers already popped stay valid until
// their holders close them.
func (s *IngestService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.pipe.Close()
	s.log.Info("ingest service closed")
}

// CopyOut copies n bytes from the buffer into dst. The transfer size must
// not exceed the buffer's length; the destination may be any memory the
// boundary owns, including a staging region for device uploads.
func CopyOut(buf *arena.Buffer, dst []byte, n int) error {
	if n < 0 || n > buf.Len() || n > len(dst) {
		return ErrTransferBounds
	}
	copy(dst[:n], buf.Bytes()[:n])
	return nil
}

// CopyIn copies n bytes from src into the buffer, within the same bound.
func CopyIn(buf *arena.Buffer, src []byte, n int) error {
	if n < 0 || n > buf.Len() || n > len(src) {
		return ErrTransferBounds
	}
	copy(buf.Bytes()[:n], src[:n])
	return nil
}
