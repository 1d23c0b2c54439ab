package ingest

import (
	"bytes"
	"encoding/binary"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"synapse/infra/arena"
	"synapse/infra/sequence"
	"synapse/wire"
)

// Framing outcomes. Both are expected under normal streaming: Incomplete
// means retry once more bytes arrive; InvalidHeader means the frame at the
// cursor was rejected and counted.
var (
	ErrIncomplete    = errors.New("ingest: incomplete message")
	ErrInvalidHeader = errors.New("ingest: invalid header")
)

// slowProcessing is the per-message latency budget; exceeding it emits a
// non-fatal diagnostic.
const slowProcessing = 100 * time.Microsecond

// Config sets the pipeline's resource and policy knobs.
type Config struct {
	// ArenaCapacity is the zero-copy region size in bytes.
	ArenaCapacity int
	// QueueSize is the bounded delivery queue length in messages.
	QueueSize int
	// Resync controls recovery after an invalid header: when true the
	// stream skips forward to the next magic occurrence, when false the
	// stream is left untouched and the caller decides.
	Resync bool
}

// Pipeline is the single-copy ingestion path: stream bytes in, arena-backed
// buffers out.
type Pipeline struct {
	arena *atomic.Pointer[arena.Arena]
	seq   *sequence.Sequencer
	out   chan *arena.Buffer
	log   *zap.Logger

	resync bool

	mu    sync.Mutex
	stats pipelineStats
}

type pipelineStats struct {
	messagesReceived uint64
	bytesReceived    uint64
	parseErrors      uint64
	messagesDropped  uint64
	lastMessageTime  time.Time

	// One-second throughput window.
	windowStart time.Time
	windowCount uint64
	lastRate    float64
}

// StatsSnapshot is a read-only copy of the pipeline counters plus arena
// utilization.
type StatsSnapshot struct {
	MessagesReceived  uint64
	BytesReceived     uint64
	ParseErrors       uint64
	MessagesDropped   uint64
	LastSeq           uint64
	LastMessageTime   time.Time
	ArenaUsed         uint64
	ArenaCapacity     uint64
	MessagesPerSecond float64
}

// New creates a pipeline with a fresh arena and bounded queue.
func New(cfg Config, log *zap.Logger) (*Pipeline, error) {
	a, err := arena.New(cfg.ArenaCapacity)
	if err != nil {
		return nil, err
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1
	}

	p := &Pipeline{
		arena:  &atomic.Pointer[arena.Arena]{},
		seq:    sequence.New(0),
		out:    make(chan *arena.Buffer, cfg.QueueSize),
		log:    log,
		resync: cfg.Resync,
	}
	p.arena.Store(a)

	log.Info("ingest pipeline ready",
		zap.Uint64("arena_capacity", a.Capacity()),
		zap.Int("queue_size", cfg.QueueSize),
		zap.Bool("resync", cfg.Resync),
	)
	return p, nil
}

// Process consumes at most one complete frame from the front of s.
//
// Returns ErrIncomplete with the stream untouched when fewer bytes than a
// header, or than header+payload, are available. Returns ErrInvalidHeader
// after counting a parse error; with resync enabled the stream has then
// been advanced to the next magic candidate, otherwise it is untouched.
func (p *Pipeline) Process(s *Stream) error {
	start := time.Now()

	if s.Len() < wire.HeaderSize {
		return ErrIncomplete
	}

	header, _ := wire.DecodeHeader(s.Bytes())
	if !header.Valid() {
		p.mu.Lock()
		p.stats.parseErrors++
		p.mu.Unlock()
		if p.resync {
			skipped := p.resyncToMagic(s)
			p.log.Warn("invalid header, resyncing",
				zap.Uint32("magic", header.Magic),
				zap.Int("skipped_bytes", skipped),
			)
		}
		return ErrInvalidHeader
	}

	totalSize := header.TotalSize()
	if s.Len() < totalSize {
		return ErrIncomplete
	}

	// The single copy: frame bytes into a fresh arena-backed buffer.
	buf, err := arena.NewBuffer(totalSize, p.arena.Load())
	if err != nil {
		return err
	}
	copy(buf.Bytes(), s.Bytes()[:totalSize])
	s.Advance(totalSize)
	buf.Seq = p.seq.Next()

	select {
	case p.out <- buf:
	default:
		// Lossy under pressure: drop, never stall the ingest thread.
		buf.Close()
		p.mu.Lock()
		p.stats.messagesDropped++
		p.mu.Unlock()
		p.log.Warn("delivery queue full, message dropped",
			zap.Uint64("seq", buf.Seq),
			zap.Int("size", totalSize),
		)
	}

	if elapsed := time.Since(start); elapsed > slowProcessing {
		p.log.Warn("slow message processing",
			zap.Duration("elapsed", elapsed),
		)
	}

	p.mu.Lock()
	p.stats.messagesReceived++
	p.stats.bytesReceived += uint64(totalSize)
	p.stats.lastMessageTime = time.Now()
	p.rotateRateWindowLocked(time.Now())
	p.stats.windowCount++
	p.mu.Unlock()

	return nil
}

// resyncToMagic skips one byte, then forward to the next occurrence of the
// magic sequence. Without a full match it keeps the last three bytes, which
// may hold a magic prefix. Returns the number of bytes skipped.
func (p *Pipeline) resyncToMagic(s *Stream) int {
	var magic [4]byte
	binary.LittleEndian.PutUint32(magic[:], wire.Magic)

	skipped := 1
	s.Advance(1)
	if idx := bytes.Index(s.Bytes(), magic[:]); idx >= 0 {
		s.Advance(idx)
		return skipped + idx
	}
	if keep := len(magic) - 1; s.Len() > keep {
		n := s.Len() - keep
		s.Advance(n)
		return skipped + n
	}
	return skipped
}

// Out exposes the bounded delivery queue. Multiple consumers may receive
// concurrently.
func (p *Pipeline) Out() <-chan *arena.Buffer { return p.out }

// Resync reports whether invalid-header recovery is enabled.
func (p *Pipeline) Resync() bool { return p.resync }

// Stats returns a snapshot of counters and arena utilization.
func (p *Pipeline) Stats() StatsSnapshot {
	a := p.arena.Load()

	p.mu.Lock()
	p.rotateRateWindowLocked(time.Now())
	snap := StatsSnapshot{
		MessagesReceived:  p.stats.messagesReceived,
		BytesReceived:     p.stats.bytesReceived,
		ParseErrors:       p.stats.parseErrors,
		MessagesDropped:   p.stats.messagesDropped,
		LastMessageTime:   p.stats.lastMessageTime,
		MessagesPerSecond: p.stats.lastRate,
	}
	p.mu.Unlock()

	snap.LastSeq = p.seq.Current()
	snap.ArenaUsed = a.Used()
	snap.ArenaCapacity = a.Capacity()
	return snap
}

// rotateRateWindowLocked folds a finished one-second window into the
// reported rate. Caller holds p.mu.
func (p *Pipeline) rotateRateWindowLocked(now time.Time) {
	if p.stats.windowStart.IsZero() {
		p.stats.windowStart = now
		return
	}
	elapsed := now.Sub(p.stats.windowStart)
	if elapsed < time.Second {
		return
	}
	p.stats.lastRate = float64(p.stats.windowCount) / elapsed.Seconds()
	p.stats.windowStart = now
	p.stats.windowCount = 0
}

// Recycle swaps in a fresh arena of the given capacity, recovering from
// exhaustion. The old region stays alive until its outstanding buffers
// close. There is no partial reclamation.
func (p *Pipeline) Recycle(capacity int) error {
	fresh, err := arena.New(capacity)
	if err != nil {
		return err
	}
	old := p.arena.Swap(fresh)
	old.Close()
	p.log.Info("arena recycled",
		zap.Uint64("old_used", old.Used()),
		zap.Uint64("new_capacity", fresh.Capacity()),
	)
	return nil
}

// Close releases the pipeline's arena handle and closes the delivery
// queue. Callers must stop feeding Process first. Buffers already
// delivered stay valid until individually closed.
func (p *Pipeline) Close() {
	close(p.out)
	p.arena.Load().Close()
}
