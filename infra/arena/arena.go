package arena

import (
	"errors"
	"sync/atomic"
	"unsafe"
)

// Alignment is the allocation granularity. 64 bytes keeps every returned
// slice aligned for SIMD-width loads and on its own cache line.
const Alignment = 64

// MaxCapacity bounds a single arena region (1 TiB).
const MaxCapacity = 1 << 40

var (
	// ErrAllocationFailure reports that the backing region could not be
	// acquired or that the allocation request itself is unservable.
	ErrAllocationFailure = errors.New("arena: allocation failure")

	// ErrArenaExhausted reports that the region has no room left for the
	// rounded request. The cursor is rolled back; Used() is unchanged.
	ErrArenaExhausted = errors.New("arena: exhausted")
)

// Arena owns one aligned contiguous memory region and hands out
// monotonically advancing slices of it. Safe for concurrent allocators.
type Arena struct {
	block    []byte // raw backing, keeps the region reachable
	mem      []byte // aligned window into block, len == capacity
	capacity uint64
	offset   atomic.Uint64
	refs     atomic.Int64
	closed   atomic.Bool
}

// New creates an arena with capacity rounded up to Alignment.
func New(capacity int) (*Arena, error) {
	if capacity <= 0 || capacity > MaxCapacity {
		return nil, ErrAllocationFailure
	}
	aligned := (uint64(capacity) + Alignment - 1) &^ (Alignment - 1)

	// Over-allocate by one alignment width so the window can start on a
	// 64-byte boundary regardless of where the runtime places the block.
	block := make([]byte, aligned+Alignment)
	base := uintptr(unsafe.Pointer(&block[0]))
	pad := (Alignment - base%Alignment) % Alignment

	a := &Arena{
		block:    block,
		mem:      block[pad : uint64(pad)+aligned],
		capacity: aligned,
	}
	a.refs.Store(1)
	return a, nil
}

// Allocate reserves size bytes rounded up to Alignment and returns the view
// at the prior cursor position. Concurrent callers never receive
// overlapping memory.
func (a *Arena) Allocate(size int) ([]byte, error) {
	if size <= 0 || uint64(size) > a.capacity {
		return nil, ErrAllocationFailure
	}
	rounded := (uint64(size) + Alignment - 1) &^ (Alignment - 1)

	end := a.offset.Add(rounded)
	if end > a.capacity {
		a.offset.Add(^(rounded - 1)) // roll back
		return nil, ErrArenaExhausted
	}
	start := end - rounded
	return a.mem[start : start+uint64(size) : start+rounded], nil
}

// Capacity returns the alignment-rounded region size in bytes.
func (a *Arena) Capacity() uint64 { return a.capacity }

// Used returns bytes consumed by successful allocations.
func (a *Arena) Used() uint64 {
	used := a.offset.Load()
	if used > a.capacity {
		// A concurrent failed allocation may be mid-rollback.
		return a.capacity
	}
	return used
}

// Remaining returns bytes still available.
func (a *Arena) Remaining() uint64 { return a.capacity - a.Used() }

// Refs returns the number of live owners (the arena handle plus buffers).
func (a *Arena) Refs() int64 { return a.refs.Load() }

// Close drops the arena handle's ownership. The region itself survives
// until the last outstanding buffer is closed. Idempotent.
func (a *Arena) Close() {
	if a.closed.CompareAndSwap(false, true) {
		a.release()
	}
}

func (a *Arena) retain() { a.refs.Add(1) }

func (a *Arena) release() {
	if a.refs.Add(-1) == 0 {
		// Last owner gone: drop the region so the runtime can reclaim it.
		a.block = nil
		a.mem = nil
	}
}
