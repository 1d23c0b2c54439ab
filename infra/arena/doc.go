// Package arena provides the pre-allocated memory region backing zero-copy
// ingestion. An Arena serves monotonic, 64-byte-aligned allocations from a
// single contiguous block via an atomic cursor and never frees individual
// allocations. Buffers are views into arena memory that share ownership of
// the region; the region is let go only when the arena handle and every
// outstanding buffer have been closed.
//
// The arena is lock-free and append-only. Recycling means replacing the
// whole arena, never reclaiming part of it.
package arena
