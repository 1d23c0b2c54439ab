// Package ingest turns a continuous byte stream into framed, arena-backed
// messages. The pipeline recognizes complete frames in the accumulated
// stream, copies each exactly once into a fresh zero-copy buffer and hands
// it to a bounded delivery queue. A full queue drops the message rather
// than stall the producer: predictable latency wins over guaranteed
// delivery here.
package ingest
