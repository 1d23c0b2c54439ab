package ingest

import (
	"bytes"
	"testing"

	"go.uber.org/zap"

	"synapse/wire"
)

func benchFrame(payloadSize int) []byte {
	h := wire.Header{
		Magic:       wire.Magic,
		MsgType:     wire.MsgTrade,
		Version:     1,
		Timestamp:   1_700_000_000_000_000_000,
		PayloadSize: uint32(payloadSize),
	}
	buf := wire.AppendHeader(nil, h)
	return append(buf, bytes.Repeat([]byte{7}, payloadSize)...)
}

func BenchmarkProcessTradeFrames(b *testing.B) {
	p, err := New(Config{ArenaCapacity: 1 << 26, QueueSize: 1024}, zap.NewNop())
	if err != nil {
		b.Fatal(err)
	}
	msg := benchFrame(wire.TradeSize)
	s := NewStream(len(msg) * 2)

	// Drain in the background so the queue never backpressures.
	done := make(chan struct{})
	go func() {
		for buf := range p.Out() {
			buf.Close()
		}
		close(done)
	}()

	b.SetBytes(int64(len(msg)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Append(msg)
		if err := p.Process(s); err != nil {
			// Exhausted arena mid-run: recycle and retry once.
			if rerr := p.Recycle(1 << 26); rerr != nil {
				b.Fatal(rerr)
			}
			if err := p.Process(s); err != nil {
				b.Fatal(err)
			}
		}
	}
	b.StopTimer()
	p.Close()
	<-done
}

func BenchmarkProcessChunkedStream(b *testing.B) {
	p, err := New(Config{ArenaCapacity: 1 << 26, QueueSize: 1024}, zap.NewNop())
	if err != nil {
		b.Fatal(err)
	}
	msg := benchFrame(wire.QuoteSize)
	half := len(msg) / 2
	s := NewStream(len(msg) * 2)

	done := make(chan struct{})
	go func() {
		for buf := range p.Out() {
			buf.Close()
		}
		close(done)
	}()

	b.SetBytes(int64(len(msg)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Frames arrive split across two reads.
		s.Append(msg[:half])
		_ = p.Process(s)
		s.Append(msg[half:])
		if err := p.Process(s); err != nil {
			if rerr := p.Recycle(1 << 26); rerr != nil {
				b.Fatal(rerr)
			}
			if err := p.Process(s); err != nil {
				b.Fatal(err)
			}
		}
	}
	b.StopTimer()
	p.Close()
	<-done
}
