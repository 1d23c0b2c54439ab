package service

import (
	"bytes"
	"errors"
	"testing"

	"go.uber.org/zap"

	"synapse/ingest"
	"synapse/wire"
)

func testService(t *testing.T, resync bool) *IngestService {
	t.Helper()
	pipe, err := ingest.New(ingest.Config{
		ArenaCapacity: 1 << 20,
		QueueSize:     64,
		Resync:        resync,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("new pipeline: %v", err)
	}
	return NewIngestService(pipe, zap.NewNop())
}

func testFrame(t *testing.T, payloadSize int) []byte {
	t.Helper()
	h := wire.Header{
		Magic:       wire.Magic,
		MsgType:     wire.MsgTrade,
		Version:     1,
		Timestamp:   1_700_000_000_000_000_000,
		PayloadSize: uint32(payloadSize),
	}
	buf := wire.AppendHeader(nil, h)
	return append(buf, bytes.Repeat([]byte{5}, payloadSize)...)
}

func TestPushDrainsAllCompleteFrames(t *testing.T) {
	s := testService(t, true)
	defer s.Close()

	var feed []byte
	feed = append(feed, testFrame(t, 48)...)
	feed = append(feed, testFrame(t, 56)...)
	feed = append(feed, testFrame(t, 48)...)

	if err := s.Push(feed); err != nil {
		t.Fatalf("push: %v", err)
	}
	if got := s.Stats().MessagesReceived; got != 3 {
		t.Fatalf("messages_received: got %d, want 3", got)
	}
	for i := 0; i < 3; i++ {
		buf, ok := s.Pop()
		if !ok {
			t.Fatalf("pop %d: queue empty", i)
		}
		buf.Close()
	}
	if _, ok := s.Pop(); ok {
		t.Error("pop on drained queue returned a buffer")
	}
}

func TestPushBuffersIncompleteTail(t *testing.T) {
	s := testService(t, true)
	defer s.Close()

	msg := testFrame(t, 64)
	if err := s.Push(msg[:10]); err != nil {
		t.Fatalf("partial push: %v", err)
	}
	if got := s.Stats().MessagesReceived; got != 0 {
		t.Fatalf("partial frame counted: %d", got)
	}
	if err := s.Push(msg[10:]); err != nil {
		t.Fatalf("completing push: %v", err)
	}
	if got := s.Stats().MessagesReceived; got != 1 {
		t.Fatalf("messages_received: got %d, want 1", got)
	}

	buf, ok := s.Pop()
	if !ok {
		t.Fatal("no buffer after frame completed")
	}
	defer buf.Close()
	if !bytes.Equal(buf.Bytes(), msg) {
		t.Error("reassembled frame does not match original")
	}
}

func TestPushResyncsThroughGarbage(t *testing.T) {
	s := testService(t, true)
	defer s.Close()

	var feed []byte
	feed = append(feed, bytes.Repeat([]byte{0xEE}, 37)...)
	feed = append(feed, testFrame(t, 48)...)

	if err := s.Push(feed); err != nil {
		t.Fatalf("push through garbage: %v", err)
	}
	snap := s.Stats()
	if snap.MessagesReceived != 1 {
		t.Errorf("messages_received: got %d", snap.MessagesReceived)
	}
	if snap.ParseErrors == 0 {
		t.Error("garbage prefix produced no parse errors")
	}
}

func TestPushStopsOnInvalidHeaderWithoutResync(t *testing.T) {
	s := testService(t, false)
	defer s.Close()

	err := s.Push(bytes.Repeat([]byte{0xEE}, 64))
	if !errors.Is(err, ingest.ErrInvalidHeader) {
		t.Fatalf("expected ErrInvalidHeader, got %v", err)
	}
}

func TestPushAfterClose(t *testing.T) {
	s := testService(t, true)
	s.Close()
	if err := s.Push(testFrame(t, 48)); err == nil {
		t.Fatal("push on closed service accepted")
	}
	// Close is idempotent.
	s.Close()
}

func TestCopyOutCopyIn(t *testing.T) {
	s := testService(t, true)
	defer s.Close()

	msg := testFrame(t, 48)
	if err := s.Push(msg); err != nil {
		t.Fatal(err)
	}
	buf, ok := s.Pop()
	if !ok {
		t.Fatal("no buffer")
	}
	defer buf.Close()

	dst := make([]byte, 16)
	if err := CopyOut(buf, dst, 16); err != nil {
		t.Fatalf("copy out: %v", err)
	}
	if !bytes.Equal(dst, msg[:16]) {
		t.Error("copy out content mismatch")
	}

	src := bytes.Repeat([]byte{0xAA}, 8)
	if err := CopyIn(buf, src, 8); err != nil {
		t.Fatalf("copy in: %v", err)
	}
	if !bytes.Equal(buf.Bytes()[:8], src) {
		t.Error("copy in content mismatch")
	}
}

func TestCopyBoundsEnforced(t *testing.T) {
	s := testService(t, true)
	defer s.Close()

	if err := s.Push(testFrame(t, 8)); err != nil {
		t.Fatal(err)
	}
	buf, ok := s.Pop()
	if !ok {
		t.Fatal("no buffer")
	}
	defer buf.Close()

	big := make([]byte, buf.Len()+1)
	if err := CopyOut(buf, big, len(big)); !errors.Is(err, ErrTransferBounds) {
		t.Errorf("oversized copy out: got %v", err)
	}
	if err := CopyIn(buf, big, len(big)); !errors.Is(err, ErrTransferBounds) {
		t.Errorf("oversized copy in: got %v", err)
	}
	if err := CopyOut(buf, big, -1); !errors.Is(err, ErrTransferBounds) {
		t.Errorf("negative transfer: got %v", err)
	}
	// Destination shorter than n is a bounds failure too.
	if err := CopyOut(buf, make([]byte, 4), 8); !errors.Is(err, ErrTransferBounds) {
		t.Errorf("short destination: got %v", err)
	}
}
