package statspb

import (
	"testing"
)

func TestSnapshotRoundtrip(t *testing.T) {
	in := StatsSnapshot{
		MessagesReceived:  1_000_000,
		BytesReceived:     88_000_000,
		ParseErrors:       3,
		MessagesDropped:   17,
		LastSeq:           1_000_017,
		ArenaUsed:         1 << 20,
		ArenaCapacity:     1 << 26,
		MessagesPerSecond: 125_000.5,
	}

	data, err := in.MarshalWire()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out StatsSnapshot
	if err := out.UnmarshalWire(data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out != in {
		t.Fatalf("roundtrip mismatch:\n in  %+v\n out %+v", in, out)
	}
}

func TestSnapshotZeroValuesStayCompact(t *testing.T) {
	var zero StatsSnapshot
	data, err := zero.MarshalWire()
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Fatalf("zero snapshot encoded to %d bytes", len(data))
	}

	var out StatsSnapshot
	if err := out.UnmarshalWire(data); err != nil {
		t.Fatal(err)
	}
	if out != zero {
		t.Fatalf("decoded zero snapshot: %+v", out)
	}
}

func TestUnmarshalResetsPreviousState(t *testing.T) {
	prev := StatsSnapshot{ParseErrors: 99, MessagesDropped: 99}
	data, err := (&StatsSnapshot{MessagesReceived: 5}).MarshalWire()
	if err != nil {
		t.Fatal(err)
	}
	if err := prev.UnmarshalWire(data); err != nil {
		t.Fatal(err)
	}
	if prev.ParseErrors != 0 || prev.MessagesDropped != 0 || prev.MessagesReceived != 5 {
		t.Fatalf("stale fields survived decode: %+v", prev)
	}
}

func TestUnmarshalTruncatedInput(t *testing.T) {
	data, err := (&StatsSnapshot{MessagesReceived: 1 << 40}).MarshalWire()
	if err != nil {
		t.Fatal(err)
	}
	var out StatsSnapshot
	if err := out.UnmarshalWire(data[:len(data)-1]); err == nil {
		t.Fatal("truncated varint accepted")
	}
}

func TestGetStatsRequestEmpty(t *testing.T) {
	req := &GetStatsRequest{}
	data, err := req.MarshalWire()
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Fatalf("request encoded to %d bytes", len(data))
	}
	if err := req.UnmarshalWire(nil); err != nil {
		t.Fatal(err)
	}
}

func TestCodecRejectsForeignTypes(t *testing.T) {
	c := Codec{}
	if c.Name() != "synapse-stats" {
		t.Fatalf("codec name: %q", c.Name())
	}
	if _, err := c.Marshal("not a message"); err == nil {
		t.Error("marshal of foreign type accepted")
	}
	if err := c.Unmarshal(nil, 42); err == nil {
		t.Error("unmarshal into foreign type accepted")
	}
}

func TestCodecRoundtrip(t *testing.T) {
	c := Codec{}
	in := &StatsSnapshot{MessagesReceived: 7, MessagesPerSecond: 1.5}

	data, err := c.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	out := &StatsSnapshot{}
	if err := c.Unmarshal(data, out); err != nil {
		t.Fatal(err)
	}
	if *out != *in {
		t.Fatalf("codec roundtrip mismatch: %+v", out)
	}
}
