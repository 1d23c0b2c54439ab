// Package statspb carries the ingest stats service over protobuf wire
// format. Marshaling is maintained by hand on protowire against
// stats.proto; generated code stays out of the tree, the wire contract
// stays in.
package statspb

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Message is implemented by every statspb wire type.
type Message interface {
	MarshalWire() ([]byte, error)
	UnmarshalWire(data []byte) error
}

// GetStatsRequest asks for the current counters snapshot.
type GetStatsRequest struct{}

// MarshalWire encodes the empty request.
func (*GetStatsRequest) MarshalWire() ([]byte, error) { return nil, nil }

// UnmarshalWire decodes the empty request, skipping unknown fields.
func (*GetStatsRequest) UnmarshalWire(data []byte) error {
	for len(data) > 0 {
		_, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]
		m := protowire.ConsumeFieldValue(0, typ, data)
		if m < 0 {
			return protowire.ParseError(m)
		}
		data = data[m:]
	}
	return nil
}

// StatsSnapshot mirrors ingest.StatsSnapshot on the wire.
type StatsSnapshot struct {
	MessagesReceived  uint64
	BytesReceived     uint64
	ParseErrors       uint64
	MessagesDropped   uint64
	LastSeq           uint64
	ArenaUsed         uint64
	ArenaCapacity     uint64
	MessagesPerSecond float64
}

// MarshalWire encodes the snapshot per stats.proto field numbering.
func (s *StatsSnapshot) MarshalWire() ([]byte, error) {
	var b []byte
	b = appendVarintField(b, 1, s.MessagesReceived)
	b = appendVarintField(b, 2, s.BytesReceived)
	b = appendVarintField(b, 3, s.ParseErrors)
	b = appendVarintField(b, 4, s.MessagesDropped)
	b = appendVarintField(b, 5, s.LastSeq)
	b = appendVarintField(b, 6, s.ArenaUsed)
	b = appendVarintField(b, 7, s.ArenaCapacity)
	if s.MessagesPerSecond != 0 {
		b = protowire.AppendTag(b, 8, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, math.Float64bits(s.MessagesPerSecond))
	}
	return b, nil
}

// UnmarshalWire decodes the snapshot, skipping unknown fields.
func (s *StatsSnapshot) UnmarshalWire(data []byte) error {
	*s = StatsSnapshot{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		switch {
		case typ == protowire.VarintType && num >= 1 && num <= 7:
			v, m := protowire.ConsumeVarint(data)
			if m < 0 {
				return protowire.ParseError(m)
			}
			data = data[m:]
			switch num {
			case 1:
				s.MessagesReceived = v
			case 2:
				s.BytesReceived = v
			case 3:
				s.ParseErrors = v
			case 4:
				s.MessagesDropped = v
			case 5:
				s.LastSeq = v
			case 6:
				s.ArenaUsed = v
			case 7:
				s.ArenaCapacity = v
			}
		case typ == protowire.Fixed64Type && num == 8:
			v, m := protowire.ConsumeFixed64(data)
			if m < 0 {
				return protowire.ParseError(m)
			}
			data = data[m:]
			s.MessagesPerSecond = math.Float64frombits(v)
		default:
			m := protowire.ConsumeFieldValue(num, typ, data)
			if m < 0 {
				return protowire.ParseError(m)
			}
			data = data[m:]
		}
	}
	return nil
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// Codec moves statspb messages through gRPC.
type Codec struct{}

// Name identifies the codec; clients select it per call.
func (Codec) Name() string { return "synapse-stats" }

// Marshal encodes a statspb message.
func (Codec) Marshal(v any) ([]byte, error) {
	msg, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("statspb: cannot marshal %T", v)
	}
	return msg.MarshalWire()
}

// Unmarshal decodes into a statspb message.
func (Codec) Unmarshal(data []byte, v any) error {
	msg, ok := v.(Message)
	if !ok {
		return fmt.Errorf("statspb: cannot unmarshal into %T", v)
	}
	return msg.UnmarshalWire(data)
}
