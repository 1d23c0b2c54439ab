package wire

import (
	"encoding/binary"
	"errors"
)

// Magic marks the start of every frame ("MRKT" little-endian).
const Magic uint32 = 0x4D524B54

// HeaderSize is the fixed on-wire size of a Header.
const HeaderSize = 24

// MaxPayloadSize bounds payload_size in a valid header.
const MaxPayloadSize = 10_000_000

// Message type codes carried in Header.MsgType.
const (
	MsgTrade     uint8 = 0
	MsgQuote     uint8 = 1
	MsgHeartbeat uint8 = 2
	MsgSnapshot  uint8 = 3
)

var ErrShortBuffer = errors.New("wire: buffer shorter than record layout")

// Header is the fixed 24-byte frame header.
//
// Layout: magic u32 | msg_type u8 | version u8 | priority u8 | flags u8 |
// timestamp u64 | payload_size u32 | checksum u32.
type Header struct {
	Magic       uint32
	MsgType     uint8
	Version     uint8
	Priority    uint8
	Flags       uint8
	Timestamp   uint64
	PayloadSize uint32
	Checksum    uint32
}

// Valid reports whether the header passes framing checks: magic match and
// payload size in (0, MaxPayloadSize]. Deeper checks (checksum, bounds,
// ordering) belong to the validate package.
func (h Header) Valid() bool {
	return h.Magic == Magic && h.PayloadSize > 0 && h.PayloadSize <= MaxPayloadSize
}

// TotalSize returns header plus payload length in bytes.
func (h Header) TotalSize() int {
	return HeaderSize + int(h.PayloadSize)
}

// DecodeHeader reads a Header from the front of b.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, ErrShortBuffer
	}
	return Header{
		Magic:       binary.LittleEndian.Uint32(b[0:4]),
		MsgType:     b[4],
		Version:     b[5],
		Priority:    b[6],
		Flags:       b[7],
		Timestamp:   binary.LittleEndian.Uint64(b[8:16]),
		PayloadSize: binary.LittleEndian.Uint32(b[16:20]),
		Checksum:    binary.LittleEndian.Uint32(b[20:24]),
	}, nil
}

// Encode writes the header into b, which must hold HeaderSize bytes.
func (h Header) Encode(b []byte) error {
	if len(b) < HeaderSize {
		return ErrShortBuffer
	}
	binary.LittleEndian.PutUint32(b[0:4], h.Magic)
	b[4] = h.MsgType
	b[5] = h.Version
	b[6] = h.Priority
	b[7] = h.Flags
	binary.LittleEndian.PutUint64(b[8:16], h.Timestamp)
	binary.LittleEndian.PutUint32(b[16:20], h.PayloadSize)
	binary.LittleEndian.PutUint32(b[20:24], h.Checksum)
	return nil
}

// AppendHeader appends the encoded header to dst.
func AppendHeader(dst []byte, h Header) []byte {
	var buf [HeaderSize]byte
	_ = h.Encode(buf[:])
	return append(dst, buf[:]...)
}
