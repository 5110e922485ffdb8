// Package protocol implements the DVRIP/Sofia wire codec: the 20-byte
// length-prefixed frame header used by every request, reply, and alarm push
// on the connection, plus the JSON payload shapes exchanged over it.
//
// A Frame is the on-wire unit. Header layout, little-endian throughout:
//
//	offset  size  field
//	0       1     magic (0xFF)
//	1       1     version (0x00 or 0x01 accepted; 0x00 transmitted)
//	2-3     2     reserved, zero
//	4-7     4     session id
//	8-11    4     sequence number
//	12      1     total-packet counter (always 0, no fragmentation)
//	13      1     current-packet counter (always 0)
//	14-15   2     message type code
//	16-19   4     payload length
//	20+     L     payload (opaque: JSON, or binary for snapshot replies)
package protocol

import (
	"encoding/binary"
	"fmt"
)

// HeaderLength is the fixed size of a frame header, in bytes.
const HeaderLength = 20

// Magic is the first byte of every frame.
const Magic = 0xFF

// VersionSend is the version byte this client emits.
const VersionSend = 0x00

// MaxPayloadLength bounds the payload-length field to keep a single
// malformed frame from forcing an unbounded allocation; frames this large
// never occur on real devices (still-picture replies are the largest
// payload the core handles and stay well under this).
const MaxPayloadLength = 64 * 1024 * 1024

// Frame is a decoded protocol frame ready for dispatch, or one about to be
// serialized for the wire.
type Frame struct {
	Version   byte
	SessionID uint32
	Sequence  uint32
	Type      uint16
	Payload   []byte
}

// Marshal serializes the given header fields and payload into a complete
// wire frame: header plus payload.
func Marshal(sessionID, sequence uint32, msgType uint16, payload []byte) []byte {
	buf := make([]byte, HeaderLength+len(payload))
	buf[0] = Magic
	buf[1] = VersionSend
	buf[2] = 0
	buf[3] = 0
	binary.LittleEndian.PutUint32(buf[4:8], sessionID)
	binary.LittleEndian.PutUint32(buf[8:12], sequence)
	buf[12] = 0
	buf[13] = 0
	binary.LittleEndian.PutUint16(buf[14:16], msgType)
	binary.LittleEndian.PutUint32(buf[16:20], uint32(len(payload)))
	copy(buf[HeaderLength:], payload)
	return buf
}

// ErrBadMagic indicates the framing-magic mismatch the core treats as an
// unrecoverable, fan-out-triggering condition.
var ErrBadMagic = fmt.Errorf("protocol: bad frame magic")

// ParseHeader validates and decodes the first HeaderLength bytes of buf.
// It returns the decoded fields and the payload length; it does not require
// the payload itself to be present yet. Callers use the returned length to
// decide whether enough bytes have accumulated to extract the full frame.
func ParseHeader(buf []byte) (version byte, sessionID, sequence uint32, msgType uint16, payloadLen uint32, err error) {
	if len(buf) < HeaderLength {
		err = fmt.Errorf("protocol: short header (%d bytes)", len(buf))
		return
	}
	if buf[0] != Magic {
		err = ErrBadMagic
		return
	}
	version = buf[1]
	sessionID = binary.LittleEndian.Uint32(buf[4:8])
	sequence = binary.LittleEndian.Uint32(buf[8:12])
	msgType = binary.LittleEndian.Uint16(buf[14:16])
	payloadLen = binary.LittleEndian.Uint32(buf[16:20])
	if payloadLen > MaxPayloadLength {
		err = fmt.Errorf("protocol: payload length %d exceeds maximum %d", payloadLen, MaxPayloadLength)
	}
	return
}

// Parse decodes a complete frame (header + payload) from buf, returning the
// number of bytes consumed. It is the inverse of Marshal and is used by
// tests to assert the frame round-trip property.
func Parse(buf []byte) (f Frame, consumed int, err error) {
	version, sessionID, sequence, msgType, payloadLen, err := ParseHeader(buf)
	if err != nil {
		return Frame{}, 0, err
	}
	total := HeaderLength + int(payloadLen)
	if len(buf) < total {
		return Frame{}, 0, fmt.Errorf("protocol: short frame (have %d, want %d)", len(buf), total)
	}
	payload := make([]byte, payloadLen)
	copy(payload, buf[HeaderLength:total])
	f = Frame{
		Version:   version,
		SessionID: sessionID,
		Sequence:  sequence,
		Type:      msgType,
		Payload:   payload,
	}
	return f, total, nil
}
