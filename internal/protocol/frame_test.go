package protocol

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		sid := rng.Uint32()
		seq := rng.Uint32()
		msgType := uint16(rng.Intn(1 << 16))

		payload := make([]byte, rng.Intn(4096))
		rng.Read(payload)

		wire := Marshal(sid, seq, msgType, payload)

		f, consumed, err := Parse(wire)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if consumed != len(wire) {
			t.Fatalf("consumed %d, want %d", consumed, len(wire))
		}
		if f.SessionID != sid {
			t.Errorf("session id: got %#x want %#x", f.SessionID, sid)
		}
		if f.Sequence != seq {
			t.Errorf("sequence: got %#x want %#x", f.Sequence, seq)
		}
		if f.Type != msgType {
			t.Errorf("type: got %d want %d", f.Type, msgType)
		}
		if !bytes.Equal(f.Payload, payload) {
			t.Errorf("payload mismatch")
		}
	}
}

func TestFrameRoundTripEmptyPayload(t *testing.T) {
	wire := Marshal(1, 2, 1001, nil)
	f, consumed, err := Parse(wire)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if consumed != HeaderLength {
		t.Fatalf("consumed %d, want %d", consumed, HeaderLength)
	}
	if len(f.Payload) != 0 {
		t.Fatalf("expected empty payload, got %d bytes", len(f.Payload))
	}
}

func TestParseHeaderShort(t *testing.T) {
	if _, _, _, _, _, err := ParseHeader(make([]byte, 10)); err == nil {
		t.Fatal("expected error for short header")
	}
}

func TestParseHeaderBadMagic(t *testing.T) {
	wire := Marshal(1, 1, 1001, []byte("x"))
	wire[0] = 0x00
	if _, _, _, _, _, err := ParseHeader(wire); err != ErrBadMagic {
		t.Fatalf("expected ErrBadMagic, got %v", err)
	}
}

func TestParseAcceptsVersionByte(t *testing.T) {
	for _, v := range []byte{0x00, 0x01} {
		wire := Marshal(1, 1, 1001, []byte("{}"))
		wire[1] = v
		f, _, err := Parse(wire)
		if err != nil {
			t.Fatalf("version %#x: %v", v, err)
		}
		if f.Version != v {
			t.Errorf("version %#x: got %#x", v, f.Version)
		}
	}
}

func TestParseShortFrameAwaitsMoreBytes(t *testing.T) {
	wire := Marshal(1, 1, 1001, []byte("hello world"))
	_, _, err := Parse(wire[:HeaderLength+3])
	if err == nil {
		t.Fatal("expected short-frame error")
	}
}

func TestSessionIDHexFormat(t *testing.T) {
	if got := SessionIDHex(0x12); got != "0x00000012" {
		t.Fatalf("got %q", got)
	}
}

func TestParseSessionIDBothForms(t *testing.T) {
	if sid, ok := ParseSessionID("0x12"); !ok || sid != 0x12 {
		t.Fatalf("hex form: sid=%d ok=%v", sid, ok)
	}
	if sid, ok := ParseSessionID(float64(18)); !ok || sid != 18 {
		t.Fatalf("numeric form: sid=%d ok=%v", sid, ok)
	}
}
