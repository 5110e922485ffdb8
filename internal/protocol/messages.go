package protocol

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SuccessCode is the Ret value a device reply carries on success.
const SuccessCode = 100

// SessionIDHex renders a session id the way it is embedded in outbound JSON
// payloads: lowercase hex, 0x-prefixed, zero-padded to 8 digits.
func SessionIDHex(id uint32) string {
	return fmt.Sprintf("0x%08x", id)
}

// ParseSessionID accepts a SessionID field in either of the two shapes the
// device uses: a JSON number, or a hex string beginning with "0x". It
// mirrors the source client's strtol-with-base-autodetection semantics.
func ParseSessionID(v interface{}) (uint32, bool) {
	switch t := v.(type) {
	case float64:
		return uint32(t), true
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0, false
		}
		return uint32(n), true
	case string:
		s := strings.TrimSpace(t)
		base := 10
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			s = s[2:]
			base = 16
		} else if len(s) > 1 && s[0] == '0' {
			base = 8
		}
		n, err := strconv.ParseUint(s, base, 32)
		if err != nil {
			return 0, false
		}
		return uint32(n), true
	default:
		return 0, false
	}
}

// LoginRequest builds the JSON payload for a Login_Req command.
func LoginRequest(user, hashedPassword string) []byte {
	doc := map[string]interface{}{
		"LoginType":   "DVRIP-Web",
		"EncryptType": "MD5",
		"UserName":    user,
		"PassWord":    hashedPassword,
	}
	b, _ := json.Marshal(doc)
	return b
}

// SimpleRequest builds the common {SessionID, Name} request body shared by
// SysInfo_Req, ConfigGet_Req, and ConfigChannelTitleGet_Req.
func SimpleRequest(sessionID uint32, name string) []byte {
	doc := map[string]interface{}{
		"SessionID": SessionIDHex(sessionID),
		"Name":      name,
	}
	b, _ := json.Marshal(doc)
	return b
}

// KeepAliveRequest builds the KeepAlive_Req payload.
func KeepAliveRequest(sessionID uint32) []byte {
	doc := map[string]interface{}{
		"Name":      "KeepAlive",
		"SessionID": SessionIDHex(sessionID),
	}
	b, _ := json.Marshal(doc)
	return b
}

// GuardRequest builds the Guard_Req payload.
func GuardRequest(sessionID uint32) []byte {
	doc := map[string]interface{}{
		"Name":      "Guard",
		"SessionID": SessionIDHex(sessionID),
	}
	b, _ := json.Marshal(doc)
	return b
}

// NetSnapRequest builds the NetSnap_Req payload for a still-picture capture
// on the given channel.
func NetSnapRequest(channel int) []byte {
	doc := map[string]interface{}{
		"Name": "OPSNAP",
		"OPSNAP": map[string]interface{}{
			"Channel": channel,
		},
	}
	b, _ := json.Marshal(doc)
	return b
}

// Envelope is the parsed shape common to every JSON-bound reply: a Ret
// code, an optional SessionID resync, and the raw decoded document for
// callers that need additional fields (AliveInterval, ChannelTitle, ...).
type Envelope struct {
	Ret       int
	RetOK     bool
	SessionID uint32
	HasSID    bool
	Raw       map[string]interface{}
}

// DecodeEnvelope parses a JSON reply payload into an Envelope. It returns an
// error only when the payload is not valid JSON at all — that condition is
// treated by the session layer as fatal malformed-reply (escalates to
// disconnect). Missing Ret/SessionID are reported via the RetOK/HasSID
// flags, not as a parse error.
func DecodeEnvelope(payload []byte) (Envelope, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return Envelope{}, fmt.Errorf("protocol: malformed JSON reply: %w", err)
	}

	env := Envelope{Raw: raw}

	if v, ok := raw["Ret"]; ok {
		switch n := v.(type) {
		case float64:
			env.Ret = int(n)
			env.RetOK = true
		}
	}

	if v, ok := raw["SessionID"]; ok {
		if sid, ok := ParseSessionID(v); ok {
			env.SessionID = sid
			env.HasSID = true
		}
	}

	return env, nil
}
