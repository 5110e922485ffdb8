// Package dvriperr defines the error taxonomy surfaced by the DVRIP client
// core: transport failures, disconnection, malformed replies, missing
// fields, and device-reported Ret codes.
package dvriperr

import "fmt"

// Type categorizes an *Error.
type Type int

const (
	// Transport indicates DNS resolution, connect, read, or write failed.
	Transport Type = iota
	// Disconnected indicates the socket closed, the peer closed, or framing
	// magic mismatched while frames were awaited.
	Disconnected
	// MalformedReply indicates a JSON-bound reply payload failed to parse.
	MalformedReply
	// MissingField indicates a reply parsed as JSON but lacked a required
	// field (Ret, SessionID, AliveInterval, ChannelTitle, AlarmInfo, ...).
	MissingField
	// Device indicates the device replied with a Ret code other than 100.
	Device
)

func (t Type) String() string {
	switch t {
	case Transport:
		return "transport error"
	case Disconnected:
		return "disconnected"
	case MalformedReply:
		return "malformed reply"
	case MissingField:
		return "missing expected field"
	case Device:
		return "device error"
	default:
		return "unknown error"
	}
}

// Error is the concrete error type returned by every operation in
// internal/session and internal/transport.
type Error struct {
	Type    Type
	Message string
	Code    int   // device-reported Ret code, only meaningful when Type == Device
	Err     error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Type == Device {
		return fmt.Sprintf("%s: %s (Ret=%d)", e.Type, e.Message, e.Code)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NewTransport wraps a network-level failure (resolve, dial, read, write).
func NewTransport(message string, cause error) *Error {
	return &Error{Type: Transport, Message: message, Err: cause}
}

// NewDisconnected builds the well-known disconnection/EOF error completed
// into every pending request by the fan-out.
func NewDisconnected(message string) *Error {
	return &Error{Type: Disconnected, Message: message}
}

// NewMalformedReply wraps a JSON decode failure on a reply payload.
func NewMalformedReply(cause error) *Error {
	return &Error{Type: MalformedReply, Message: "payload failed to parse as JSON", Err: cause}
}

// NewMissingField reports a reply that parsed but lacked a required field.
func NewMissingField(field string) *Error {
	return &Error{Type: MissingField, Message: fmt.Sprintf("response missing expected field %q", field)}
}

// NewDevice wraps a device-reported Ret code that was not the success code.
func NewDevice(code int) *Error {
	return &Error{Type: Device, Message: MessageForCode(code), Code: code}
}

// IsDisconnected reports whether err (or anything it wraps) is the
// disconnection/EOF error the fan-out produces. Callers that want to
// reconnect check this to distinguish it from a device-reported failure.
func IsDisconnected(err error) bool {
	var e *Error
	return asError(err, &e) && e.Type == Disconnected
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
