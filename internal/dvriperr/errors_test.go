package dvriperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsDisconnected(t *testing.T) {
	err := NewDisconnected("peer closed connection")
	if !IsDisconnected(err) {
		t.Fatal("expected IsDisconnected to be true")
	}
	if IsDisconnected(NewDevice(CodeIllegalRequest)) {
		t.Fatal("device error must not be classified as disconnected")
	}
	if IsDisconnected(nil) {
		t.Fatal("nil must not be classified as disconnected")
	}
}

func TestIsDisconnectedThroughWrap(t *testing.T) {
	inner := NewDisconnected("read: connection reset")
	wrapped := fmt.Errorf("session: read loop: %w", inner)
	if !IsDisconnected(wrapped) {
		t.Fatal("expected wrapped disconnection to be detected")
	}
}

func TestDeviceErrorMessage(t *testing.T) {
	err := NewDevice(CodeUserAlreadyLoggedIn)
	if err.Code != CodeUserAlreadyLoggedIn {
		t.Fatalf("code = %d", err.Code)
	}
	want := "device error: user already logged in (Ret=104)"
	if err.Error() != want {
		t.Fatalf("got %q want %q", err.Error(), want)
	}
}

func TestUnknownCodeFallsBack(t *testing.T) {
	if msg := MessageForCode(9999); msg == "" {
		t.Fatal("expected a non-empty fallback message")
	}
}

func TestMissingFieldMessage(t *testing.T) {
	err := NewMissingField("SessionID")
	if err.Type != MissingField {
		t.Fatalf("type = %v", err.Type)
	}
}

func TestTransportUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewTransport("dial", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the wrapped cause")
	}
}
