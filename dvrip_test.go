package dvrip

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dvrip-go/dvrip/internal/dvriperr"
)

func TestIsDisconnectedRecognizesDisconnectionError(t *testing.T) {
	err := dvriperr.NewDisconnected("closed locally")
	if !IsDisconnected(err) {
		t.Error("IsDisconnected() = false, want true for a Disconnected error")
	}
}

func TestIsDisconnectedRejectsOtherErrorTypes(t *testing.T) {
	err := dvriperr.NewDevice(106)
	if IsDisconnected(err) {
		t.Error("IsDisconnected() = true, want false for a Device error")
	}
}

func TestIsDisconnectedFalseForPlainError(t *testing.T) {
	if IsDisconnected(errors.New("boom")) {
		t.Error("IsDisconnected() = true, want false for an unrelated error")
	}
}

func TestIsDisconnectedUnwrapsWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("during login: %w", dvriperr.NewDisconnected("closed locally"))
	if !IsDisconnected(wrapped) {
		t.Error("IsDisconnected() = false, want true through fmt.Errorf wrapping")
	}
}
