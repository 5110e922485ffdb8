package session

import (
	"time"

	"github.com/dvrip-go/dvrip/internal/dvriperr"
	"github.com/dvrip-go/dvrip/internal/protocol"
)

// armKeepalive (re-)schedules the keepalive timer for d from now. Calling
// it again before the timer fires replaces the previous schedule, which is
// how fireKeepalive re-arms itself after each tick.
func (s *Session) armKeepalive(d time.Duration) {
	s.keepaliveMu.Lock()
	defer s.keepaliveMu.Unlock()
	if s.keepaliveTimer != nil {
		s.keepaliveTimer.Stop()
	}
	s.keepaliveTimer = time.AfterFunc(d, func() { s.fireKeepalive(d) })
}

// fireKeepalive sends a KeepAlive_Req and, unless the connection is gone,
// re-arms for another d. A disconnection error here means the socket is
// already being torn down elsewhere; any keepalive call still in flight at
// that point is completed by the disconnect fan-out, not by this function.
func (s *Session) fireKeepalive(d time.Duration) {
	payload := protocol.KeepAliveRequest(s.SessionID())
	res := s.call(uint16(protocol.KeepAliveReq), uint16(protocol.KeepAliveResp), kindJSON, payload)
	if res.err != nil && dvriperr.IsDisconnected(res.err) {
		return
	}
	s.armKeepalive(d)
}

// stopKeepalive cancels any scheduled timer. Called from the disconnect
// fan-out so a torn-down session never fires another keepalive.
func (s *Session) stopKeepalive() {
	s.keepaliveMu.Lock()
	defer s.keepaliveMu.Unlock()
	if s.keepaliveTimer != nil {
		s.keepaliveTimer.Stop()
		s.keepaliveTimer = nil
	}
}
