package session

import (
	"sync/atomic"

	"github.com/dvrip-go/dvrip/internal/dvriperr"
	"github.com/dvrip-go/dvrip/internal/protocol"
)

// handleAlarm parses an Alarm_Req push and delivers it to the installed
// handler, if any. A payload that fails to parse as JSON at all is silently
// dropped: unlike a dual-decode reply, a corrupt alarm push does not
// escalate to disconnect, since it is unsolicited and carries no pending
// caller to fail.
func (s *Session) handleAlarm(payload []byte) {
	s.alarmMu.Lock()
	handler := s.alarmHandler
	s.alarmMu.Unlock()
	if handler == nil {
		return
	}

	env, err := protocol.DecodeEnvelope(payload)
	if err != nil {
		return
	}
	if env.HasSID {
		atomic.StoreUint32(&s.sessionID, env.SessionID)
	}

	info, ok := env.Raw["AlarmInfo"].(map[string]interface{})
	if !ok {
		handler(AlarmEvent{Raw: env.Raw, Err: dvriperr.NewMissingField("AlarmInfo")})
		return
	}

	channel, chOK := info["Channel"].(float64)
	event, evOK := info["Event"].(string)
	status, stOK := info["Status"].(string)
	if !chOK || !evOK || !stOK {
		handler(AlarmEvent{Raw: env.Raw, Err: dvriperr.NewMissingField("AlarmInfo")})
		return
	}

	handler(AlarmEvent{
		Channel:   int(channel),
		IsStart:   status == "Start",
		EventName: event,
		Raw:       env.Raw,
	})
}
