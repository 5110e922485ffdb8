package session

import (
	"sync/atomic"
	"time"

	"github.com/dvrip-go/dvrip/internal/dvriperr"
	"github.com/dvrip-go/dvrip/internal/logging"
	"github.com/dvrip-go/dvrip/internal/protocol"
)

// Login authenticates with the device and, on success, stores the
// device-assigned session id and arms the keepalive timer at half the
// server-advertised AliveInterval (if greater than zero).
func (s *Session) Login(user, password string) error {
	hashed := s.hashPassword(password)
	payload := protocol.LoginRequest(user, hashed)

	res := s.call(uint16(protocol.LoginReq), uint16(protocol.LoginResp), kindJSON, payload)
	if res.err != nil {
		return res.err
	}

	env, err := protocol.DecodeEnvelope(res.payload)
	if err != nil {
		return dvriperr.NewMalformedReply(err)
	}
	if !env.HasSID {
		return dvriperr.NewMissingField("SessionID")
	}
	atomic.StoreUint32(&s.sessionID, env.SessionID)

	aliveRaw, ok := env.Raw["AliveInterval"]
	if !ok {
		return dvriperr.NewMissingField("AliveInterval")
	}
	aliveSeconds, ok := aliveRaw.(float64)
	if !ok {
		return dvriperr.NewMissingField("AliveInterval")
	}

	if aliveSeconds > 0 {
		s.armKeepalive(time.Duration(aliveSeconds*float64(time.Second)) / 2)
	}

	logging.LogConnection(s.remote, "login_ok")
	return nil
}

// GetChannelNames retrieves the device's per-channel display titles.
func (s *Session) GetChannelNames() ([]string, error) {
	payload := protocol.SimpleRequest(s.SessionID(), "ChannelTitle")
	res := s.call(uint16(protocol.ConfigChannelTitleGetReq), uint16(protocol.ConfigChannelTitleGetResp), kindJSON, payload)
	if res.err != nil {
		return nil, res.err
	}

	env, err := protocol.DecodeEnvelope(res.payload)
	if err != nil {
		return nil, dvriperr.NewMalformedReply(err)
	}
	raw, ok := env.Raw["ChannelTitle"]
	if !ok {
		return nil, dvriperr.NewMissingField("ChannelTitle")
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, dvriperr.NewMissingField("ChannelTitle")
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		if title, ok := item.(string); ok {
			names = append(names, title)
		}
	}
	return names, nil
}

// GetSysInfo retrieves a named system-information document, e.g.
// "SystemInfo" or "SystemFunction".
func (s *Session) GetSysInfo(name string) (map[string]interface{}, error) {
	payload := protocol.SimpleRequest(s.SessionID(), name)
	res := s.call(uint16(protocol.SysInfoReq), uint16(protocol.SysInfoResp), kindJSON, payload)
	return decodeNamedDocument(res)
}

// GetConfig retrieves a named configuration section, e.g. "General.General"
// or "NetWork.NetCommon".
func (s *Session) GetConfig(name string) (map[string]interface{}, error) {
	payload := protocol.SimpleRequest(s.SessionID(), name)
	res := s.call(uint16(protocol.ConfigGetReq), uint16(protocol.ConfigGetResp), kindJSON, payload)
	return decodeNamedDocument(res)
}

func decodeNamedDocument(res pendingResult) (map[string]interface{}, error) {
	if res.err != nil {
		return nil, res.err
	}
	env, err := protocol.DecodeEnvelope(res.payload)
	if err != nil {
		return nil, dvriperr.NewMalformedReply(err)
	}
	return env.Raw, nil
}

// captureSmallReplyThreshold is the payload size below which a NetSnap
// reply is worth probing as a JSON error document rather than assumed to be
// image data; a real still-picture capture runs from several KB up.
const captureSmallReplyThreshold = 500

// CapturePicture requests a still JPEG snapshot from the given channel. The
// reply is handled as raw bytes: a short reply that also happens to parse
// as a JSON document carrying a numeric Ret is treated as a device error
// rather than image data.
func (s *Session) CapturePicture(channel int) ([]byte, error) {
	payload := protocol.NetSnapRequest(channel)
	res := s.call(uint16(protocol.NetSnapReq), uint16(protocol.NetSnapResp), kindRaw, payload)
	if res.err != nil {
		return nil, res.err
	}

	if len(res.payload) < captureSmallReplyThreshold {
		if env, err := protocol.DecodeEnvelope(res.payload); err == nil && env.RetOK {
			return nil, dvriperr.NewDevice(env.Ret)
		}
	}
	return res.payload, nil
}

// MonitorAlarms installs handler as the single alarm sink. If no handler
// was previously installed, this also issues Guard_Req to tell the device
// to start pushing alarms. It returns as soon as the request is queued: the
// Guard_Resp reply is matched and discarded without being waited for, so an
// error is returned only when the request cannot be sent. Un-guarding
// (clearing the handler and telling the device to stop) is not supported,
// matching the source client.
func (s *Session) MonitorAlarms(handler AlarmHandler) error {
	s.alarmMu.Lock()
	hadHandler := s.alarmHandler != nil
	s.alarmHandler = handler
	s.alarmMu.Unlock()

	if hadHandler {
		return nil
	}

	payload := protocol.GuardRequest(s.SessionID())
	e := s.registerPending(uint16(protocol.GuardResp), kindJSON)
	wire := protocol.Marshal(s.SessionID(), s.nextSequence(), uint16(protocol.GuardReq), payload)
	if err := s.transport.Send(wire); err != nil {
		s.removePendingByID(e.id)
		return err
	}
	return nil
}
