// Package session implements the DVRIP session layer: login, the
// pending-reply correlation table, session-id and sequence bookkeeping, the
// keepalive timer, and the disconnect fan-out. It sits directly on top of
// internal/transport, which owns the socket and the frame codec.
package session

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dvrip-go/dvrip/internal/dvriperr"
	"github.com/dvrip-go/dvrip/internal/logging"
	"github.com/dvrip-go/dvrip/internal/protocol"
	"github.com/dvrip-go/dvrip/internal/sofiahash"
	"github.com/dvrip-go/dvrip/internal/transport"
	"go.uber.org/zap"
)

// DefaultConnectTimeout bounds how long Dial waits for the TCP handshake.
const DefaultConnectTimeout = 10 * time.Second

// Options configures a Session. The zero value is usable; missing fields
// are filled with defaults in Dial.
type Options struct {
	// ConnectTimeout bounds the initial TCP dial. Defaults to
	// DefaultConnectTimeout.
	ConnectTimeout time.Duration

	// Logger receives structured session and transport events. Defaults to
	// a no-op logger.
	Logger *zap.Logger

	// HashPassword transforms a plaintext password into the wire PassWord
	// token. Defaults to sofiahash.Hash. Tests that need to reproduce a
	// known (password, token) pair from a device capture without
	// depending on sofiahash's exact bit-for-bit behavior inject a stub
	// here instead.
	HashPassword func(string) string
}

func (o Options) withDefaults() Options {
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = DefaultConnectTimeout
	}
	if o.HashPassword == nil {
		o.HashPassword = sofiahash.Hash
	}
	return o
}

type entryKind int

const (
	kindJSON entryKind = iota
	kindRaw
)

type pendingResult struct {
	payload []byte
	err     error
}

type pendingEntry struct {
	id       uint64
	msgType  uint16
	kind     entryKind
	resultCh chan pendingResult
}

// AlarmEvent is delivered to a registered alarm handler for every parsed
// Alarm_Req push. Err is set (with Raw holding the parsed document and
// Channel, IsStart and EventName left zero) when the push parsed as JSON but
// did not carry a well-formed AlarmInfo object.
type AlarmEvent struct {
	Channel   int
	IsStart   bool
	EventName string
	Raw       map[string]interface{}
	Err       error
}

// AlarmHandler receives every alarm push once MonitorAlarms has installed it.
type AlarmHandler func(AlarmEvent)

// Session is one logged-in (or logging-in) connection to a device.
type Session struct {
	transport *transport.Transport
	logger    *zap.Logger
	remote    string

	hashPassword func(string) string

	sessionID uint32
	sequence  uint32

	mu      sync.Mutex
	pending []*pendingEntry
	nextID  uint64

	alarmMu      sync.Mutex
	alarmHandler AlarmHandler

	keepaliveMu    sync.Mutex
	keepaliveTimer *time.Timer
}

// Dial resolves and connects to addr ("host:port") and returns a Session
// ready for Login. It does not itself log in.
func Dial(addr string, opts Options) (*Session, error) {
	opts = opts.withDefaults()
	conn, err := net.DialTimeout("tcp", addr, opts.ConnectTimeout)
	if err != nil {
		return nil, dvriperr.NewTransport("dial "+addr, err)
	}
	s := newSession(conn, addr, opts)
	logging.LogConnection(addr, "dial")
	return s, nil
}

func newSession(conn net.Conn, remote string, opts Options) *Session {
	s := &Session{
		logger:       logging.Named(opts.Logger, "session"),
		remote:       remote,
		hashPassword: opts.HashPassword,
	}
	s.transport = transport.New(conn, s.logger, s.dispatch, s.handleDisconnect)
	return s
}

// SessionID returns the current session identifier: 0 before login, and
// thereafter whatever the device most recently asserted via a login reply
// or any subsequent JSON resync.
func (s *Session) SessionID() uint32 {
	return atomic.LoadUint32(&s.sessionID)
}

func (s *Session) nextSequence() uint32 {
	return atomic.AddUint32(&s.sequence, 1) - 1
}

// Close tears down the connection immediately, completing every outstanding
// call with the disconnection error. Safe to call more than once.
func (s *Session) Close() {
	s.transport.Close()
}

func (s *Session) registerPending(msgType uint16, kind entryKind) *pendingEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	e := &pendingEntry{
		id:       s.nextID,
		msgType:  msgType,
		kind:     kind,
		resultCh: make(chan pendingResult, 1),
	}
	s.pending = append(s.pending, e)
	return e
}

// takePending removes and returns the oldest pending entry expecting
// msgType, implementing FIFO-within-type correlation.
func (s *Session) takePending(msgType uint16) (*pendingEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.pending {
		if e.msgType == msgType {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return e, true
		}
	}
	return nil, false
}

func (s *Session) removePendingByID(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.pending {
		if e.id == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return true
		}
	}
	return false
}

// call registers a continuation, serializes and sends the frame under the
// current session id, and blocks for the result. Registration happens
// before the send commits, per the pending-reply invariant; if the send
// itself fails, the entry is removed so it is not fulfilled twice.
func (s *Session) call(msgType uint16, replyType uint16, kind entryKind, payload []byte) pendingResult {
	e := s.registerPending(replyType, kind)
	seq := s.nextSequence()
	wire := protocol.Marshal(s.SessionID(), seq, msgType, payload)
	logging.LogFrame(s.logger, "sent", s.SessionID(), msgType, payload)

	if err := s.transport.Send(wire); err != nil {
		if s.removePendingByID(e.id) {
			return pendingResult{err: err}
		}
		// Entry already resolved by a concurrent dispatch or disconnect
		// fan-out; fall through and read that outcome instead of racing it.
	}
	return <-e.resultCh
}

// dispatch routes one fully decoded inbound frame: alarm pushes bypass the
// pending-reply table entirely, everything else is matched by type code.
func (s *Session) dispatch(f protocol.Frame) {
	if f.Type == uint16(protocol.AlarmReq) {
		s.handleAlarm(f.Payload)
		return
	}

	e, ok := s.takePending(f.Type)
	if !ok {
		s.logger.Warn("unmatched reply, dropping", zap.Uint16("type", f.Type))
		return
	}

	switch e.kind {
	case kindRaw:
		e.resultCh <- pendingResult{payload: f.Payload}
	case kindJSON:
		s.completeJSON(e, f.Payload)
	}
}

// completeJSON implements the "JSON wraps Raw" dual-decode flavor: a parse
// failure is treated as unrecoverable protocol corruption and escalates to
// a full disconnect, after first completing this one call with the
// malformed-reply error. A well-formed envelope is completed with the
// device error (if Ret != success) or success, always carrying the decoded
// payload so the caller can pull out additional fields.
func (s *Session) completeJSON(e *pendingEntry, payload []byte) {
	env, err := protocol.DecodeEnvelope(payload)
	if err != nil {
		e.resultCh <- pendingResult{err: dvriperr.NewMalformedReply(err)}
		s.disconnectLocally("malformed JSON reply")
		return
	}

	if env.HasSID {
		atomic.StoreUint32(&s.sessionID, env.SessionID)
	}

	var callErr error
	switch {
	case !env.RetOK:
		callErr = dvriperr.NewMissingField("Ret")
	case env.Ret != protocol.SuccessCode:
		callErr = dvriperr.NewDevice(env.Ret)
	}
	e.resultCh <- pendingResult{payload: payload, err: callErr}
}

// disconnectLocally tears down the transport as if the peer had gone away.
// The transport's onDisconnect callback (handleDisconnect) performs the
// pending-reply fan-out; this just triggers it.
func (s *Session) disconnectLocally(reason string) {
	s.logger.Warn("disconnecting", zap.String("reason", reason))
	s.transport.Close()
}

// handleDisconnect is the transport's DisconnectHandler. It snapshots and
// clears the pending-reply table under the lock, then completes every
// outstanding call with the disconnection error, and stops the keepalive
// timer. A transport error (a failed read or write) is wrapped into a
// Disconnected error, so callers see the same error type whatever ended
// the connection.
func (s *Session) handleDisconnect(err error) {
	if !dvriperr.IsDisconnected(err) {
		err = &dvriperr.Error{Type: dvriperr.Disconnected, Message: "connection lost", Err: err}
	}

	s.mu.Lock()
	drained := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, e := range drained {
		select {
		case e.resultCh <- pendingResult{err: err}:
		default:
		}
	}

	s.stopKeepalive()
	logging.LogConnection(s.remote, "disconnected")
}
