// Package dvrip is a client library for the DVRIP/Sofia protocol spoken by
// most Chinese-OEM DVR/NVR surveillance recorders. It wraps
// internal/session's framed-transport-and-pending-reply machinery in a
// small facade suitable as the package's primary entry point.
package dvrip

import (
	"time"

	"github.com/dvrip-go/dvrip/internal/dvriperr"
	"github.com/dvrip-go/dvrip/internal/session"
	"go.uber.org/zap"
)

// CommandType is the numeric message-type code carried in a frame header.
// It is a plain uint16 alias; the named codes live in internal/protocol and
// are not re-exported by this package.
type CommandType = uint16

// ErrorType re-exports the dvriperr taxonomy.
type ErrorType = dvriperr.Type

const (
	ErrTransport      = dvriperr.Transport
	ErrDisconnected   = dvriperr.Disconnected
	ErrMalformedReply = dvriperr.MalformedReply
	ErrMissingField   = dvriperr.MissingField
	ErrDevice         = dvriperr.Device
)

// IsDisconnected reports whether err is the disconnection error the client
// produces when the connection drops, letting a caller decide whether to
// redial.
func IsDisconnected(err error) bool {
	return dvriperr.IsDisconnected(err)
}

// AlarmEvent is delivered to a registered alarm handler for every alarm push
// from the device once MonitorAlarms is active.
type AlarmEvent = session.AlarmEvent

// AlarmHandler receives alarm events.
type AlarmHandler = session.AlarmHandler

// Options configures a Client's connection. The zero value is usable.
type Options struct {
	// ConnectTimeout bounds the initial TCP dial. Defaults to
	// session.DefaultConnectTimeout.
	ConnectTimeout time.Duration

	// Logger receives structured connection, frame, and keepalive events.
	// Defaults to a no-op logger.
	Logger *zap.Logger
}

// Client is a connected (or connecting) DVRIP session. It is the package's
// primary entry point: Dial, then Login, then whichever operations the
// device supports.
type Client struct {
	session *session.Session
}

// Dial connects to a device at addr ("host:port", typically port 34567) and
// returns a Client ready for Login. It does not itself authenticate.
func Dial(addr string, opts Options) (*Client, error) {
	s, err := session.Dial(addr, session.Options{
		ConnectTimeout: opts.ConnectTimeout,
		Logger:         opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &Client{session: s}, nil
}

// Close tears down the connection, completing any outstanding call with the
// disconnection error. Safe to call more than once.
func (c *Client) Close() {
	c.session.Close()
}

// SessionID returns the device-assigned session identifier, or 0 before a
// successful Login.
func (c *Client) SessionID() uint32 {
	return c.session.SessionID()
}

// Login authenticates with the device using the DVRIP-Web login flow. On
// success it arms the keepalive timer using the device-advertised interval.
func (c *Client) Login(user, password string) error {
	return c.session.Login(user, password)
}

// ChannelNames retrieves the device's per-channel display titles.
func (c *Client) ChannelNames() ([]string, error) {
	return c.session.GetChannelNames()
}

// SysInfo retrieves a named system-information document, e.g. "SystemInfo".
func (c *Client) SysInfo(name string) (map[string]interface{}, error) {
	return c.session.GetSysInfo(name)
}

// Config retrieves a named configuration section, e.g. "NetWork.NetCommon".
func (c *Client) Config(name string) (map[string]interface{}, error) {
	return c.session.GetConfig(name)
}

// CapturePicture requests a still JPEG snapshot from the given channel and
// returns the raw image bytes.
func (c *Client) CapturePicture(channel int) ([]byte, error) {
	return c.session.CapturePicture(channel)
}

// MonitorAlarms installs handler as the sink for every alarm push from the
// device, arming the device-side push (Guard_Req) on first use. There is no
// way to stop alarm delivery short of Close.
func (c *Client) MonitorAlarms(handler AlarmHandler) error {
	return c.session.MonitorAlarms(handler)
}
