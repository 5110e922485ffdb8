// Package transport owns the raw TCP socket for a DVRIP connection: dialing,
// the inbound frame-extraction loop, and an outbound writer that preserves
// enqueue order.
package transport

import (
	"encoding/hex"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/dvrip-go/dvrip/internal/dvriperr"
	"github.com/dvrip-go/dvrip/internal/logging"
	"github.com/dvrip-go/dvrip/internal/protocol"
	"go.uber.org/zap"
)

// inboundBufferCap bounds the read-accumulation buffer. Frames larger than
// this (or a pathological run of undecodable bytes) are never produced by a
// real device; the cap exists so a confused peer cannot force unbounded
// growth.
const inboundBufferCap = 128 * 1024

// FrameHandler receives one fully decoded frame at a time, in arrival order.
type FrameHandler func(protocol.Frame)

// DisconnectHandler is invoked exactly once, the first time the connection
// is judged unusable: a read error, EOF, a framing magic mismatch, or an
// explicit Close.
type DisconnectHandler func(error)

// Transport drives one net.Conn: a reader goroutine that extracts frames and
// hands them to onFrame, and a writer goroutine that serializes outbound
// frames so wire order always matches enqueue order and at most one write is
// in flight at a time.
type Transport struct {
	conn   net.Conn
	logger *zap.Logger

	onFrame      FrameHandler
	onDisconnect DisconnectHandler

	writeCh chan []byte
	done    chan struct{}

	closeOnce      sync.Once
	disconnectOnce sync.Once
}

// Dial connects to addr (host:port) and starts the reader/writer goroutines.
// onFrame is called from the reader goroutine; callers must not block it for
// long. onDisconnect fires at most once.
func Dial(addr string, timeout time.Duration, logger *zap.Logger, onFrame FrameHandler, onDisconnect DisconnectHandler) (*Transport, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, dvriperr.NewTransport("dial "+addr, err)
	}
	return New(conn, logger, onFrame, onDisconnect), nil
}

// New wraps an already-established net.Conn (a real socket, or a net.Pipe
// endpoint in tests) and starts its reader/writer goroutines.
func New(conn net.Conn, logger *zap.Logger, onFrame FrameHandler, onDisconnect DisconnectHandler) *Transport {
	t := &Transport{
		conn:         conn,
		logger:       logging.Named(logger, "transport"),
		onFrame:      onFrame,
		onDisconnect: onDisconnect,
		writeCh:      make(chan []byte, 32),
		done:         make(chan struct{}),
	}
	go t.writeLoop()
	go t.readLoop()
	return t
}

// Send enqueues a complete wire frame for transmission and returns without
// waiting for the write; it blocks only while the 32-frame queue is full.
// The writer goroutine drains writeCh strictly in order, so frames enqueued
// before Login_Req finishes are never reordered behind ones enqueued after.
// Once the transport has failed or been closed, Send returns the
// disconnection error.
func (t *Transport) Send(frame []byte) error {
	select {
	case <-t.done:
		return dvriperr.NewDisconnected("send after disconnect")
	default:
	}
	select {
	case t.writeCh <- frame:
		return nil
	case <-t.done:
		return dvriperr.NewDisconnected("send after disconnect")
	}
}

func (t *Transport) writeLoop() {
	for {
		select {
		case frame := <-t.writeCh:
			if _, err := t.conn.Write(frame); err != nil {
				t.fail(dvriperr.NewTransport("write", err))
				return
			}
			t.logger.Debug("frame written", zap.Int("bytes", len(frame)))
		case <-t.done:
			return
		}
	}
}

func (t *Transport) readLoop() {
	buf := make([]byte, 0, inboundBufferCap)
	chunk := make([]byte, 16*1024)

	for {
		n, err := t.conn.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			buf = t.extractFrames(buf)
		}
		if err != nil {
			if err == io.EOF {
				t.fail(dvriperr.NewDisconnected("connection closed by peer"))
			} else {
				t.fail(dvriperr.NewTransport("read", err))
			}
			return
		}
	}
}

// extractFrames pulls every complete frame out of buf, dispatching each to
// onFrame, and returns the leftover bytes compacted to the front. A bad
// magic byte at the start of a would-be frame is treated as an
// unrecoverable framing error: the source protocol has no resynchronization
// strategy, so the connection is torn down rather than scanning forward.
func (t *Transport) extractFrames(buf []byte) []byte {
	for {
		if len(buf) < protocol.HeaderLength {
			return buf
		}
		_, _, _, _, payloadLen, err := protocol.ParseHeader(buf)
		if err != nil {
			t.logger.Error("framing error", zap.Error(err), zap.String("hex", hex.EncodeToString(head(buf, 32))))
			t.fail(dvriperr.NewDisconnected(fmt.Sprintf("framing error: %v", err)))
			return nil
		}
		total := protocol.HeaderLength + int(payloadLen)
		if len(buf) < total {
			if total > inboundBufferCap {
				t.fail(dvriperr.NewDisconnected("frame exceeds inbound buffer capacity"))
				return nil
			}
			return buf
		}
		f, consumed, err := protocol.Parse(buf[:total])
		if err != nil {
			t.fail(dvriperr.NewDisconnected(fmt.Sprintf("framing error: %v", err)))
			return nil
		}
		t.onFrame(f)
		buf = buf[consumed:]
	}
}

func head(buf []byte, n int) []byte {
	if len(buf) < n {
		return buf
	}
	return buf[:n]
}

// fail runs the disconnect handler exactly once and unblocks any writer
// waiting on Send.
func (t *Transport) fail(err error) {
	t.disconnectOnce.Do(func() {
		t.logger.Warn("connection lost", zap.Error(err))
		t.closeOnce.Do(func() {
			close(t.done)
			_ = t.conn.Close()
		})
		if t.onDisconnect != nil {
			t.onDisconnect(err)
		}
	})
}

// Close tears the connection down and fires the disconnect handler as if
// the peer had closed it. Safe to call more than once.
func (t *Transport) Close() {
	t.fail(dvriperr.NewDisconnected("closed locally"))
}
