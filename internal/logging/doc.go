// Package logging provides structured logging for the DVRIP client.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the transport and session layers.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (frame hex dumps, bytes written)
//   - Info: Normal operations (dial, login, disconnect)
//   - Warn: Dropped or connection-ending events (unmatched reply dropped,
//     disconnect after a malformed reply, connection lost)
//   - Error: Framing corruption
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("session established",
//	    zap.String("remote_addr", "192.168.1.10:34567"),
//	    zap.String("session_id", "0x0000002a"),
//	)
//
// # Specialized Logging
//
// Connection Logging:
//
//	logging.LogConnection(remoteAddr, "dial")
//	logging.LogConnection(remoteAddr, "login_ok")
//	logging.LogConnection(remoteAddr, "disconnected")
//
// Frame Logging:
//
//	logging.LogFrame(logger, "sent", sessionID, uint16(protocol.LoginReq), payload)
//	logging.LogFrame(logger, "received", sessionID, uint16(protocol.LoginResp), payload)
//
// # Configuration
//
// Initialize logging once, at the top of a CLI command or embedding
// application:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// Session and transport values take an injected *zap.Logger (see
// logging.Named) rather than reading the package global directly, so a
// caller can scope logs per-connection or silence them in tests.
//
// # Thread Safety
//
// Logging calls are safe for concurrent use once the package logger is set.
// Initialize, and the first GetLogger call that installs the no-op default,
// write the package logger without synchronization. The underlying zap
// logger handles synchronization of log output.
package logging
