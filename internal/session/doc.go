// Package session is exercised end to end in session_test.go against a
// net.Pipe standing in for the device side of the connection: the test
// goroutine plays "device", reading request frames and writing scripted
// replies, while the Session under test only ever sees a net.Conn.
package session
