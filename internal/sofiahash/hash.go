// Package sofiahash implements the password digest used by the DVRIP/Sofia
// login handshake. It is a pure function: bytes in, bytes out. The core
// session layer treats it as an external collaborator and never inspects
// its internals.
package sofiahash

import "crypto/md5"

// alphabet is the 62-character table the device firmware folds MD5 nibble
// pairs into. Order matches every known Sofia client implementation.
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Hash transforms a plaintext password into the 8-character token sent as
// the login request's PassWord field.
//
// Algorithm: MD5 the password, then for each of the 8 adjacent byte pairs
// in the digest, sum the two bytes and index into alphabet modulo 62.
func Hash(password string) string {
	sum := md5.Sum([]byte(password))

	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		a, b := sum[2*i], sum[2*i+1]
		out[i] = alphabet[(int(a)+int(b))%len(alphabet)]
	}
	return string(out)
}
