//go:build linux || solaris

package rebound

import "encoding/binary"

// sinLen is the sin_len value of a fresh record. Linux and Solaris have no
// sin_len.
const sinLen = 0

// sin_family is a host order unsigned short.
func (sa *SockaddrInet4) decodeHeader(b []byte) {
	sa.Family = binary.NativeEndian.Uint16(b)
}

func (sa SockaddrInet4) encodeHeader(b []byte) {
	binary.NativeEndian.PutUint16(b, sa.Family)
}
