//go:build aix || darwin || dragonfly || freebsd || netbsd || openbsd

package rebound

const sinLen = SizeofSockaddrInet4

// The BSDs and AIX split the first half word into sin_len and a one byte sin_family.
func (sa *SockaddrInet4) decodeHeader(b []byte) {
	sa.Len = b[0]
	sa.Family = uint16(b[1])
}

func (sa SockaddrInet4) encodeHeader(b []byte) {
	b[0] = sa.Len
	b[1] = uint8(sa.Family)
}
