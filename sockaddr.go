package rebound

import (
	"encoding/binary"
	"net/netip"

	"golang.org/x/sys/unix"
)

// SizeofSockaddrInet4 is the length of a struct sockaddr_in, the only
// address length that gets rewritten.
const SizeofSockaddrInet4 = unix.SizeofSockaddrInet4

// SockaddrInet4 is a decoded struct sockaddr_in.
type SockaddrInet4 struct {
	// Len is sin_len on the BSDs and always zero on Linux.
	Len    uint8
	Family uint16
	// Port is in host byte order.
	Port   uint16
	Addr   netip.Addr
	Zero   [8]byte
}

// NewSockaddrInet4 returns an AF_INET record for ap.
func NewSockaddrInet4(ap netip.AddrPort) SockaddrInet4 {
	return SockaddrInet4{
		Len:    sinLen,
		Family: unix.AF_INET,
		Port:   ap.Port(),
		Addr:   ap.Addr().Unmap(),
	}
}

// ParseSockaddrInet4 decodes a raw sockaddr_in as laid out by the platform.
func ParseSockaddrInet4(b []byte) (SockaddrInet4, error) {
	if len(b) != SizeofSockaddrInet4 {
		return SockaddrInet4{}, &AddrLenError{Len: len(b), Want: SizeofSockaddrInet4}
	}
	var sa SockaddrInet4
	sa.decodeHeader(b[0:2])
	sa.Port = binary.BigEndian.Uint16(b[2:4])
	sa.Addr = netip.AddrFrom4([4]byte(b[4:8]))
	copy(sa.Zero[:], b[8:16])
	return sa, nil
}

// Marshal encodes sa field by field into a new raw sockaddr_in.
func (sa SockaddrInet4) Marshal() []byte {
	b := make([]byte, SizeofSockaddrInet4)
	sa.encodeHeader(b[0:2])
	binary.BigEndian.PutUint16(b[2:4], sa.Port)
	if sa.Addr.Is4() {
		a := sa.Addr.As4()
		copy(b[4:8], a[:])
	}
	copy(b[8:16], sa.Zero[:])
	return b
}

// AddrPort returns the address and port of sa.
func (sa SockaddrInet4) AddrPort() netip.AddrPort {
	return netip.AddrPortFrom(sa.Addr, sa.Port)
}

func (sa SockaddrInet4) String() string {
	return sa.AddrPort().String()
}
