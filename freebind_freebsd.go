package rebound

import (
	"os"

	"golang.org/x/sys/unix"
)

// Freebind sets IP_BINDANY on fd so it may bind an address that is not
// assigned to a local interface. Only IPv4 sockets are rewritten, so the
// IPv6 variant is not needed. Requires PRIV_NETINET_BINDANY.
func Freebind(fd int) error {
	return os.NewSyscallError("setsockopt", unix.SetsockoptInt(fd, unix.IPPROTO_IP, unix.IP_BINDANY, 1))
}
