package rebound

import (
	"os"

	"golang.org/x/sys/unix"
)

// Freebind sets IP_FREEBIND on fd so it may bind an address that is not (yet)
// assigned to a local interface.
func Freebind(fd int) error {
	// applies to both IPv4 and IPv6 sockets
	return os.NewSyscallError("setsockopt", unix.SetsockoptInt(fd, unix.SOL_IP, unix.IP_FREEBIND, 1))
}
