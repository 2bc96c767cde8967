//go:build unix && !linux && !freebsd

package rebound

// Freebind always fails on platforms other than Linux and FreeBSD.
func Freebind(fd int) error {
	return ErrFreebindUnsupported
}
