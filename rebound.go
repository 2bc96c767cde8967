// Package rebound rewrites the address of IPv4 bind(2) calls to an address
// chosen by the operator, keeping the requested port.
//
// The package holds everything the interposed bind does except the C ABI
// glue: resolving the original implementation, reading the per-call
// configuration, rewriting the sockaddr_in record and reporting what happened
// on stderr. cmd/librebound exports it as the libc bind symbol so it can be
// injected with LD_PRELOAD.
//
// The package builds on unix systems only. Windows, Plan 9 and the wasm
// ports have no bind(2) to interpose.
package rebound

import (
	"os"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// BindFunc has the shape of bind(2). addr is the raw socket address record
// and its length is the address length passed to the call. A failed call
// returns a non-zero result and, when one was set, a unix.Errno.
type BindFunc func(fd int, addr []byte) (int, error)

// Shim is the interposed bind operation.
type Shim struct {
	// Resolver finds the bind implementation calls are forwarded to.
	Resolver *Resolver
	// Logger receives the diagnostics.
	Logger   *zap.Logger
	// Environ returns the environment Config is parsed from. It is called on
	// every bind so the override can change while the process runs.
	Environ  func() []string
	// Freebind marks a socket as allowed to bind non-local addresses.
	Freebind func(fd int) error
}

// New returns a Shim resolving the original bind with lookup and reporting
// to stderr.
func New(lookup LookupFunc) *Shim {
	return &Shim{
		Resolver: NewResolver(lookup),
		Logger:   NewLogger(os.Stderr),
		Environ:  os.Environ,
		Freebind: Freebind,
	}
}

// Bind forwards a bind call to the original implementation, replacing the
// IPv4 address with REBOUND_IP when one is configured. The result of the
// original implementation is returned unchanged.
func (s *Shim) Bind(fd int, addr []byte) (int, error) {
	cfg := s.config()
	orig, ret, err := s.original(cfg)
	if orig == nil {
		return ret, err
	}

	if len(addr) != SizeofSockaddrInet4 {
		s.Logger.Warn((&AddrLenError{Len: len(addr), Want: SizeofSockaddrInet4}).Error())
		return orig(fd, addr)
	}

	if !cfg.HasIP {
		s.Logger.Warn((&MissingOverrideError{Var: EnvIP}).Error())
		return orig(fd, addr)
	}

	req, err := ParseSockaddrInet4(addr)
	if err != nil {
		s.Logger.Warn(err.Error())
		return orig(fd, addr)
	}

	naddr, err := Rewrite(req, cfg.IP)
	if err != nil {
		s.Logger.Warn(err.Error())
		return orig(fd, addr)
	}

	if cfg.Freebind && s.Freebind != nil {
		if err := s.Freebind(fd); err != nil {
			s.Logger.Warn("cannot enable freebind", zap.Int("fd", fd), zap.Error(err))
		}
	}

	s.Logger.Info("calling bind",
		zap.Int("fd", fd),
		zap.String("ip", cfg.IP),
		zap.Uint16("port", naddr.Port),
	)

	ret, err = orig(fd, naddr.Marshal())
	if ret != 0 {
		s.Logger.Warn("bind failed",
			zap.Int("fd", fd),
			zap.Stringer("addr", naddr),
			zap.Int("ret", ret),
			zap.Error(err),
		)
	}
	return ret, err
}

// Forward resolves the original bind and then calls pass, for requests the
// shim cannot look into such as a NULL address record. addrlen is the length
// the caller passed. The diagnostic is the one Bind would have reported first
// for the same environment. It fails the same way Bind does when the original
// cannot be resolved.
func (s *Shim) Forward(addrlen int, pass func() (int, error)) (int, error) {
	cfg := s.config()
	if orig, ret, err := s.original(cfg); orig == nil {
		return ret, err
	}
	switch {
	case addrlen != SizeofSockaddrInet4:
		s.Logger.Warn((&AddrLenError{Len: addrlen, Want: SizeofSockaddrInet4}).Error())
	case !cfg.HasIP:
		s.Logger.Warn((&MissingOverrideError{Var: EnvIP}).Error())
	default:
		s.Logger.Warn("no address record, passing through")
	}
	return pass()
}

func (s *Shim) config() Config {
	cfg, err := LoadConfig(s.Environ())
	if err != nil {
		s.Logger.Warn("ignoring malformed options", zap.Error(err))
	}
	return cfg
}

// original resolves the original bind. When that fails it returns a nil
// BindFunc along with the result the call has to return.
func (s *Shim) original(cfg Config) (BindFunc, int, error) {
	orig, err := s.Resolver.Resolve()
	if err != nil {
		s.Logger.Error("cannot resolve original bind", zap.Error(err))
		if cfg.Compat {
			return nil, int(unix.EINVAL), nil
		}
		return nil, -1, unix.EINVAL
	}
	return orig, 0, nil
}
