//go:build cgo && (linux || freebsd)

// Command librebound builds the preloadable shim:
//
//	go build -buildmode=c-shared -o librebound.so ./cmd/librebound
//	REBOUND_IP=192.0.2.10 LD_PRELOAD=./librebound.so some-server
//
// The library defines bind(2). IPv4 binds are sent to REBOUND_IP with the
// requested port, everything else goes to the next bind in the search order.
package main

/*
#cgo CFLAGS: -D_GNU_SOURCE
#cgo linux LDFLAGS: -ldl

#include <stdlib.h>
#include <sys/types.h>
#include <sys/socket.h>

void *rebound_next_symbol(const char *name, const char **errmsg);
int rebound_call_bind(void *fn, int sockfd, const struct sockaddr *addr, socklen_t addrlen);
*/
import "C"

import (
	"errors"
	"sync/atomic"
	"unsafe"

	"github.com/lanrat/rebound"
	"golang.org/x/sys/unix"
)

var (
	bindSymbol = C.CString("bind")
	// nextBind is the raw symbol, kept for NULL address records which have
	// no Go slice to carry their length.
	nextBind atomic.Pointer[byte]
	shim     = newShim()
)

func main() {}

func newShim() *rebound.Shim {
	s := rebound.New(lookupNext)
	s.Environ = liveEnviron
	return s
}

// envNames are the variables the shim reads, as C strings.
var envNames = func() map[string]*C.char {
	names := make(map[string]*C.char)
	for _, key := range []string{rebound.EnvIP, rebound.EnvFreebind, rebound.EnvCompat} {
		names[key] = C.CString(key)
	}
	return names
}()

// liveEnviron reads the options from the C environment of the host. The Go
// runtime copies envp once when the library loads, so os.Environ would miss
// setenv and unsetenv calls the host makes later.
func liveEnviron() []string {
	environ := make([]string, 0, len(envNames))
	for key, name := range envNames {
		if v := C.getenv(name); v != nil {
			environ = append(environ, key+"="+C.GoString(v))
		}
	}
	return environ
}

// lookupNext resolves bind with RTLD_NEXT, which may land on libc or on
// another preloaded library.
func lookupNext() (rebound.BindFunc, error) {
	var msg *C.char
	sym := C.rebound_next_symbol(bindSymbol, &msg)
	if sym == nil {
		err := errors.New("symbol not found")
		if msg != nil {
			err = errors.New(C.GoString(msg))
		}
		return nil, &rebound.ResolveError{Symbol: "bind", Err: err}
	}
	nextBind.Store((*byte)(sym))
	return func(fd int, addr []byte) (int, error) {
		return callBind(sym, fd, (*C.struct_sockaddr)(unsafe.Pointer(unsafe.SliceData(addr))), C.socklen_t(len(addr)))
	}, nil
}

func callBind(sym unsafe.Pointer, fd int, addr *C.struct_sockaddr, addrlen C.socklen_t) (int, error) {
	ret, err := C.rebound_call_bind(sym, C.int(fd), addr, addrlen)
	if ret == 0 {
		return 0, nil
	}
	return int(ret), err
}

//export reboundBind
func reboundBind(fd C.int, addr *C.struct_sockaddr, addrlen C.socklen_t, errnop *C.int) C.int {
	var (
		ret int
		err error
	)
	if addr == nil {
		ret, err = bindNull(int(fd), addrlen)
	} else {
		ret, err = shim.Bind(int(fd), unsafe.Slice((*byte)(unsafe.Pointer(addr)), int(addrlen)))
	}
	var errno unix.Errno
	if errors.As(err, &errno) {
		*errnop = C.int(errno)
	}
	return C.int(ret)
}

// bindNull forwards a bind without an address record untouched, so the
// original reports the error it would have reported anyway.
func bindNull(fd int, addrlen C.socklen_t) (int, error) {
	return shim.Forward(int(addrlen), func() (int, error) {
		return callBind(unsafe.Pointer(nextBind.Load()), fd, nil, addrlen)
	})
}
