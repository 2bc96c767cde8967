package rebound

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned by symbol lookups on platforms without
// RTLD_NEXT style interposition.
var ErrUnsupported = errors.New("symbol interposition is not supported on this platform")

// ErrFreebindUnsupported is returned by Freebind on platforms that cannot
// bind to non-local addresses.
var ErrFreebindUnsupported = errors.New("freebind is not supported on this platform")

// ResolveError reports that the next definition of a symbol past this
// library could not be found.
type ResolveError struct {
	Symbol string
	Err    error
}

// Error returns a formatted error message for the failed lookup.
func (e *ResolveError) Error() string {
	return fmt.Sprintf("dlsym %s: %v", e.Symbol, e.Err)
}

// Unwrap returns the lookup failure.
func (e *ResolveError) Unwrap() error {
	return e.Err
}

// AddrLenError reports a bind whose address is not a sockaddr_in.
type AddrLenError struct {
	Len  int
	Want int
}

func (e *AddrLenError) Error() string {
	return fmt.Sprintf("unknown addrlen %d, want %d", e.Len, e.Want)
}

// MissingOverrideError reports that no override address is configured.
type MissingOverrideError struct {
	Var string
}

func (e *MissingOverrideError) Error() string {
	return fmt.Sprintf("no %s environment variable", e.Var)
}

// OverrideError reports an override that is not an IPv4 address.
type OverrideError struct {
	Var   string
	Value string
	Err   error
}

func (e *OverrideError) Error() string {
	return fmt.Sprintf("%s (%s) is not an IPv4 address", e.Var, e.Value)
}

// Unwrap returns the parse failure, if there was one.
func (e *OverrideError) Unwrap() error {
	return e.Err
}
