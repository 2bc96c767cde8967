package rebound

import (
	"errors"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// LookupFunc finds the bind implementation that follows this one in the
// dynamic linker's search order.
type LookupFunc func() (BindFunc, error)

// Resolver lazily looks up the original bind and caches it for the life of
// the process.
//
// A successful lookup is published once and never repeated. A failed lookup
// is not cached, so the next Resolve tries again. Concurrent first calls
// share a single lookup.
type Resolver struct {
	// OnLookup, if set, is called before every lookup attempt.
	OnLookup func()

	lookup   LookupFunc
	bind     atomic.Pointer[BindFunc]
	flight   singleflight.Group
	attempts atomic.Uint64
}

// NewResolver returns an unresolved Resolver using lookup.
func NewResolver(lookup LookupFunc) *Resolver {
	return &Resolver{lookup: lookup}
}

// Resolve returns the original bind, looking it up if it is not cached yet.
func (r *Resolver) Resolve() (BindFunc, error) {
	if fn := r.bind.Load(); fn != nil {
		return *fn, nil
	}
	v, err, _ := r.flight.Do("bind", func() (any, error) {
		// another flight may have finished between Load and Do
		if fn := r.bind.Load(); fn != nil {
			return *fn, nil
		}
		r.attempts.Add(1)
		if r.OnLookup != nil {
			r.OnLookup()
		}
		fn, err := r.lookup()
		if err != nil {
			return nil, err
		}
		if fn == nil {
			return nil, &ResolveError{Symbol: "bind", Err: errors.New("lookup returned no function")}
		}
		r.bind.Store(&fn)
		return fn, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(BindFunc), nil
}

// Resolved reports whether the original bind has been found.
func (r *Resolver) Resolved() bool {
	return r.bind.Load() != nil
}

// Attempts returns the number of lookups performed so far.
func (r *Resolver) Attempts() uint64 {
	return r.attempts.Load()
}
