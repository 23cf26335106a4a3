// Package symbols turns compiler-decorated symbol names into readable text.
//
// A Resolver caches every lookup for its lifetime. Cache access and calls
// into the demangler are serialized by two separate locks, and the
// demangler itself is created lazily on first use.
package symbols

import (
	"strings"
	"sync"

	"github.com/vividos/ProgrammersGlasses/internal/logger"
)

const importPrefix = "__imp_"

// Options configures a Resolver.
type Options struct {
	// NewDemangler creates the demangling service on first use.
	// Defaults to the built-in NewDemangler.
	NewDemangler func() (Demangler, error)
}

// DefaultOptions returns options using the built-in demangler.
func DefaultOptions() Options {
	return Options{NewDemangler: NewDemangler}
}

// Stats describes cache activity.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// Resolver undecorates symbol names and caches the results. It is safe for
// concurrent use.
type Resolver struct {
	mu     sync.Mutex
	cache  map[string]string
	hits   uint64
	misses uint64

	svcMu   sync.Mutex
	svcOnce sync.Once
	svc     Demangler
	svcErr  error
	newSvc  func() (Demangler, error)
}

// New creates a resolver with an empty cache.
func New(opts Options) *Resolver {
	if opts.NewDemangler == nil {
		opts.NewDemangler = NewDemangler
	}
	return &Resolver{cache: make(map[string]string), newSvc: opts.NewDemangler}
}

var (
	defaultOnce     sync.Once
	defaultResolver *Resolver
)

// Default returns the process-wide resolver.
func Default() *Resolver {
	defaultOnce.Do(func() {
		defaultResolver = New(DefaultOptions())
	})
	return defaultResolver
}

// Undecorate resolves name with the process-wide resolver.
func Undecorate(name string) string {
	return Default().Undecorate(name)
}

// IsDecorated reports whether name carries a decoration the resolver
// understands. Import thunk prefixes and "$" compiler labels are not
// considered.
func IsDecorated(name string) bool {
	return strings.HasPrefix(name, "?") || isItanium(name) || isCallDecorated(name)
}

// Undecorate returns the readable form of name. Names with the import
// thunk prefix resolve to "import: " followed by the resolved remainder.
// Undecorated names are returned unchanged; names that fail to demangle
// are cached as themselves.
func (r *Resolver) Undecorate(name string) string {
	if strings.HasPrefix(name, importPrefix) && len(name) > len(importPrefix) {
		return "import: " + r.Undecorate(name[len(importPrefix):])
	}
	if !IsDecorated(name) {
		return name
	}

	r.mu.Lock()
	if text, ok := r.cache[name]; ok {
		r.hits++
		r.mu.Unlock()
		return text
	}
	r.mu.Unlock()

	text, err := r.demangle(name)
	if err != nil {
		return name + " - demangler unavailable"
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.cache[name]; ok {
		// another caller resolved it meanwhile
		r.hits++
		return cached
	}
	r.cache[name] = text
	r.misses++
	return text
}

func (r *Resolver) demangle(name string) (string, error) {
	r.svcOnce.Do(func() {
		r.svc, r.svcErr = r.newSvc()
		if r.svcErr != nil {
			logger.Error("demangler initialization failed", "error", r.svcErr)
		}
	})
	if r.svcErr != nil {
		return "", r.svcErr
	}

	r.svcMu.Lock()
	defer r.svcMu.Unlock()
	text, ok := r.svc.Demangle(name)
	if !ok {
		logger.Debug("symbol not demangled", "symbol", name)
		return name, nil
	}
	return text, nil
}

// Stats returns a snapshot of the cache counters.
func (r *Resolver) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{Hits: r.hits, Misses: r.misses, Entries: len(r.cache)}
}
