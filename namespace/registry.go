package namespace

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/tabkit/frames/pkg/logger"
)

type entry[H any] struct {
	def  Definition
	ctor Constructor[H]
}

// Registry holds the active namespace registrations for one host kind. It is
// process-wide state by design: namespaces extend shared types, so every
// instance of the host kind sees the same registrations.
//
// The built-in accessor names passed at construction are frozen; they can
// never be replaced by a user registration. User registrations for the same
// name replace each other in full, with a warning on the second and later
// calls.
type Registry[H any] struct {
	mu       sync.RWMutex
	host     string
	entries  map[string]entry[H]
	builtins map[string]struct{}
	lggr     logger.Logger
}

// NewRegistry creates a Registry for the named host kind, seeded with the
// kind's built-in accessor names.
func NewRegistry[H any](host string, builtins ...string) *Registry[H] {
	r := &Registry[H]{
		host:     host,
		entries:  make(map[string]entry[H]),
		builtins: make(map[string]struct{}, len(builtins)),
		lggr:     logger.Nop(),
	}
	for _, name := range builtins {
		r.builtins[name] = struct{}{}
	}

	return r
}

// Host returns the host kind label, e.g. "frame" or "expr".
func (r *Registry[H]) Host() string {
	return r.host
}

// SetLogger replaces the logger used for override warnings.
func (r *Registry[H]) SetLogger(lggr logger.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lggr = lggr
}

// Register installs a namespace constructor under def.Name. Registering over
// an existing user namespace succeeds, fully replacing the previous
// registration and emitting a warning. Registering over a built-in name
// fails with ErrReservedNamespace and installs nothing.
func (r *Registry[H]) Register(def Definition, ctor Constructor[H]) error {
	if err := validateName(def.Name); err != nil {
		return err
	}
	if ctor == nil {
		return fmt.Errorf("%w: %q on %s", ErrNilConstructor, def.Name, r.host)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.builtins[def.Name]; ok {
		return fmt.Errorf("%w: %q is built in on %s", ErrReservedNamespace, def.Name, r.host)
	}
	if _, ok := r.entries[def.Name]; ok {
		r.lggr.Warnw("Overriding existing custom namespace",
			"name", def.Name,
			"host", r.host,
		)
	}

	r.entries[def.Name] = entry[H]{def: def, ctor: ctor}

	return nil
}

// Lookup returns the registered constructor itself, without binding it to an
// instance. This is the type-level view of a namespace: it allows checking a
// registered capability (and retrieving the constructor) without a host.
func (r *Registry[H]) Lookup(name string) (Constructor[H], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}

	return e.ctor, true
}

// Describe returns the Definition recorded for a user registration.
func (r *Registry[H]) Describe(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return Definition{}, false
	}

	return e.def, true
}

// Has reports whether name is taken on this host kind, either by a built-in
// accessor or by a user registration.
func (r *Registry[H]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.builtins[name]; ok {
		return true
	}
	_, ok := r.entries[name]

	return ok
}

// Names returns the full accessor catalog of this host kind: built-ins plus
// every currently registered user namespace, sorted.
func (r *Registry[H]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.builtins)+len(r.entries))
	names = append(names, slices.Collect(maps.Keys(r.builtins))...)
	for name := range r.entries {
		if _, ok := r.builtins[name]; !ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	return names
}

// Builtins returns the kind's built-in accessor names, sorted. The result is
// a snapshot taken at registry construction and never includes user
// registrations.
func (r *Registry[H]) Builtins() []string {
	names := slices.Collect(maps.Keys(r.builtins))
	slices.Sort(names)

	return names
}

// Bind resolves name against host, constructing the namespace object on
// first access and caching it in the instance-local cache. Subsequent
// accesses on the same instance return the identical cached object without
// consulting the registry again. Construction errors propagate to the
// caller and cache nothing.
func (r *Registry[H]) Bind(host H, cache *Cache, name string) (any, error) {
	// Fast path: already bound on this instance.
	if v, ok := cache.get(name); ok {
		return v, nil
	}

	ctor, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q on %s", ErrNamespaceNotFound, name, r.host)
	}

	return cache.bind(name, func() (any, error) {
		return ctor(host)
	})
}
