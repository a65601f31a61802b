package api

import (
	"fmt"
	"slices"
	"sync"

	"github.com/tabkit/frames/expr"
	"github.com/tabkit/frames/frame"
	"github.com/tabkit/frames/lazyframe"
	"github.com/tabkit/frames/namespace"
	"github.com/tabkit/frames/pkg/logger"
	"github.com/tabkit/frames/series"
)

var (
	reservedOnce sync.Once
	reserved     map[string]struct{}
)

// reservedNames is the process-wide reservation registry: the union of every
// host kind's built-in accessor catalog, snapshotted once. User
// registrations never enter this set, so registering "foo" on one kind never
// reserves "foo" on another.
func reservedNames() map[string]struct{} {
	reservedOnce.Do(func() {
		reserved = make(map[string]struct{})
		for _, names := range [][]string{
			expr.Namespaces().Builtins(),
			frame.Namespaces().Builtins(),
			lazyframe.Namespaces().Builtins(),
			series.Namespaces().Builtins(),
		} {
			for _, name := range names {
				reserved[name] = struct{}{}
			}
		}
	})

	return reserved
}

// IsReserved reports whether name belongs to the library's own built-in
// namespaces and is therefore closed to user registration on every host
// kind.
func IsReserved(name string) bool {
	_, ok := reservedNames()[name]

	return ok
}

// ReservedNames returns the reservation registry contents, sorted.
func ReservedNames() []string {
	names := make([]string, 0, len(reservedNames()))
	for name := range reservedNames() {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// SetLogger routes override warnings for all four host kinds to lggr.
func SetLogger(lggr logger.Logger) {
	expr.Namespaces().SetLogger(lggr)
	frame.Namespaces().SetLogger(lggr)
	lazyframe.Namespaces().SetLogger(lggr)
	series.Namespaces().SetLogger(lggr)
}

// register produces the decorator for one (host kind, definition) pair. The
// decorator installs the constructor and hands it back unchanged so a
// package can register its constructor at declaration site:
//
//	var newPowers = api.RegisterExprNamespace("power")(NewPowersOfN)
//
// A reserved or invalid name panics: registration runs at load time and a
// bad name is a programming error that must not install partial state.
func register[H any](reg *namespace.Registry[H], def namespace.Definition) func(namespace.Constructor[H]) namespace.Constructor[H] {
	return func(ctor namespace.Constructor[H]) namespace.Constructor[H] {
		if IsReserved(def.Name) {
			panic(fmt.Errorf("%w: %q", namespace.ErrReservedNamespace, def.Name))
		}
		if err := reg.Register(def, ctor); err != nil {
			panic(fmt.Errorf("registering %q on %s: %w", def.Name, reg.Host(), err))
		}

		return ctor
	}
}

// RegisterExprNamespace registers custom functionality under name on the
// expression host kind. It returns a decorator that accepts the namespace
// constructor and returns it unchanged.
func RegisterExprNamespace(name string) func(namespace.Constructor[*expr.Expr]) namespace.Constructor[*expr.Expr] {
	return RegisterExprNamespaceWith(name)
}

// RegisterExprNamespaceWith is RegisterExprNamespace with registration
// metadata options (namespace.WithVersion, namespace.WithDescription).
func RegisterExprNamespaceWith(name string, opts ...namespace.Option) func(namespace.Constructor[*expr.Expr]) namespace.Constructor[*expr.Expr] {
	return register(expr.Namespaces(), namespace.NewDefinition(name, opts...))
}

// RegisterFrameNamespace registers custom functionality under name on the
// frame host kind. It returns a decorator that accepts the namespace
// constructor and returns it unchanged.
func RegisterFrameNamespace(name string) func(namespace.Constructor[*frame.Frame]) namespace.Constructor[*frame.Frame] {
	return RegisterFrameNamespaceWith(name)
}

// RegisterFrameNamespaceWith is RegisterFrameNamespace with registration
// metadata options.
func RegisterFrameNamespaceWith(name string, opts ...namespace.Option) func(namespace.Constructor[*frame.Frame]) namespace.Constructor[*frame.Frame] {
	return register(frame.Namespaces(), namespace.NewDefinition(name, opts...))
}

// RegisterLazyFrameNamespace registers custom functionality under name on
// the lazy frame host kind. It returns a decorator that accepts the
// namespace constructor and returns it unchanged.
func RegisterLazyFrameNamespace(name string) func(namespace.Constructor[*lazyframe.LazyFrame]) namespace.Constructor[*lazyframe.LazyFrame] {
	return RegisterLazyFrameNamespaceWith(name)
}

// RegisterLazyFrameNamespaceWith is RegisterLazyFrameNamespace with
// registration metadata options.
func RegisterLazyFrameNamespaceWith(name string, opts ...namespace.Option) func(namespace.Constructor[*lazyframe.LazyFrame]) namespace.Constructor[*lazyframe.LazyFrame] {
	return register(lazyframe.Namespaces(), namespace.NewDefinition(name, opts...))
}

// RegisterSeriesNamespace registers custom functionality under name on the
// series host kind. It returns a decorator that accepts the namespace
// constructor and returns it unchanged.
func RegisterSeriesNamespace(name string) func(namespace.Constructor[*series.Series]) namespace.Constructor[*series.Series] {
	return RegisterSeriesNamespaceWith(name)
}

// RegisterSeriesNamespaceWith is RegisterSeriesNamespace with registration
// metadata options.
func RegisterSeriesNamespaceWith(name string, opts ...namespace.Option) func(namespace.Constructor[*series.Series]) namespace.Constructor[*series.Series] {
	return register(series.Namespaces(), namespace.NewDefinition(name, opts...))
}
