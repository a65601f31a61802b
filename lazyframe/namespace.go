package lazyframe

import "github.com/tabkit/frames/namespace"

// namespaces holds the user extensions registered against LazyFrame. The
// lazy frame kind ships with no built-in accessors.
var namespaces = namespace.NewRegistry[*LazyFrame]("lazyframe")

// Namespaces returns the namespace registry for the lazy frame host kind.
func Namespaces() *namespace.Registry[*LazyFrame] {
	return namespaces
}

// Namespace returns the namespace object bound to this lazy frame instance,
// constructing it on first access and caching it for the instance lifetime.
func (lf *LazyFrame) Namespace(name string) (any, error) {
	return namespaces.Bind(lf, &lf.ns, name)
}
