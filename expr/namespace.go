package expr

import "github.com/tabkit/frames/namespace"

// namespaces holds the user extensions registered against Expr. "str" and
// "meta" are the kind's built-in accessor catalog.
var namespaces = namespace.NewRegistry[*Expr]("expr", "str", "meta")

// Namespaces returns the namespace registry for the expression host kind.
func Namespaces() *namespace.Registry[*Expr] {
	return namespaces
}

// Namespace returns the namespace object bound to this expression instance,
// constructing it on first access and caching it for the instance lifetime.
func (e *Expr) Namespace(name string) (any, error) {
	return namespaces.Bind(e, &e.ns, name)
}
