package series

import "github.com/tabkit/frames/namespace"

// namespaces holds the user extensions registered against Series. "str" is
// the kind's built-in accessor catalog.
var namespaces = namespace.NewRegistry[*Series]("series", "str")

// Namespaces returns the namespace registry for the series host kind.
func Namespaces() *namespace.Registry[*Series] {
	return namespaces
}

// Namespace returns the namespace object bound to this series instance,
// constructing it on first access and caching it for the instance lifetime.
func (s *Series) Namespace(name string) (any, error) {
	return namespaces.Bind(s, &s.ns, name)
}
