package frame

import "github.com/tabkit/frames/namespace"

// namespaces holds the user extensions registered against Frame. The frame
// kind ships with no built-in accessors.
var namespaces = namespace.NewRegistry[*Frame]("frame")

// Namespaces returns the namespace registry for the frame host kind.
func Namespaces() *namespace.Registry[*Frame] {
	return namespaces
}

// Namespace returns the namespace object bound to this frame instance,
// constructing it on first access and caching it for the instance lifetime.
func (df *Frame) Namespace(name string) (any, error) {
	return namespaces.Bind(df, &df.ns, name)
}
