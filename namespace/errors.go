package namespace

import "errors"

var (
	// ErrReservedNamespace is returned when a registration attempts to use a
	// name claimed by one of the library's own built-in namespaces.
	ErrReservedNamespace = errors.New("cannot override reserved namespace")

	// ErrNamespaceNotFound is returned when an instance accesses a namespace
	// name with no active registration on its host kind.
	ErrNamespaceNotFound = errors.New("namespace not registered")

	// ErrInvalidNamespaceName is returned when a registration name is empty
	// or is not a valid identifier.
	ErrInvalidNamespaceName = errors.New("invalid namespace name")

	// ErrNilConstructor is returned when a registration carries no constructor.
	ErrNilConstructor = errors.New("namespace constructor must not be nil")
)
