package namespace

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Constructor builds a namespace object from a single host instance. It is
// the only contract a user extension must satisfy: given the host, return
// the bound namespace value or an error describing why the host's state is
// unacceptable. A failed construction is never cached; the next access on
// the same instance retries from scratch.
type Constructor[H any] func(host H) (any, error)

// Definition is the metadata attached to a namespace registration: the
// accessor name plus an optional semver version and description for
// introspection.
type Definition struct {
	Name        string          `json:"name"`
	Version     *semver.Version `json:"version,omitempty"`
	Description string          `json:"description,omitempty"`
}

// Option configures a Definition.
type Option func(*Definition)

// WithVersion attaches a semver version to the registration.
// Version can be created using semver.MustParse("1.0.0").
func WithVersion(version *semver.Version) Option {
	return func(d *Definition) {
		d.Version = version
	}
}

// WithDescription attaches a human-readable description to the registration.
func WithDescription(description string) Option {
	return func(d *Definition) {
		d.Description = description
	}
}

// NewDefinition creates a Definition for name with the provided options
// applied.
func NewDefinition(name string, opts ...Option) Definition {
	d := Definition{Name: name}
	for _, opt := range opts {
		opt(&d)
	}

	return d
}

// As converts the result of an instance namespace access to a concrete
// namespace type. It passes any access error through and fails when the
// bound value is of a different type:
//
//	power, err := namespace.As[*PowersOfN](e.Namespace("power"))
func As[NS any](v any, err error) (NS, error) {
	var zero NS
	if err != nil {
		return zero, err
	}

	ns, ok := v.(NS)
	if !ok {
		return zero, fmt.Errorf("namespace type mismatch: bound %T, want %T", v, zero)
	}

	return ns, nil
}

// validateName reports whether name is usable as an accessor: non-empty and
// a plain identifier (letter or underscore first, then letters, digits or
// underscores).
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidNamespaceName)
	}

	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return fmt.Errorf("%w: %q must not start with a digit", ErrInvalidNamespaceName, name)
			}
		default:
			return fmt.Errorf("%w: %q contains %q", ErrInvalidNamespaceName, name, r)
		}
	}

	return nil
}
