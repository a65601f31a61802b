/*
Package namespace provides the registration machinery that lets third-party
code attach named bundles of behavior ("namespaces") to the library's host
types without modifying their source.

# Core Components

Registry:
  - One per host kind (frame, lazy frame, series, expression), process-wide
  - Maps an accessor name to a Definition and a Constructor
  - Replaces an existing user registration in full, warning through the
    configured logger; built-in names are frozen and can never be replaced

Constructor:
  - The single contract a user extension satisfies: build a namespace object
    from one host instance
  - Construction failures surface at first access and are never cached

Cache:
  - Instance-local slot table embedded in each host instance
  - Guarantees a namespace is constructed at most once per instance, even
    under concurrent access

Definition:
  - Registration metadata: name, optional semver version and description

# Basic Usage

Host packages own their Registry and expose it alongside an instance-level
accessor:

	var namespaces = namespace.NewRegistry[*Frame]("frame")

	func (df *Frame) Namespace(name string) (any, error) {
		return namespaces.Bind(df, &df.ns, name)
	}

User registrations normally go through the api package, which layers the
process-wide reserved-name check on top of the per-kind registries here.
*/
package namespace
