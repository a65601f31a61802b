/*
Package api registers user-defined namespaces against the library's four
host kinds: expressions, frames, lazy frames and series.

A namespace is a named bundle of behavior instantiated per host instance.
Registration happens once, at load time; afterwards every instance of the
host kind resolves the name through Namespace(), constructing the bound
object lazily on first access and caching it for the instance's lifetime.

# Registering a Namespace

A namespace type needs only a constructor taking the host instance:

	type PowersOfN struct {
		e *expr.Expr
	}

	var _ = api.RegisterExprNamespace("power")(func(e *expr.Expr) (any, error) {
		return &PowersOfN{e: e}, nil
	})

	func (p *PowersOfN) Next(n float64) *expr.Expr {
		return expr.Lit(n).Pow(p.e.Log(n).Ceil()).Cast(series.Int64)
	}

Accessing it on an instance:

	e := expr.Col("n")
	power, err := namespace.As[*PowersOfN](e.Namespace("power"))
	if err != nil {
		// handle error
	}
	out := power.Next(2)

# Reserved Names

The built-in accessor names of all four kinds ("str", "meta", ...) form a
process-wide reservation registry; registering any of them panics at load
time. Registering over a previously user-registered name succeeds, fully
replacing the earlier registration and logging a warning.

# Registration Metadata

The ...With variants attach introspectable metadata:

	api.RegisterFrameNamespaceWith("split",
		namespace.WithVersion(semver.MustParse("1.2.0")),
		namespace.WithDescription("split a frame into sub-frames"),
	)(NewSplitFrame)

	def, ok := frame.Namespaces().Describe("split")
*/
package api
