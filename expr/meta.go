package expr

import "errors"

// ErrNoOutputName is returned when an expression has neither an alias nor a
// root column to name its output after.
var ErrNoOutputName = errors.New("expression has no output name")

// MetaExpr is the built-in "meta" namespace on Expr: introspection over the
// expression tree.
type MetaExpr struct {
	e *Expr
}

// Meta returns the built-in introspection namespace for the expression.
func (e *Expr) Meta() *MetaExpr {
	return &MetaExpr{e: e}
}

// OutputName resolves the name the expression's output column will carry:
// the innermost alias if present, otherwise the leftmost root column,
// otherwise "literal" for a pure literal expression.
func (m *MetaExpr) OutputName() (string, error) {
	if name, ok := outputName(m.e.node); ok {
		return name, nil
	}

	return "", ErrNoOutputName
}

// RootNames returns the distinct column names the expression reads, in
// first-reference order.
func (m *MetaExpr) RootNames() []string {
	names := make([]string, 0, 1)
	seen := make(map[string]struct{})
	walk(m.e.node, func(n node) {
		if c, ok := n.(colNode); ok {
			if _, dup := seen[c.name]; !dup {
				seen[c.name] = struct{}{}
				names = append(names, c.name)
			}
		}
	})

	return names
}

func outputName(n node) (string, bool) {
	switch t := n.(type) {
	case aliasNode:
		return t.name, true
	case colNode:
		return t.name, true
	case litNode:
		return litName, true
	case mapNode:
		return outputName(t.inner)
	case binaryNode:
		// The leftmost operand names the output.
		return outputName(t.lhs)
	default:
		return "", false
	}
}

func walk(n node, fn func(node)) {
	fn(n)
	switch t := n.(type) {
	case aliasNode:
		walk(t.inner, fn)
	case mapNode:
		walk(t.inner, fn)
	case binaryNode:
		walk(t.lhs, fn)
		walk(t.rhs, fn)
	}
}
