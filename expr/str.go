package expr

import "github.com/tabkit/frames/series"

// StringExpr is the built-in "str" namespace on Expr: string operations
// lifted to expression nodes.
type StringExpr struct {
	e *Expr
}

// Str returns the built-in string namespace for the expression.
func (e *Expr) Str() *StringExpr {
	return &StringExpr{e: e}
}

// Lengths returns an Int64 expression of rune counts.
func (s *StringExpr) Lengths() *Expr {
	return s.mapStr(func(ops *series.StringOps) (*series.Series, error) {
		return ops.Lengths()
	})
}

// StartsWith returns a Bool expression marking values with the prefix.
func (s *StringExpr) StartsWith(prefix string) *Expr {
	return s.mapStr(func(ops *series.StringOps) (*series.Series, error) {
		return ops.StartsWith(prefix)
	})
}

// Slice returns the rune substring [offset, offset+length) of every value.
func (s *StringExpr) Slice(offset, length int) *Expr {
	return s.mapStr(func(ops *series.StringOps) (*series.Series, error) {
		return ops.Slice(offset, length)
	})
}

// ToUppercase upper-cases every value.
func (s *StringExpr) ToUppercase() *Expr {
	return s.mapStr(func(ops *series.StringOps) (*series.Series, error) {
		return ops.ToUppercase()
	})
}

func (s *StringExpr) mapStr(fn func(ops *series.StringOps) (*series.Series, error)) *Expr {
	return newExpr(mapNode{inner: s.e.node, apply: func(in *series.Series) (*series.Series, error) {
		return fn(in.Str())
	}})
}
