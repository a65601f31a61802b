package expr

import (
	"math"

	"github.com/tabkit/frames/namespace"
	"github.com/tabkit/frames/series"
)

// Expr is an immutable expression over frame columns. Expressions are built
// by composition starting from Col or Lit and evaluated against a set of
// columns; every operation returns a new Expr and leaves the receiver
// untouched. The only per-instance mutable state is the namespace cache.
type Expr struct {
	node node
	ns   namespace.Cache
}

func newExpr(n node) *Expr {
	return &Expr{node: n}
}

// Col references a column by name.
func Col(name string) *Expr {
	return newExpr(colNode{name: name})
}

// Lit creates a literal expression broadcast to the evaluation height.
// Supported values: float64, int64, int, string, bool.
func Lit(value any) *Expr {
	if v, ok := value.(int); ok {
		value = int64(v)
	}

	return newExpr(litNode{value: value})
}

// Alias renames the expression output.
func (e *Expr) Alias(name string) *Expr {
	return newExpr(aliasNode{inner: e.node, name: name})
}

// Add returns e + other, elementwise.
func (e *Expr) Add(other *Expr) *Expr {
	return newExpr(binaryNode{op: opAdd, lhs: e.node, rhs: other.node})
}

// Sub returns e - other, elementwise.
func (e *Expr) Sub(other *Expr) *Expr {
	return newExpr(binaryNode{op: opSub, lhs: e.node, rhs: other.node})
}

// Mul returns e * other, elementwise.
func (e *Expr) Mul(other *Expr) *Expr {
	return newExpr(binaryNode{op: opMul, lhs: e.node, rhs: other.node})
}

// Div returns e / other, elementwise, always as Float64.
func (e *Expr) Div(other *Expr) *Expr {
	return newExpr(binaryNode{op: opDiv, lhs: e.node, rhs: other.node})
}

// Pow returns e raised to the power other, elementwise, as Float64.
func (e *Expr) Pow(other *Expr) *Expr {
	return newExpr(binaryNode{op: opPow, lhs: e.node, rhs: other.node})
}

// Gt returns a Bool expression marking where e > other.
func (e *Expr) Gt(other *Expr) *Expr {
	return newExpr(binaryNode{op: opGt, lhs: e.node, rhs: other.node})
}

// Lt returns a Bool expression marking where e < other.
func (e *Expr) Lt(other *Expr) *Expr {
	return newExpr(binaryNode{op: opLt, lhs: e.node, rhs: other.node})
}

// Eq returns a Bool expression marking where e equals other. Defined for
// numeric and string operands.
func (e *Expr) Eq(other *Expr) *Expr {
	return newExpr(binaryNode{op: opEq, lhs: e.node, rhs: other.node})
}

// Log returns the logarithm of e in the given base, as Float64.
func (e *Expr) Log(base float64) *Expr {
	return e.mapFloat(func(v float64) float64 {
		return math.Log(v) / math.Log(base)
	})
}

// Ceil rounds every value up to the nearest integer, keeping Float64.
func (e *Expr) Ceil() *Expr {
	return e.mapFloat(math.Ceil)
}

// Floor rounds every value down to the nearest integer, keeping Float64.
func (e *Expr) Floor() *Expr {
	return e.mapFloat(math.Floor)
}

// Round rounds every value half away from zero to the given number of
// decimals, keeping Float64.
func (e *Expr) Round(decimals int) *Expr {
	scale := math.Pow(10, float64(decimals))

	return e.mapFloat(func(v float64) float64 {
		return math.Round(v*scale) / scale
	})
}

// Cast converts the expression output to another dtype.
func (e *Expr) Cast(dtype series.DType) *Expr {
	return newExpr(mapNode{inner: e.node, apply: func(s *series.Series) (*series.Series, error) {
		return s.Cast(dtype)
	}})
}

// Eval evaluates the expression against the given columns. height is the
// frame height, used to broadcast literals.
func (e *Expr) Eval(cols map[string]*series.Series, height int) (*series.Series, error) {
	return e.node.eval(evalContext{cols: cols, height: height})
}

// mapFloat applies a float function elementwise, promoting Int64 input.
func (e *Expr) mapFloat(fn func(float64) float64) *Expr {
	return newExpr(mapNode{inner: e.node, apply: func(s *series.Series) (*series.Series, error) {
		f, err := s.Cast(series.Float64)
		if err != nil {
			return nil, err
		}
		vals, err := f.Float64s()
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			vals[i] = fn(v)
		}

		return series.NewFloat64(s.Name(), vals), nil
	}})
}
