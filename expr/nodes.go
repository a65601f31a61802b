package expr

import (
	"errors"
	"fmt"
	"math"

	"github.com/tabkit/frames/series"
)

// ErrColumnNotFound is returned when an expression references a column that
// the evaluated frame does not have.
var ErrColumnNotFound = errors.New("column not found")

// ErrUnsupportedLiteral is returned for a Lit value outside the supported
// set of literal types.
var ErrUnsupportedLiteral = errors.New("unsupported literal type")

// litName is the output name of a literal with no alias, after polars.
const litName = "literal"

type evalContext struct {
	cols   map[string]*series.Series
	height int
}

type node interface {
	eval(ctx evalContext) (*series.Series, error)
}

type colNode struct {
	name string
}

func (n colNode) eval(ctx evalContext) (*series.Series, error) {
	s, ok := ctx.cols[n.name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, n.name)
	}

	return s, nil
}

type litNode struct {
	value any
}

func (n litNode) eval(ctx evalContext) (*series.Series, error) {
	h := ctx.height
	switch v := n.value.(type) {
	case float64:
		vals := make([]float64, h)
		for i := range vals {
			vals[i] = v
		}

		return series.NewFloat64(litName, vals), nil
	case int64:
		vals := make([]int64, h)
		for i := range vals {
			vals[i] = v
		}

		return series.NewInt64(litName, vals), nil
	case string:
		vals := make([]string, h)
		for i := range vals {
			vals[i] = v
		}

		return series.NewString(litName, vals), nil
	case bool:
		vals := make([]bool, h)
		for i := range vals {
			vals[i] = v
		}

		return series.NewBool(litName, vals), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedLiteral, n.value)
	}
}

type aliasNode struct {
	inner node
	name  string
}

func (n aliasNode) eval(ctx evalContext) (*series.Series, error) {
	s, err := n.inner.eval(ctx)
	if err != nil {
		return nil, err
	}

	return s.Rename(n.name), nil
}

// mapNode applies a series transformation to the result of inner.
type mapNode struct {
	inner node
	apply func(s *series.Series) (*series.Series, error)
}

func (n mapNode) eval(ctx evalContext) (*series.Series, error) {
	s, err := n.inner.eval(ctx)
	if err != nil {
		return nil, err
	}

	return n.apply(s)
}

type binOp uint8

const (
	opAdd binOp = iota
	opSub
	opMul
	opDiv
	opPow
	opGt
	opLt
	opEq
)

type binaryNode struct {
	op  binOp
	lhs node
	rhs node
}

func (n binaryNode) eval(ctx evalContext) (*series.Series, error) {
	lhs, err := n.lhs.eval(ctx)
	if err != nil {
		return nil, err
	}
	rhs, err := n.rhs.eval(ctx)
	if err != nil {
		return nil, err
	}

	switch n.op {
	case opAdd:
		return lhs.Add(rhs)
	case opSub:
		return floatZip(lhs, rhs, func(a, b float64) float64 { return a - b })
	case opMul:
		return lhs.Mul(rhs)
	case opDiv:
		return floatZip(lhs, rhs, func(a, b float64) float64 { return a / b })
	case opPow:
		return floatZip(lhs, rhs, math.Pow)
	case opGt:
		return boolZip(lhs, rhs, func(a, b float64) bool { return a > b })
	case opLt:
		return boolZip(lhs, rhs, func(a, b float64) bool { return a < b })
	default:
		return evalEq(lhs, rhs)
	}
}

// floatPair casts both operands to Float64 and returns their values, length
// checked.
func floatPair(lhs, rhs *series.Series) ([]float64, []float64, error) {
	lf, err := lhs.Cast(series.Float64)
	if err != nil {
		return nil, nil, err
	}
	rf, err := rhs.Cast(series.Float64)
	if err != nil {
		return nil, nil, err
	}
	a, err := lf.Float64s()
	if err != nil {
		return nil, nil, err
	}
	b, err := rf.Float64s()
	if err != nil {
		return nil, nil, err
	}
	if len(a) != len(b) {
		return nil, nil, fmt.Errorf("%w: %d and %d", series.ErrLengthMismatch, len(a), len(b))
	}

	return a, b, nil
}

func floatZip(lhs, rhs *series.Series, fn func(a, b float64) float64) (*series.Series, error) {
	a, b, err := floatPair(lhs, rhs)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(a))
	for i := range out {
		out[i] = fn(a[i], b[i])
	}

	return series.NewFloat64(lhs.Name(), out), nil
}

func boolZip(lhs, rhs *series.Series, fn func(a, b float64) bool) (*series.Series, error) {
	a, b, err := floatPair(lhs, rhs)
	if err != nil {
		return nil, err
	}

	out := make([]bool, len(a))
	for i := range out {
		out[i] = fn(a[i], b[i])
	}

	return series.NewBool(lhs.Name(), out), nil
}

func evalEq(lhs, rhs *series.Series) (*series.Series, error) {
	if lhs.DType() == series.String && rhs.DType() == series.String {
		a, err := lhs.Strings()
		if err != nil {
			return nil, err
		}
		b, err := rhs.Strings()
		if err != nil {
			return nil, err
		}
		if len(a) != len(b) {
			return nil, fmt.Errorf("%w: %d and %d", series.ErrLengthMismatch, len(a), len(b))
		}

		out := make([]bool, len(a))
		for i := range out {
			out[i] = a[i] == b[i]
		}

		return series.NewBool(lhs.Name(), out), nil
	}

	return boolZip(lhs, rhs, func(a, b float64) bool { return a == b })
}
