package lazyframe

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tabkit/frames/expr"
	"github.com/tabkit/frames/frame"
	"github.com/tabkit/frames/namespace"
)

type planKind uint8

const (
	planSelect planKind = iota
	planWithColumns
	planFilter
)

func (k planKind) String() string {
	switch k {
	case planSelect:
		return "select"
	case planWithColumns:
		return "with_columns"
	default:
		return "filter"
	}
}

type planNode struct {
	kind  planKind
	exprs []*expr.Expr
}

// LazyFrame is a deferred query over a source frame. Each operation appends
// a node to the logical plan and returns a new LazyFrame; nothing is
// evaluated until Collect. The only mutable state on an instance is its
// namespace cache.
type LazyFrame struct {
	src  *frame.Frame
	plan []planNode
	ns   namespace.Cache
}

// From wraps an eager frame in a lazy query.
func From(src *frame.Frame) *LazyFrame {
	return &LazyFrame{src: src}
}

// Select appends a projection of the given expressions to the plan.
func (lf *LazyFrame) Select(exprs ...*expr.Expr) *LazyFrame {
	return lf.append(planNode{kind: planSelect, exprs: exprs})
}

// WithColumns appends a column addition/replacement to the plan.
func (lf *LazyFrame) WithColumns(exprs ...*expr.Expr) *LazyFrame {
	return lf.append(planNode{kind: planWithColumns, exprs: exprs})
}

// Filter appends a Bool predicate to the plan.
func (lf *LazyFrame) Filter(predicate *expr.Expr) *LazyFrame {
	return lf.append(planNode{kind: planFilter, exprs: []*expr.Expr{predicate}})
}

// String describes the logical plan without executing it.
func (lf *LazyFrame) String() string {
	steps := make([]string, len(lf.plan))
	for i, n := range lf.plan {
		steps[i] = n.kind.String()
	}

	return fmt.Sprintf("LazyFrame: %s -> [%s]", lf.src, strings.Join(steps, " -> "))
}

// Collect executes the plan against the source frame.
func (lf *LazyFrame) Collect() (*frame.Frame, error) {
	df := lf.src
	for i, n := range lf.plan {
		var err error
		switch n.kind {
		case planSelect:
			df, err = df.Select(n.exprs...)
		case planWithColumns:
			df, err = df.WithColumns(n.exprs...)
		default:
			df, err = df.Filter(n.exprs[0])
		}
		if err != nil {
			return nil, fmt.Errorf("executing plan step %d (%s): %w", i, n.kind, err)
		}
	}

	return df, nil
}

func (lf *LazyFrame) append(n planNode) *LazyFrame {
	plan := slices.Clone(lf.plan)

	return &LazyFrame{src: lf.src, plan: append(plan, n)}
}
