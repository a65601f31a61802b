package frame

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tabkit/frames/expr"
	"github.com/tabkit/frames/namespace"
	"github.com/tabkit/frames/series"
)

var (
	// ErrMismatchedHeights is returned when columns of different lengths are
	// combined into one frame.
	ErrMismatchedHeights = errors.New("frame columns have mismatched heights")

	// ErrDuplicateColumn is returned when two columns share a name.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrEmptyColumnName is returned when a column has no name.
	ErrEmptyColumnName = errors.New("empty column name")

	// ErrNotBoolean is returned when a filter predicate does not evaluate to
	// a Bool series.
	ErrNotBoolean = errors.New("filter predicate must evaluate to bool")
)

// Frame is an eager, in-memory table: an ordered collection of equal-length
// series with unique names. Query operations return new frames; the only
// mutable state on an instance is its namespace cache.
type Frame struct {
	cols []*series.Series
	ns   namespace.Cache
}

// New creates a frame from the given columns. All columns must share one
// height and carry unique, non-empty names.
func New(cols ...*series.Series) (*Frame, error) {
	seen := make(map[string]struct{}, len(cols))
	for _, col := range cols {
		if col.Name() == "" {
			return nil, ErrEmptyColumnName
		}
		if _, dup := seen[col.Name()]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, col.Name())
		}
		seen[col.Name()] = struct{}{}

		if col.Len() != cols[0].Len() {
			return nil, fmt.Errorf("%w: %q has %d, %q has %d",
				ErrMismatchedHeights, col.Name(), col.Len(), cols[0].Name(), cols[0].Len())
		}
	}

	return &Frame{cols: cols}, nil
}

// Columns returns the column names in frame order.
func (df *Frame) Columns() []string {
	names := make([]string, len(df.cols))
	for i, col := range df.cols {
		names[i] = col.Name()
	}

	return names
}

// Width returns the number of columns.
func (df *Frame) Width() int {
	return len(df.cols)
}

// Height returns the number of rows.
func (df *Frame) Height() int {
	if len(df.cols) == 0 {
		return 0
	}

	return df.cols[0].Len()
}

// String returns the frame shape and column names.
func (df *Frame) String() string {
	return fmt.Sprintf("Frame: (%d, %d) [%s]", df.Height(), df.Width(), strings.Join(df.Columns(), ", "))
}

// Column returns the column with the given name.
func (df *Frame) Column(name string) (*series.Series, error) {
	for _, col := range df.cols {
		if col.Name() == name {
			return col, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", expr.ErrColumnNotFound, name)
}

// Select evaluates the expressions against the frame and returns a new frame
// of their outputs, named by each expression's output name.
func (df *Frame) Select(exprs ...*expr.Expr) (*Frame, error) {
	cols := df.colMap()
	out := make([]*series.Series, 0, len(exprs))
	for _, e := range exprs {
		s, err := df.evalNamed(e, cols)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return New(out...)
}

// WithColumns evaluates the expressions and returns a new frame with their
// outputs added, replacing columns of the same name in place.
func (df *Frame) WithColumns(exprs ...*expr.Expr) (*Frame, error) {
	cols := df.colMap()
	out := make([]*series.Series, len(df.cols))
	copy(out, df.cols)

	for _, e := range exprs {
		s, err := df.evalNamed(e, cols)
		if err != nil {
			return nil, err
		}

		replaced := false
		for i, col := range out {
			if col.Name() == s.Name() {
				out[i] = s
				replaced = true

				break
			}
		}
		if !replaced {
			out = append(out, s)
		}
	}

	return New(out...)
}

// Filter evaluates a Bool predicate and returns the rows where it is true.
func (df *Frame) Filter(predicate *expr.Expr) (*Frame, error) {
	mask, err := predicate.Eval(df.colMap(), df.Height())
	if err != nil {
		return nil, err
	}
	if mask.DType() != series.Bool {
		return nil, fmt.Errorf("%w: got %s", ErrNotBoolean, mask.DType())
	}

	out := make([]*series.Series, len(df.cols))
	for i, col := range df.cols {
		filtered, err := col.Filter(mask)
		if err != nil {
			return nil, err
		}
		out[i] = filtered
	}

	return New(out...)
}

func (df *Frame) colMap() map[string]*series.Series {
	cols := make(map[string]*series.Series, len(df.cols))
	for _, col := range df.cols {
		cols[col.Name()] = col
	}

	return cols
}

// evalNamed evaluates e and renames the result to its resolved output name.
func (df *Frame) evalNamed(e *expr.Expr, cols map[string]*series.Series) (*series.Series, error) {
	s, err := e.Eval(cols, df.Height())
	if err != nil {
		return nil, err
	}
	name, err := e.Meta().OutputName()
	if err != nil {
		return nil, err
	}

	return s.Rename(name), nil
}
