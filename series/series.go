package series

import (
	"errors"
	"fmt"
	"slices"

	"github.com/tabkit/frames/namespace"
)

var (
	// ErrDTypeMismatch is returned when an operation is applied to a series
	// of an incompatible dtype.
	ErrDTypeMismatch = errors.New("series dtype mismatch")

	// ErrLengthMismatch is returned when an elementwise operation receives
	// series of different lengths that cannot be broadcast.
	ErrLengthMismatch = errors.New("series length mismatch")

	// ErrUnsupportedCast is returned when a cast between two dtypes is not
	// defined.
	ErrUnsupportedCast = errors.New("unsupported series cast")

	// ErrOutOfBounds is returned for an index outside the series.
	ErrOutOfBounds = errors.New("series index out of bounds")
)

// DType identifies the storage type of a Series.
type DType uint8

const (
	Float64 DType = iota
	Int64
	String
	Bool
)

// String returns the short dtype label, e.g. "f64".
func (d DType) String() string {
	switch d {
	case Float64:
		return "f64"
	case Int64:
		return "i64"
	case String:
		return "str"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("dtype(%d)", uint8(d))
	}
}

// Series is a named, typed column of values. Ordinary operations return new
// Series values and never mutate the receiver; the only mutable state on an
// instance is its namespace cache, which is owned exclusively by that
// instance.
type Series struct {
	name  string
	dtype DType

	f64   []float64
	i64   []int64
	strs  []string
	bools []bool

	ns namespace.Cache
}

// NewFloat64 creates a Float64 series. The input slice is copied.
func NewFloat64(name string, values []float64) *Series {
	return &Series{name: name, dtype: Float64, f64: slices.Clone(values)}
}

// NewInt64 creates an Int64 series. The input slice is copied.
func NewInt64(name string, values []int64) *Series {
	return &Series{name: name, dtype: Int64, i64: slices.Clone(values)}
}

// NewString creates a String series. The input slice is copied.
func NewString(name string, values []string) *Series {
	return &Series{name: name, dtype: String, strs: slices.Clone(values)}
}

// NewBool creates a Bool series. The input slice is copied.
func NewBool(name string, values []bool) *Series {
	return &Series{name: name, dtype: Bool, bools: slices.Clone(values)}
}

// Name returns the series name.
func (s *Series) Name() string {
	return s.name
}

// DType returns the series dtype.
func (s *Series) DType() DType {
	return s.dtype
}

// Len returns the number of values in the series.
func (s *Series) Len() int {
	switch s.dtype {
	case Float64:
		return len(s.f64)
	case Int64:
		return len(s.i64)
	case String:
		return len(s.strs)
	case Bool:
		return len(s.bools)
	default:
		return 0
	}
}

// String returns series name, dtype and length: "Series: 'n' [f64] (4)".
func (s *Series) String() string {
	return fmt.Sprintf("Series: %q [%s] (%d)", s.name, s.dtype, s.Len())
}

// Rename returns a copy of the series under a new name.
func (s *Series) Rename(name string) *Series {
	out := s.clone()
	out.name = name

	return out
}

// Get returns the value at index i.
func (s *Series) Get(i int) (any, error) {
	if i < 0 || i >= s.Len() {
		return nil, fmt.Errorf("%w: %d of %d", ErrOutOfBounds, i, s.Len())
	}

	switch s.dtype {
	case Float64:
		return s.f64[i], nil
	case Int64:
		return s.i64[i], nil
	case String:
		return s.strs[i], nil
	default:
		return s.bools[i], nil
	}
}

// Float64s returns a copy of the underlying values of a Float64 series.
func (s *Series) Float64s() ([]float64, error) {
	if s.dtype != Float64 {
		return nil, fmt.Errorf("%w: %q is %s, want f64", ErrDTypeMismatch, s.name, s.dtype)
	}

	return slices.Clone(s.f64), nil
}

// Int64s returns a copy of the underlying values of an Int64 series.
func (s *Series) Int64s() ([]int64, error) {
	if s.dtype != Int64 {
		return nil, fmt.Errorf("%w: %q is %s, want i64", ErrDTypeMismatch, s.name, s.dtype)
	}

	return slices.Clone(s.i64), nil
}

// Strings returns a copy of the underlying values of a String series.
func (s *Series) Strings() ([]string, error) {
	if s.dtype != String {
		return nil, fmt.Errorf("%w: %q is %s, want str", ErrDTypeMismatch, s.name, s.dtype)
	}

	return slices.Clone(s.strs), nil
}

// Bools returns a copy of the underlying values of a Bool series.
func (s *Series) Bools() ([]bool, error) {
	if s.dtype != Bool {
		return nil, fmt.Errorf("%w: %q is %s, want bool", ErrDTypeMismatch, s.name, s.dtype)
	}

	return slices.Clone(s.bools), nil
}

// Equal reports whether two series have the same name, dtype and values.
func (s *Series) Equal(other *Series) bool {
	if other == nil || s.name != other.name || s.dtype != other.dtype {
		return false
	}

	switch s.dtype {
	case Float64:
		return slices.Equal(s.f64, other.f64)
	case Int64:
		return slices.Equal(s.i64, other.i64)
	case String:
		return slices.Equal(s.strs, other.strs)
	default:
		return slices.Equal(s.bools, other.bools)
	}
}

// Cast converts the series to another dtype. Float64 to Int64 truncates.
// Casting a series to its own dtype returns a copy.
func (s *Series) Cast(dtype DType) (*Series, error) {
	if dtype == s.dtype {
		return s.clone(), nil
	}

	switch {
	case s.dtype == Float64 && dtype == Int64:
		out := make([]int64, len(s.f64))
		for i, v := range s.f64 {
			out[i] = int64(v)
		}

		return &Series{name: s.name, dtype: Int64, i64: out}, nil
	case s.dtype == Int64 && dtype == Float64:
		out := make([]float64, len(s.i64))
		for i, v := range s.i64 {
			out[i] = float64(v)
		}

		return &Series{name: s.name, dtype: Float64, f64: out}, nil
	default:
		return nil, fmt.Errorf("%w: %s to %s", ErrUnsupportedCast, s.dtype, dtype)
	}
}

// Mul multiplies two numeric series elementwise. A length-one series is
// broadcast against the other operand. Two Int64 series produce Int64;
// any Float64 operand promotes the result to Float64.
func (s *Series) Mul(other *Series) (*Series, error) {
	return s.arith(other, "*",
		func(a, b float64) float64 { return a * b },
		func(a, b int64) int64 { return a * b },
	)
}

// Add sums two numeric series elementwise with the same promotion and
// broadcast rules as Mul.
func (s *Series) Add(other *Series) (*Series, error) {
	return s.arith(other, "+",
		func(a, b float64) float64 { return a + b },
		func(a, b int64) int64 { return a + b },
	)
}

// Filter returns the values of s where mask is true. The mask must be a
// Bool series of the same length.
func (s *Series) Filter(mask *Series) (*Series, error) {
	if mask.dtype != Bool {
		return nil, fmt.Errorf("%w: filter mask %q is %s, want bool", ErrDTypeMismatch, mask.name, mask.dtype)
	}
	if mask.Len() != s.Len() {
		return nil, fmt.Errorf("%w: mask %d, series %d", ErrLengthMismatch, mask.Len(), s.Len())
	}

	out := &Series{name: s.name, dtype: s.dtype}
	for i, keep := range mask.bools {
		if !keep {
			continue
		}
		switch s.dtype {
		case Float64:
			out.f64 = append(out.f64, s.f64[i])
		case Int64:
			out.i64 = append(out.i64, s.i64[i])
		case String:
			out.strs = append(out.strs, s.strs[i])
		default:
			out.bools = append(out.bools, s.bools[i])
		}
	}

	return out, nil
}

func (s *Series) clone() *Series {
	return &Series{
		name:  s.name,
		dtype: s.dtype,
		f64:   slices.Clone(s.f64),
		i64:   slices.Clone(s.i64),
		strs:  slices.Clone(s.strs),
		bools: slices.Clone(s.bools),
	}
}

func (s *Series) isNumeric() bool {
	return s.dtype == Float64 || s.dtype == Int64
}

// asFloat64 reads index i of a numeric series as float64.
func (s *Series) asFloat64(i int) float64 {
	if s.dtype == Int64 {
		return float64(s.i64[i])
	}

	return s.f64[i]
}

// arith applies an elementwise binary operation over two numeric series,
// broadcasting a length-one operand.
func (s *Series) arith(other *Series, op string, ff func(a, b float64) float64, fi func(a, b int64) int64) (*Series, error) {
	if !s.isNumeric() || !other.isNumeric() {
		return nil, fmt.Errorf("%w: %q %s %q requires numeric operands", ErrDTypeMismatch, s.name, op, other.name)
	}

	n := s.Len()
	if other.Len() != n {
		switch {
		case other.Len() == 1:
		case n == 1:
			n = other.Len()
		default:
			return nil, fmt.Errorf("%w: %d %s %d", ErrLengthMismatch, s.Len(), op, other.Len())
		}
	}

	idx := func(ln, i int) int {
		if ln == 1 {
			return 0
		}

		return i
	}

	if s.dtype == Int64 && other.dtype == Int64 {
		out := make([]int64, n)
		for i := range out {
			out[i] = fi(s.i64[idx(s.Len(), i)], other.i64[idx(other.Len(), i)])
		}

		return &Series{name: s.name, dtype: Int64, i64: out}, nil
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = ff(s.asFloat64(idx(s.Len(), i)), other.asFloat64(idx(other.Len(), i)))
	}

	return &Series{name: s.name, dtype: Float64, f64: out}, nil
}
