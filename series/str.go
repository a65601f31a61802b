package series

import (
	"fmt"
	"strings"
)

// StringOps is the built-in "str" namespace on Series: string operations
// that return new series.
type StringOps struct {
	s *Series
}

// Str returns the built-in string namespace for the series.
func (s *Series) Str() *StringOps {
	return &StringOps{s: s}
}

func (o *StringOps) strings() ([]string, error) {
	if o.s.dtype != String {
		return nil, fmt.Errorf("%w: str namespace on %q [%s]", ErrDTypeMismatch, o.s.name, o.s.dtype)
	}

	return o.s.strs, nil
}

// Lengths returns the rune count of every value as an Int64 series.
func (o *StringOps) Lengths() (*Series, error) {
	vals, err := o.strings()
	if err != nil {
		return nil, err
	}

	out := make([]int64, len(vals))
	for i, v := range vals {
		out[i] = int64(len([]rune(v)))
	}

	return &Series{name: o.s.name, dtype: Int64, i64: out}, nil
}

// StartsWith returns a Bool series marking values with the given prefix.
func (o *StringOps) StartsWith(prefix string) (*Series, error) {
	vals, err := o.strings()
	if err != nil {
		return nil, err
	}

	out := make([]bool, len(vals))
	for i, v := range vals {
		out[i] = strings.HasPrefix(v, prefix)
	}

	return &Series{name: o.s.name, dtype: Bool, bools: out}, nil
}

// Slice returns the rune substring [offset, offset+length) of every value,
// clamped to the value's bounds.
func (o *StringOps) Slice(offset, length int) (*Series, error) {
	vals, err := o.strings()
	if err != nil {
		return nil, err
	}

	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = sliceRunes(v, offset, length)
	}

	return &Series{name: o.s.name, dtype: String, strs: out}, nil
}

// ToUppercase returns every value upper-cased.
func (o *StringOps) ToUppercase() (*Series, error) {
	vals, err := o.strings()
	if err != nil {
		return nil, err
	}

	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = strings.ToUpper(v)
	}

	return &Series{name: o.s.name, dtype: String, strs: out}, nil
}

func sliceRunes(v string, offset, length int) string {
	runes := []rune(v)
	if offset < 0 {
		offset = max(0, len(runes)+offset)
	}
	if offset >= len(runes) || length <= 0 {
		return ""
	}
	end := min(len(runes), offset+length)

	return string(runes[offset:end])
}
