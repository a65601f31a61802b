package frame

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/tabkit/frames/series"
)

// ReadYAML reads a row-oriented YAML sequence of mappings into a frame. The
// column rules match ReadJSON: integral number columns become Int64,
// fractional ones Float64, and columns are laid out in sorted-name order.
func ReadYAML(r io.Reader) (*Frame, error) {
	dec := yaml.NewDecoder(r)

	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		if errors.Is(err, io.EOF) {
			return New()
		}

		return nil, fmt.Errorf("decoding yaml rows: %w", err)
	}

	return fromRows(rows)
}

// WriteYAML writes the frame as a row-oriented YAML sequence of mappings.
func (df *Frame) WriteYAML(w io.Writer) error {
	rows, err := df.toRows()
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	if err := enc.Encode(rows); err != nil {
		return err
	}

	return enc.Close()
}

// yamlNumber normalizes the scalar types the yaml decoder produces for
// numbers. Integers arrive as int or int64 depending on magnitude.
func yamlNumber(v any) (i int64, f float64, isInt, ok bool) {
	switch n := v.(type) {
	case int:
		return int64(n), float64(n), true, true
	case int64:
		return n, float64(n), true, true
	case float64:
		return 0, n, false, true
	default:
		return 0, 0, false, false
	}
}

// readNativeNumberColumn reads a column of native Go numeric scalars, as the
// yaml decoder produces them.
func readNativeNumberColumn(raw []any, name string) (*series.Series, error) {
	ints := make([]int64, len(raw))
	floats := make([]float64, len(raw))
	integral := true
	for i, v := range raw {
		n, f, isInt, ok := yamlNumber(v)
		if !ok {
			return nil, fmt.Errorf("%w: column %q", ErrMixedTypes, name)
		}
		floats[i] = f
		if isInt {
			ints[i] = n
		} else {
			integral = false
		}
	}

	if integral {
		return series.NewInt64(name, ints), nil
	}

	return series.NewFloat64(name, floats), nil
}
