package frame

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/tabkit/frames/series"
)

var (
	// ErrRaggedRows is returned when JSON rows do not share one set of keys.
	ErrRaggedRows = errors.New("json rows have mismatched keys")

	// ErrMixedTypes is returned when one JSON column mixes value types.
	ErrMixedTypes = errors.New("json column has mixed value types")

	// ErrNullValue is returned for JSON null values, which have no series
	// representation.
	ErrNullValue = errors.New("json null values are not supported")
)

// ReadJSON reads a row-oriented JSON array of objects into a frame. Integral
// number columns become Int64, fractional ones Float64. JSON objects are
// unordered, so columns are laid out in sorted-name order.
func ReadJSON(r io.Reader) (*Frame, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding json rows: %w", err)
	}

	return fromRows(rows)
}

// fromRows builds a frame from decoded row maps, one column per key.
func fromRows(rows []map[string]any) (*Frame, error) {
	if len(rows) == 0 {
		return New()
	}

	names := slices.Sorted(maps.Keys(rows[0]))
	cols := make([]*series.Series, 0, len(names))
	for _, name := range names {
		col, err := readColumn(rows, name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}

	return New(cols...)
}

// WriteJSON writes the frame as a row-oriented JSON array of objects.
func (df *Frame) WriteJSON(w io.Writer) error {
	rows, err := df.toRows()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)

	return enc.Encode(rows)
}

// toRows flattens the frame into row maps for serialization.
func (df *Frame) toRows() ([]map[string]any, error) {
	rows := make([]map[string]any, df.Height())
	for i := range rows {
		row := make(map[string]any, df.Width())
		for _, col := range df.cols {
			v, err := col.Get(i)
			if err != nil {
				return nil, err
			}
			row[col.Name()] = v
		}
		rows[i] = row
	}

	return rows, nil
}

func readColumn(rows []map[string]any, name string) (*series.Series, error) {
	raw := make([]any, len(rows))
	for i, row := range rows {
		v, ok := row[name]
		if !ok {
			return nil, fmt.Errorf("%w: row %d is missing %q", ErrRaggedRows, i, name)
		}
		if v == nil {
			return nil, fmt.Errorf("%w: row %d, column %q", ErrNullValue, i, name)
		}
		raw[i] = v
	}

	switch raw[0].(type) {
	case json.Number:
		return readNumberColumn(raw, name)
	case int, int64, float64:
		return readNativeNumberColumn(raw, name)
	case string:
		vals := make([]string, len(raw))
		for i, v := range raw {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%w: column %q", ErrMixedTypes, name)
			}
			vals[i] = s
		}

		return series.NewString(name, vals), nil
	case bool:
		vals := make([]bool, len(raw))
		for i, v := range raw {
			b, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("%w: column %q", ErrMixedTypes, name)
			}
			vals[i] = b
		}

		return series.NewBool(name, vals), nil
	default:
		return nil, fmt.Errorf("%w: column %q holds %T", ErrMixedTypes, name, raw[0])
	}
}

func readNumberColumn(raw []any, name string) (*series.Series, error) {
	ints := make([]int64, len(raw))
	floats := make([]float64, len(raw))
	integral := true
	for i, v := range raw {
		num, ok := v.(json.Number)
		if !ok {
			return nil, fmt.Errorf("%w: column %q", ErrMixedTypes, name)
		}

		f, err := num.Float64()
		if err != nil {
			return nil, fmt.Errorf("parsing number in column %q: %w", name, err)
		}
		floats[i] = f

		if integral {
			n, err := num.Int64()
			if err != nil {
				integral = false

				continue
			}
			ints[i] = n
		}
	}

	if integral {
		return series.NewInt64(name, ints), nil
	}

	return series.NewFloat64(name, floats), nil
}
