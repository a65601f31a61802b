package frame

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabkit/frames/series"
)

func TestReadJSON(t *testing.T) {
	t.Parallel()

	df, err := ReadJSON(strings.NewReader(`[
		{"name": "ada", "age": 36, "score": 9.5, "active": true},
		{"name": "grace", "age": 85, "score": 9.9, "active": false}
	]`))
	require.NoError(t, err)

	// Object keys are unordered, so columns come out sorted.
	assert.Equal(t, []string{"active", "age", "name", "score"}, df.Columns())
	assert.Equal(t, 2, df.Height())

	age, err := df.Column("age")
	require.NoError(t, err)
	assert.Equal(t, series.Int64, age.DType())

	score, err := df.Column("score")
	require.NoError(t, err)
	assert.Equal(t, series.Float64, score.DType())

	active, err := df.Column("active")
	require.NoError(t, err)
	assert.Equal(t, series.Bool, active.DType())
}

func TestReadJSON_MixedIntFloatPromotes(t *testing.T) {
	t.Parallel()

	df, err := ReadJSON(strings.NewReader(`[{"x": 1}, {"x": 2.5}]`))
	require.NoError(t, err)

	x, err := df.Column("x")
	require.NoError(t, err)
	assert.Equal(t, series.Float64, x.DType())

	vals, err := x.Float64s()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5}, vals)
}

func TestReadJSON_Empty(t *testing.T) {
	t.Parallel()

	df, err := ReadJSON(strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.Equal(t, 0, df.Width())
	assert.Equal(t, 0, df.Height())
}

func TestReadJSON_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "ragged rows",
			input:   `[{"a": 1, "b": 2}, {"a": 3}]`,
			wantErr: ErrRaggedRows,
		},
		{
			name:    "null value",
			input:   `[{"a": null}]`,
			wantErr: ErrNullValue,
		},
		{
			name:    "mixed types",
			input:   `[{"a": 1}, {"a": "one"}]`,
			wantErr: ErrMixedTypes,
		},
		{
			name:    "nested value",
			input:   `[{"a": {"b": 1}}]`,
			wantErr: ErrMixedTypes,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ReadJSON(strings.NewReader(tt.input))
			require.Error(t, err)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()

		_, err := ReadJSON(strings.NewReader(`{"not": "an array"}`))
		require.Error(t, err)
	})
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	t.Parallel()

	df := testFrame(t)

	var buf bytes.Buffer
	require.NoError(t, df.WriteJSON(&buf))

	back, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "name", "score"}, back.Columns())
	assert.Equal(t, df.Height(), back.Height())

	for _, name := range df.Columns() {
		want, err := df.Column(name)
		require.NoError(t, err)
		got, err := back.Column(name)
		require.NoError(t, err)
		assert.True(t, want.Equal(got), "column %q changed in round trip", name)
	}
}

func TestWriteJSON_Rows(t *testing.T) {
	t.Parallel()

	df, err := New(series.NewInt64("n", []int64{1, 2}))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, df.WriteJSON(&buf))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	assert.Equal(t, []map[string]any{{"n": float64(1)}, {"n": float64(2)}}, rows)
}
