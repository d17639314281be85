package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRow(t *testing.T) {
	engine, err := New([]string{"{0} > {1}"}, []string{"k1", "k2"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		data    string
		want    map[string]float64
		wantErr string
	}{
		{
			name: "numbers",
			data: `{"k1": 5, "k2": 2.5}`,
			want: map[string]float64{"k1": 5, "k2": 2.5},
		},
		{
			name: "extra non numeric fields ignored",
			data: `{"k1": 5, "k2": 1, "id": "row-1", "tags": ["a"], "note": null}`,
			want: map[string]float64{"k1": 5, "k2": 1},
		},
		{
			name: "extra numeric fields kept",
			data: `{"k1": 5, "k2": 1, "k3": 9}`,
			want: map[string]float64{"k1": 5, "k2": 1, "k3": 9},
		},
		{
			name: "booleans",
			data: `{"k1": true, "k2": false}`,
			want: map[string]float64{"k1": 1, "k2": 0},
		},
		{
			name: "missing key left for Check",
			data: `{"k1": 5}`,
			want: map[string]float64{"k1": 5},
		},
		{
			name:    "null declared key",
			data:    `{"k1": null, "k2": 1}`,
			wantErr: `data key "k1" is null`,
		},
		{
			name:    "string declared key",
			data:    `{"k1": 5, "k2": "7"}`,
			wantErr: `data key "k2" is not a number: 7`,
		},
		{
			name:    "not an object",
			data:    `[1, 2]`,
			wantErr: "failed to decode row",
		},
		{
			name:    "null row",
			data:    `null`,
			wantErr: "row is not a JSON object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.DecodeRow([]byte(tt.data))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeRowThenCheck(t *testing.T) {
	engine, err := New([]string{"{0} > {1}"}, []string{"k1", "k2"})
	require.NoError(t, err)

	row, err := engine.DecodeRow([]byte(`{"k1": 5, "k2": 2, "id": "row-1"}`))
	require.NoError(t, err)

	results, err := engine.Check(row)
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, results)
}
