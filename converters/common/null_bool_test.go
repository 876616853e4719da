package common

import (
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceToCellBoolConverter(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  null.Bool
	}{
		{"true", true, null.BoolFrom(true)},
		{"false", false, null.BoolFrom(false)},
		{"string true is null", "true", null.Bool{}},
		{"number one is null", json.Number("1"), null.Bool{}},
		{"nil is null", nil, null.Bool{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SourceToCellBoolConverter(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCellToTypeBoolConverter(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    bool
		wantErr bool
	}{
		{name: "valid null.Bool", input: null.BoolFrom(true), want: true},
		{name: "null", input: null.Bool{}, want: false},
		{name: "plain bool", input: true, want: true},
		{name: "string", input: "true", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CellToTypeBoolConverter(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
