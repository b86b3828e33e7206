package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatValid(t *testing.T) {
	tests := []struct {
		format OutputFormat
		valid  bool
	}{
		{FormatYAML, true},
		{FormatJSON, true},
		{FormatTOML, true},
		{FormatTable, true},
		{OutputFormat("dir"), false},
		{OutputFormat(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.format.Valid())
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input string
		want  OutputFormat
		valid bool
	}{
		{"yaml", FormatYAML, true},
		{"YML", FormatYAML, true},
		{"json", FormatJSON, true},
		{"TOML", FormatTOML, true},
		{"table", FormatTable, true},
		{"invalid", OutputFormat("invalid"), false},
		{"", OutputFormat(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, valid := ParseOutputFormat(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.valid, valid)
		})
	}
}

func TestValidFormats(t *testing.T) {
	assert.ElementsMatch(t, []string{"yaml", "json", "toml", "table"}, ValidFormats())
	assert.NotContains(t, ValidPlanFormats(), "table")
	assert.Contains(t, ValidReportFormats(), "table")
}

type encodeSample struct {
	Release string `json:"release" yaml:"release" toml:"release"`
	Next    string `json:"next" yaml:"next" toml:"next"`
}

func TestEncode(t *testing.T) {
	v := encodeSample{Release: "1.0", Next: "1.0.1-SNAPSHOT"}

	tests := []struct {
		format OutputFormat
		want   string
	}{
		{FormatYAML, "release: \"1.0\"\nnext: 1.0.1-SNAPSHOT\n"},
		{FormatJSON, "{\n  \"release\": \"1.0\",\n  \"next\": \"1.0.1-SNAPSHOT\"\n}\n"},
		{FormatTOML, "release = '1.0'\nnext = '1.0.1-SNAPSHOT'\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, tt.format, v))
			assert.Equal(t, tt.want, buf.String())
		})
	}

	t.Run("table rejected", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, Encode(&buf, FormatTable, v))
	})
}
