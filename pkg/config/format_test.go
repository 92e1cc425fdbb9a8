package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/msgmark/pkg/config"
)

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    config.OutputFormat
		wantErr bool
	}{
		{"text", "text", config.FormatText, false},
		{"json", "json", config.FormatJSON, false},
		{"yaml upper case", "YAML", config.FormatYAML, false},
		{"msgpack padded", " msgpack ", config.FormatMsgpack, false},
		{"sarif is unknown", "sarif", "", true},
		{"empty", "", "", true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := config.ParseOutputFormat(testCase.input)
			if testCase.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestValidFormats(t *testing.T) {
	t.Parallel()

	for _, format := range config.ValidFormats() {
		assert.True(t, format.IsValid(), "format %q", format)
	}
	assert.False(t, config.OutputFormat("table").IsValid())
}

func TestFlavor_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, config.FlavorGFM.IsValid())
	assert.True(t, config.FlavorCommonMark.IsValid())
	assert.False(t, config.Flavor("markdown").IsValid())
}
