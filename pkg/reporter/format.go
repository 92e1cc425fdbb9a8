package reporter

import (
	"fmt"
	"strings"

	"github.com/yaklabco/msgmark/pkg/config"
)

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText    = Format(config.FormatText)
	FormatJSON    = Format(config.FormatJSON)
	FormatYAML    = Format(config.FormatYAML)
	FormatMsgpack = Format(config.FormatMsgpack)
)

// ParseFormat parses a format string, returning an error for unknown formats.
// The empty string selects text.
func ParseFormat(formatStr string) (Format, error) {
	if strings.TrimSpace(formatStr) == "" {
		return FormatText, nil
	}
	format, err := config.ParseOutputFormat(formatStr)
	if err != nil {
		return "", fmt.Errorf("%w; valid formats: text, json, yaml, msgpack", err)
	}
	return Format(format), nil
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	return config.OutputFormat(f).IsValid()
}

// IsBinary reports whether the format writes non-text output.
func (f Format) IsBinary() bool {
	return f == FormatMsgpack
}
