package config

import (
	"fmt"
	"strings"
)

// ValidFormats returns the accepted output format names.
func ValidFormats() []OutputFormat {
	return []OutputFormat{FormatText, FormatJSON, FormatYAML, FormatMsgpack}
}

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML, FormatMsgpack:
		return true
	default:
		return false
	}
}

// ParseOutputFormat parses a case-insensitive format name.
func ParseOutputFormat(name string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(name)))
	if !format.IsValid() {
		return "", fmt.Errorf("unknown output format %q", name)
	}
	return format, nil
}

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	return f == FlavorCommonMark || f == FlavorGFM
}
