package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value.
	// If false, generates a minimal commented template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate()
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	return []byte(DefaultTemplateHeader() + `

# How entity offsets and lengths are counted: bytes, runes, or utf16
units: bytes

# Map fence tags such as "ts" or "py" to canonical language names
# normalize_language: false

# Guess a language for fences without a tag
# infer_language: false

# File extensions converted when walking directories
# extensions:
#   - .txt
#   - .md
#   - .msg

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "*.draft.md"
`)
}

// generateFullTemplate writes every setting with its default value.
func generateFullTemplate() ([]byte, error) {
	cfg := NewConfig()
	cfg.Ignore = []string{".git/**"}

	body, err := cfg.ToYAML()
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString(DefaultTemplateHeader())
	sb.WriteString("\n#\n# This template includes every setting with its default value.\n")
	sb.WriteString("# Output format, jobs, and --write are command-line options.\n\n")
	sb.Write(body)

	return []byte(sb.String()), nil
}

// templateToJSON renders the default configuration as JSON.
func templateToJSON() ([]byte, error) {
	defaults := NewConfig()

	cfg := map[string]any{
		"units":              defaults.Units,
		"normalize_language": defaults.ShouldNormalizeLanguage(),
		"infer_language":     defaults.ShouldInferLanguage(),
		"flavor":             defaults.Flavor,
		"extensions":         defaults.Extensions,
		"ignore":             []string{},
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# msgmark configuration
# See: https://github.com/yaklabco/msgmark`
}
