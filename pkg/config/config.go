// Package config defines core configuration types for msgmark.
// These types are pure data structures with no dependency on the loader.
package config

// Units names accepted by the units setting.
const (
	UnitsBytes = "bytes"
	UnitsRunes = "runes"
	UnitsUTF16 = "utf16"
)

// OutputFormat specifies the output format for converted text.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatMsgpack OutputFormat = "msgpack"
)

// Flavor specifies the Markdown flavor used by the reference converter.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// DefaultExtensions lists the file extensions converted when walking
// directories.
//
//nolint:gochecknoglobals // Read-only default.
var DefaultExtensions = []string{".txt", ".md", ".msg"}

// Config is the root configuration structure for msgmark.
type Config struct {
	// Units selects how entity offsets are counted: bytes, runes or utf16.
	Units string `yaml:"units"`

	// NormalizeLanguage maps fence tags such as "ts" to canonical names.
	// Nil means unset, so a lower-precedence source can still decide.
	NormalizeLanguage *bool `yaml:"normalize_language,omitempty"`

	// InferLanguage guesses a language for untagged fences.
	InferLanguage *bool `yaml:"infer_language,omitempty"`

	// Flavor is the Markdown flavor for the compare command.
	Flavor Flavor `yaml:"flavor"`

	// Extensions lists file extensions converted when walking directories.
	Extensions []string `yaml:"extensions"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Compact disables indentation in JSON output.
	Compact bool `yaml:"-"`

	// Write stores each result next to its input file.
	Write bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Units:             UnitsBytes,
		NormalizeLanguage: Bool(false),
		InferLanguage:     Bool(false),
		Flavor:            FlavorGFM,
		Extensions:        append([]string(nil), DefaultExtensions...),
		Format:            FormatText,
		Jobs:              0, // 0 means use GOMAXPROCS
	}
}

// ShouldNormalizeLanguage reports whether fence tags are normalized.
func (c *Config) ShouldNormalizeLanguage() bool {
	return c.NormalizeLanguage != nil && *c.NormalizeLanguage
}

// ShouldInferLanguage reports whether untagged fences get a detected language.
func (c *Config) ShouldInferLanguage() bool {
	return c.InferLanguage != nil && *c.InferLanguage
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}
