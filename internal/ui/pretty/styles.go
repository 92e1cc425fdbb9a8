// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/msgmark/pkg/entity"
)

// Color modes accepted by IsColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Status styles
	Error   lipgloss.Style
	Warning lipgloss.Style

	// File output components
	FilePath lipgloss.Style
	Text     lipgloss.Style
	Language lipgloss.Style
	Excerpt  lipgloss.Style

	// Entity type styles, keyed by type.
	Entity map[entity.Type]lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),

		FilePath: lipgloss.NewStyle().Bold(true),
		Text:     lipgloss.NewStyle().Foreground(lipgloss.Color("7")).TabWidth(lipgloss.NoTabConversion),
		Language: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Excerpt:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),

		// Each entity type renders the way a chat client would show it.
		Entity: map[entity.Type]lipgloss.Style{
			entity.TypeBold:    lipgloss.NewStyle().Bold(true),
			entity.TypeItalic:  lipgloss.NewStyle().Italic(true),
			entity.TypeCode:    lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
			entity.TypePre:     lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
			entity.TypeStrike:  lipgloss.NewStyle().Strikethrough(true),
			entity.TypeSpoiler: lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Reverse(true),
		},

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()

	entityStyles := make(map[entity.Type]lipgloss.Style, len(entity.AllTypes))
	for _, entityType := range entity.AllTypes {
		entityStyles[entityType] = plain
	}

	return &Styles{
		Error:          plain,
		Warning:        plain,
		FilePath:       plain,
		Text:           plain.TabWidth(lipgloss.NoTabConversion),
		Language:       plain,
		Excerpt:        plain,
		Entity:         entityStyles,
		SummaryTitle:   plain,
		SummaryValue:   plain,
		Success:        plain,
		Failure:        plain,
		TableHeader:    plain,
		TableSeparator: plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// EntityStyle returns the style for an entity type, or a plain style for
// unknown types.
func (s *Styles) EntityStyle(entityType entity.Type) lipgloss.Style {
	if style, ok := s.Entity[entityType]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
