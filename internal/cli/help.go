package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/msgmark/internal/ui/pretty"
	"github.com/yaklabco/msgmark/pkg/entity"
	"github.com/yaklabco/msgmark/pkg/mdast"
)

// helpStyles holds the styles used by help output. They are derived from the
// output styles so help and results share one palette.
type helpStyles struct {
	command lipgloss.Style
	heading lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
	output  *pretty.Styles
}

func newHelpStyles(colorEnabled bool) helpStyles {
	styles := pretty.NewStyles(colorEnabled)
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{plain, plain, plain, plain, plain, styles}
	}
	return helpStyles{
		command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		heading: styles.Warning,
		name:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		dim:     styles.Dim,
		output:  styles,
	}
}

// HelpFormatter renders cobra help with styled headings, flags and a markup
// reference on the root command.
type HelpFormatter struct {
	styles helpStyles
	usage  *template.Template
	help   *template.Template
}

const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ command .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if not .HasParent}}

{{ heading "Markup:" }}
{{ markup }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ name (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{if or .Runnable .HasSubCommands}}{{ command .CommandPath }}{{if .Version}} {{ dim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}{{ template "usage" . }}`

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	h := &HelpFormatter{styles: newHelpStyles(pretty.IsColorEnabled(colorMode, writer))}

	funcs := template.FuncMap{
		"command":   h.styles.command.Render,
		"heading":   h.styles.heading.Render,
		"name":      h.styles.name.Render,
		"dim":       h.styles.dim.Render,
		"flags":     h.flagUsages,
		"markup":    h.markupReference,
		"join":      strings.Join,
		"rpad":      rpad,
		"trimRight": trimTrailingWhitespace,
	}

	h.usage = template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	h.help = template.Must(template.Must(h.usage.Clone()).New("help").Parse(helpTemplate))
	return h
}

// ApplyToCommand installs the styled help and usage functions on cmd. Cobra
// inherits them in subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		if err := h.usage.Execute(command.OutOrStdout(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := h.help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// markupReference lists each supported marker with a sample rendered in its
// entity style.
func (h *HelpFormatter) markupReference() string {
	formats := slices.Concat(mdast.InlineFormats[:], []mdast.Format{mdast.FormatPre})

	lines := make([]string, 0, len(formats))
	for _, format := range formats {
		entityType, _ := entity.TypeForFormat(format)
		marker := format.Marker()

		sample := marker + format.String() + marker
		if format == mdast.FormatPre {
			sample = marker + "lang\\n...\\n" + marker
		}

		lines = append(lines, fmt.Sprintf("  %s %s",
			rpad(sample, 20), h.styles.output.EntityStyle(entityType).Render(entityType.Short())))
	}
	return strings.Join(lines, "\n")
}

// flagUsages styles pflag usage output: flag names highlighted, value types
// dimmed, descriptions left as is.
func (h *HelpFormatter) flagUsages(flags any) string {
	set, ok := flags.(interface{ FlagUsages() string })
	if !ok {
		return ""
	}

	lines := strings.Split(strings.TrimSuffix(set.FlagUsages(), "\n"), "\n")
	for i, line := range lines {
		lines[i] = h.flagLine(line)
	}
	return strings.Join(lines, "\n")
}

// flagLine styles a single "  -f, --flag type   description" line. pflag
// separates the definition from the description with at least two spaces.
func (h *HelpFormatter) flagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	definition, description, found := strings.Cut(trimmed, "  ")
	if !found {
		return line
	}
	indent := line[:len(line)-len(trimmed)]

	tokens := strings.Fields(definition)
	for i, token := range tokens {
		if !strings.HasPrefix(token, "-") {
			tokens[i] = h.styles.dim.Render(token)
			continue
		}
		name, comma := strings.CutSuffix(token, ",")
		tokens[i] = h.styles.flag.Render(name)
		if comma {
			tokens[i] += ","
		}
	}

	return indent + strings.Join(tokens, " ") + "   " + strings.TrimLeft(description, " ")
}

func rpad(str string, padding int) string {
	return fmt.Sprintf("%-*s", padding, str)
}

func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
