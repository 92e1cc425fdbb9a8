package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/msgmark/internal/logging"
	"github.com/yaklabco/msgmark/internal/ui/pretty"
	"github.com/yaklabco/msgmark/pkg/config"
	"github.com/yaklabco/msgmark/pkg/entity"
	goldmarkparser "github.com/yaklabco/msgmark/pkg/parser/goldmark"
)

type compareFlags struct {
	format string
	flavor string
	units  string
	check  bool
}

// Comparison is the outcome of running both converters on one input.
type Comparison struct {
	Input     string               `json:"input"     yaml:"input"`
	Units     string               `json:"units"     yaml:"units"`
	Flavor    string               `json:"flavor"    yaml:"flavor"`
	Pipeline  entity.FormattedText `json:"pipeline"  yaml:"pipeline"`
	Reference entity.FormattedText `json:"reference" yaml:"reference"`
	Agree     bool                 `json:"agree"     yaml:"agree"`
}

func newCompareCommand() *cobra.Command {
	flags := &compareFlags{}

	cmd := &cobra.Command{
		Use:   "compare [text...]",
		Short: "Compare the markup pipeline with a CommonMark reference",
		Long: `Convert the same input with msgmark's pipeline and with a CommonMark
converter (goldmark), print both results, and report whether they agree.

The two dialects differ on purpose: a single * is literal here but
emphasis in CommonMark, and spoilers exist only here. Both sides treat
__x__ as italic.
Arguments are joined with spaces; with no arguments stdin is read.

Examples:
  msgmark compare 'Hello **world**'
  msgmark compare --flavor commonmark '~~gone~~'
  msgmark compare --check --format json < message.txt`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatText), "output format: text, json, yaml")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "reference flavor: commonmark, gfm (default gfm)")
	cmd.Flags().StringVar(&flags.units, "units", "", "offset units: bytes, runes, utf16 (default bytes)")
	cmd.Flags().BoolVar(&flags.check, "check", false, "exit non-zero when the results differ")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string, flags *compareFlags) error {
	ctx := commandContext(cmd)

	loaded, err := loadConfig(cmd, &config.Config{
		Units:  flags.units,
		Flavor: config.Flavor(flags.flavor),
	})
	if err != nil {
		return err
	}

	input, err := compareInput(cmd, args)
	if err != nil {
		return err
	}

	reference, err := goldmarkparser.New(string(loaded.cfg.Flavor)).Convert(ctx, input, loaded.unit)
	if err != nil {
		return fmt.Errorf("reference conversion: %w", err)
	}

	pipeline := loaded.newParser().Parse(ctx, input)

	cmp := Comparison{
		Input:     input,
		Units:     loaded.unit.String(),
		Flavor:    string(loaded.cfg.Flavor),
		Pipeline:  pipeline,
		Reference: reference,
		Agree:     sameFormattedText(pipeline, reference),
	}

	logging.FromContext(ctx).Debug("compared conversions",
		logging.FieldInputLen, len(input),
		logging.FieldFlavor, cmp.Flavor,
		logging.FieldAgree, cmp.Agree,
	)

	if err := writeComparison(cmd, flags.format, loaded.unit, &cmp); err != nil {
		return err
	}

	if flags.check && !cmp.Agree {
		return ErrResultsDiffer
	}
	return nil
}

// compareInput joins args, or reads stdin when there are none.
func compareInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	stdin := cmd.InOrStdin()
	if isTerminal(stdin) {
		return "", ErrNoInput
	}

	content, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	// A trailing newline from echo or an editor is not part of the message.
	return strings.TrimSuffix(string(content), "\n"), nil
}

// sameFormattedText reports whether two results have the same text and the
// same entities, ignoring entity order.
func sameFormattedText(a, b entity.FormattedText) bool {
	if a.Text != b.Text || len(a.Entities) != len(b.Entities) {
		return false
	}
	return slices.Equal(sortedEntities(a.Entities), sortedEntities(b.Entities))
}

func sortedEntities(entities []entity.Entity) []entity.Entity {
	sorted := slices.Clone(entities)
	slices.SortFunc(sorted, func(x, y entity.Entity) int {
		if x.Offset != y.Offset {
			return x.Offset - y.Offset
		}
		if x.Length != y.Length {
			return y.Length - x.Length
		}
		return strings.Compare(string(x.Type), string(y.Type))
	})
	return sorted
}

func writeComparison(cmd *cobra.Command, format string, unit entity.Unit, cmp *Comparison) error {
	out := cmd.OutOrStdout()

	switch config.OutputFormat(strings.ToLower(format)) {
	case config.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetEscapeHTML(false)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(cmp); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
	case config.FormatYAML:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(config.YAMLIndent())
		if err := encoder.Encode(cmp); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("close YAML encoder: %w", err)
		}
	case config.FormatText:
		writeComparisonText(out, pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out)), unit, cmp)
	default:
		return fmt.Errorf("invalid format %q: compare supports text, json, yaml", format)
	}

	return nil
}

func writeComparisonText(out io.Writer, styles *pretty.Styles, unit entity.Unit, cmp *Comparison) {
	formatter := pretty.NewTableFormatter(styles, 0)

	sections := []struct {
		title  string
		result entity.FormattedText
	}{
		{"msgmark", cmp.Pipeline},
		{"goldmark (" + cmp.Flavor + ")", cmp.Reference},
	}

	for _, section := range sections {
		fmt.Fprintln(out, styles.FilePath.Render(section.title))
		fmt.Fprintf(out, "  %s\n", styles.Text.Render(fmt.Sprintf("%q", section.result.Text)))
		fmt.Fprint(out, formatter.FormatTable(pretty.EntityRows(section.result, unit)))
		fmt.Fprintln(out)
	}

	if cmp.Agree {
		fmt.Fprintln(out, styles.Success.Render("Results agree"))
	} else {
		fmt.Fprintln(out, styles.Warning.Render("Results differ"))
	}
}
