package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/yaklabco/msgmark/internal/ui/pretty"
	"github.com/yaklabco/msgmark/pkg/runner"
)

// TextReporter formats results as styled terminal output: each input's plain
// text followed by a table of its entities.
type TextReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	termWidth := opts.TermWidth
	if termWidth <= 0 {
		termWidth = getTerminalWidth(opts.Writer)
	}

	return &TextReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, termWidth),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No inputs to convert."))
		}
		return 0, nil
	}

	var total int
	for i, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("report cancelled: %w", err)
		}
		if i > 0 {
			fmt.Fprintln(r.bw)
		}
		total += r.reportFile(file, len(result.Files) > 1)
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportFile writes one outcome and returns its entity count. The header is
// skipped for a lone in-memory input, where it adds nothing.
func (r *TextReporter) reportFile(file runner.FileOutcome, many bool) int {
	path := relPath(r.opts.WorkingDir, file.Path)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}

	count := len(file.Result.Entities)

	if many || file.Written != "" {
		header := r.styles.FilePath.Render(path) +
			r.styles.Dim.Render(fmt.Sprintf(" (%d %s)", count, entityWord(count)))
		if file.Written != "" {
			header += r.styles.Success.Render(" -> " + relPath(r.opts.WorkingDir, file.Written))
		}
		fmt.Fprintln(r.bw, header)
	}

	if r.opts.ShowText {
		fmt.Fprintln(r.bw, indentLines(r.styles.Text, file.Result.Text))
	}

	if !r.opts.Compact && count > 0 {
		fmt.Fprint(r.bw, r.formatter.FormatTable(pretty.EntityRows(file.Result, r.opts.Unit)))
	}

	return count
}

func entityWord(n int) string {
	if n == 1 {
		return "entity"
	}
	return "entities"
}

// indentLines styles each line of s separately and indents it by two
// spaces. Styling line by line keeps lipgloss from padding short lines.
func indentLines(style lipgloss.Style, s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "  " + style.Render(line)
	}
	return strings.Join(lines, "\n")
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return 0
}
