package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/msgmark/pkg/entity"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // TYPE, OFFSET, LENGTH, LANG, TEXT
	minTypeWidth     = 7
	minOffsetWidth   = 6
	minLengthWidth   = 6
	minLangWidth     = 4
	minExcerptWidth  = 20
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
	ellipsis         = "..."
)

// TableRow represents a single entity row.
type TableRow struct {
	Type     entity.Type
	Offset   int
	Length   int
	Language string
	Excerpt  string
}

// TableFormatter formats entities as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// EntityRows builds table rows for ft, whose offsets are counted in unit.
func EntityRows(ft entity.FormattedText, unit entity.Unit) []TableRow {
	rows := make([]TableRow, 0, len(ft.Entities))
	for _, e := range ft.Entities {
		rows = append(rows, TableRow{
			Type:     e.Type,
			Offset:   e.Offset,
			Length:   e.Length,
			Language: e.Language,
			Excerpt:  ft.Excerpt(e, unit),
		})
	}
	return rows
}

// FormatTable formats rows as a table. It returns "" for no rows.
func (t *TableFormatter) FormatTable(rows []TableRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, lightSeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	return builder.String()
}

type columnWidths struct {
	typeName int
	offset   int
	length   int
	lang     int
	excerpt  int
}

// calculateColumnWidths determines column widths based on content.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		typeName: minTypeWidth,
		offset:   minOffsetWidth,
		length:   minLengthWidth,
		lang:     minLangWidth,
		excerpt:  minExcerptWidth,
	}

	for _, row := range rows {
		widths.typeName = max(widths.typeName, len(row.Type.Short()))
		widths.offset = max(widths.offset, len(strconv.Itoa(row.Offset)))
		widths.length = max(widths.length, len(strconv.Itoa(row.Length)))
		widths.lang = max(widths.lang, len(row.Language))
		widths.excerpt = max(widths.excerpt, utf8.RuneCountInString(displayExcerpt(row.Excerpt)))
	}

	// Constrain to terminal width, shrinking the excerpt first.
	totalWidth := t.calculateTotalWidth(widths)
	if totalWidth > t.termWidth {
		excess := totalWidth - t.termWidth
		widths.excerpt = max(minExcerptWidth, widths.excerpt-excess)
	}

	return widths
}

func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.typeName + widths.offset + widths.length + widths.lang + widths.excerpt +
		tablePadding*tableColumnCount
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %*s  %*s  %-*s  %-*s ",
		widths.typeName, "TYPE",
		widths.offset, "OFFSET",
		widths.length, "LENGTH",
		widths.lang, "LANG",
		widths.excerpt, "TEXT",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.calculateTotalWidth(widths)))
}

// formatRow formats a single row, styling the type and excerpt by entity type.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	style := t.styles.EntityStyle(row.Type)

	typeName := fmt.Sprintf("%-*s", widths.typeName, truncateString(row.Type.Short(), widths.typeName))
	lang := fmt.Sprintf("%-*s", widths.lang, truncateString(row.Language, widths.lang))
	excerpt := truncateString(displayExcerpt(row.Excerpt), widths.excerpt)

	return fmt.Sprintf(" %s  %*d  %*d  %s  %s",
		style.Render(typeName),
		widths.offset, row.Offset,
		widths.length, row.Length,
		t.styles.Language.Render(lang),
		style.Render(excerpt),
	)
}

// displayExcerpt keeps an excerpt on one table line.
func displayExcerpt(s string) string {
	return strings.NewReplacer("\n", `\n`, "\t", `\t`, "\r", `\r`).Replace(s)
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	runes := []rune(str)
	if len(runes) <= maxLen {
		return str
	}
	if maxLen <= len(ellipsis) {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-len(ellipsis)]) + ellipsis
}
