package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/msgmark/pkg/entity"
	"github.com/yaklabco/msgmark/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "5 entities (2 Bold, 2 Italic, 1 Code) in 3 files, 1 written".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var msg string

	if stats.EntitiesTotal == 0 {
		msg = s.Success.Render("No formatting found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s converted)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)))
	} else {
		entityWord := plural(stats.EntitiesTotal, "entity", "entities")

		parts := []string{fmt.Sprintf("%d %s (%s) in %d %s",
			stats.EntitiesTotal, entityWord,
			strings.Join(s.typeBreakdown(stats.EntitiesByType), ", "),
			stats.FilesWithEntities, plural(stats.FilesWithEntities, wordFile, wordFiles),
		)}
		if stats.FilesWritten > 0 {
			parts = append(parts, s.Success.Render(fmt.Sprintf("%d written", stats.FilesWritten)))
		}
		msg = strings.Join(parts, ", ")
	}

	if stats.FilesErrored > 0 {
		msg += ", " + s.Error.Render(fmt.Sprintf("%d %s failed", stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles)))
	}

	return msg + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files converted:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesWithEntities > 0 {
		builder.WriteString("  With formatting:   " +
			s.SummaryValue.Render(strconv.Itoa(stats.FilesWithEntities)) + "\n")
	}

	if stats.FilesWritten > 0 {
		builder.WriteString("  Results written:   " +
			s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString("  Total entities:    " +
		s.SummaryValue.Render(strconv.Itoa(stats.EntitiesTotal)) + "\n")

	for _, entityType := range entity.AllTypes {
		count := stats.EntitiesByType[entityType]
		if count == 0 {
			continue
		}
		label := entityType.Short() + ":"
		builder.WriteString(fmt.Sprintf("    %-15s%s\n", label,
			s.EntityStyle(entityType).Render(strconv.Itoa(count))))
	}

	return builder.String()
}

// typeBreakdown renders per-type counts in entity.AllTypes order.
func (s *Styles) typeBreakdown(counts map[entity.Type]int) []string {
	var parts []string
	for _, entityType := range entity.AllTypes {
		if n := counts[entityType]; n > 0 {
			parts = append(parts, s.EntityStyle(entityType).Render(fmt.Sprintf("%d %s", n, entityType.Short())))
		}
	}
	return parts
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
