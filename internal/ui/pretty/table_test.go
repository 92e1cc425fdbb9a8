package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/msgmark/internal/ui/pretty"
	"github.com/yaklabco/msgmark/pkg/entity"
)

func TestEntityRows(t *testing.T) {
	t.Parallel()

	ft := entity.FormattedText{
		Text: "Hello world\nfmt.Println()",
		Entities: []entity.Entity{
			{Type: entity.TypeBold, Offset: 6, Length: 5},
			{Type: entity.TypePre, Offset: 12, Length: 13, Language: "go"},
		},
	}

	rows := pretty.EntityRows(ft, entity.UnitBytes)

	require.Len(t, rows, 2)
	assert.Equal(t, pretty.TableRow{Type: entity.TypeBold, Offset: 6, Length: 5, Excerpt: "world"}, rows[0])
	assert.Equal(t, "go", rows[1].Language)
	assert.Equal(t, "fmt.Println()", rows[1].Excerpt)
}

func TestTableFormatter_FormatTable(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), 0)

	assert.Empty(t, formatter.FormatTable(nil))

	table := formatter.FormatTable([]pretty.TableRow{
		{Type: entity.TypeBold, Offset: 6, Length: 5, Excerpt: "world"},
		{Type: entity.TypePre, Offset: 12, Length: 9, Language: "python", Excerpt: "a\nb"},
	})

	lines := strings.Split(strings.TrimSuffix(table, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "TYPE")
	assert.Contains(t, lines[0], "OFFSET")
	assert.Contains(t, lines[0], "LANG")
	assert.Regexp(t, `^ Bold\s+6\s+5\s+world`, lines[2])
	assert.Regexp(t, `^ Pre\s+12\s+9\s+python\s+a\\nb`, lines[3])
	assert.Equal(t, strings.Repeat("=", len(lines[4])), lines[4])
}

func TestTableFormatter_TruncatesToTerminalWidth(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), 60)
	table := formatter.FormatTable([]pretty.TableRow{
		{Type: entity.TypeItalic, Offset: 0, Length: 200, Excerpt: strings.Repeat("é", 200)},
	})

	lines := strings.Split(table, "\n")
	assert.Contains(t, lines[2], "...")
	assert.NotContains(t, lines[2], strings.Repeat("é", 100))
}
