package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/msgmark/internal/ui/pretty"
	"github.com/yaklabco/msgmark/pkg/entity"
	"github.com/yaklabco/msgmark/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "no formatting",
			stats: runner.Stats{FilesProcessed: 3},
			want:  "No formatting found (3 files converted)\n",
		},
		{
			name:  "single file",
			stats: runner.Stats{FilesProcessed: 1},
			want:  "No formatting found (1 file converted)\n",
		},
		{
			name: "breakdown in type order",
			stats: runner.Stats{
				FilesProcessed:    4,
				FilesWithEntities: 3,
				EntitiesTotal:     5,
				EntitiesByType: map[entity.Type]int{
					entity.TypeCode:   1,
					entity.TypeBold:   2,
					entity.TypeItalic: 2,
				},
			},
			want: "5 entities (2 Bold, 2 Italic, 1 Code) in 3 files\n",
		},
		{
			name: "written and failed",
			stats: runner.Stats{
				FilesProcessed:    1,
				FilesWithEntities: 1,
				FilesWritten:      1,
				FilesErrored:      2,
				EntitiesTotal:     1,
				EntitiesByType:    map[entity.Type]int{entity.TypeSpoiler: 1},
			},
			want: "1 entity (1 Spoiler) in 1 file, 1 written, 2 files failed\n",
		},
	}

	styles := pretty.NewStyles(false)
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, styles.FormatSummaryOneLine(testCase.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	result := styles.FormatSummary(runner.Stats{
		FilesProcessed:    10,
		FilesWithEntities: 3,
		FilesErrored:      1,
		EntitiesTotal:     4,
		EntitiesByType:    map[entity.Type]int{entity.TypePre: 1, entity.TypeStrike: 3},
	})

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files converted:   10")
	assert.Contains(t, result, "With formatting:   3")
	assert.Contains(t, result, "Files failed:      1")
	assert.Contains(t, result, "Total entities:    4")
	assert.Contains(t, result, "Pre:")
	assert.Contains(t, result, "Strike:")
	assert.NotContains(t, result, "Bold:")
	assert.NotContains(t, result, "Results written:")
}
