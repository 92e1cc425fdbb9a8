package goldmark_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/msgmark/pkg/entity"
	"github.com/yaklabco/msgmark/pkg/markup"
	"github.com/yaklabco/msgmark/pkg/parser/goldmark"
)

func TestConverter_New(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		flavor     string
		wantFlavor string
	}{
		{"commonmark", goldmark.FlavorCommonMark, goldmark.FlavorCommonMark},
		{"gfm", goldmark.FlavorGFM, goldmark.FlavorGFM},
		{"invalid defaults to commonmark", "invalid", goldmark.FlavorCommonMark},
		{"empty defaults to commonmark", "", goldmark.FlavorCommonMark},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.wantFlavor, goldmark.New(testCase.flavor).Flavor())
		})
	}
}

func TestConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		flavor   string
		input    string
		text     string
		entities []entity.Entity
	}{
		{
			name: "empty",
		},
		{
			name:  "plain paragraph",
			input: "Hello, world!",
			text:  "Hello, world!",
		},
		{
			name:     "asterisk strong is bold",
			input:    "Hello **world**",
			text:     "Hello world",
			entities: []entity.Entity{{Type: entity.TypeBold, Offset: 6, Length: 5}},
		},
		{
			name:     "underscore strong is italic",
			input:    "__italic__",
			text:     "italic",
			entities: []entity.Entity{{Type: entity.TypeItalic, Offset: 0, Length: 6}},
		},
		{
			name:     "single asterisk is italic",
			input:    "*x*",
			text:     "x",
			entities: []entity.Entity{{Type: entity.TypeItalic, Offset: 0, Length: 1}},
		},
		{
			name:  "nested emphasis",
			input: "**bold _it_**",
			text:  "bold it",
			entities: []entity.Entity{
				{Type: entity.TypeBold, Offset: 0, Length: 7},
				{Type: entity.TypeItalic, Offset: 5, Length: 2},
			},
		},
		{
			name:  "underscore strong around code span is italic",
			input: "__`x`__",
			text:  "x",
			entities: []entity.Entity{
				{Type: entity.TypeItalic, Offset: 0, Length: 1},
				{Type: entity.TypeCode, Offset: 0, Length: 1},
			},
		},
		{
			name:  "asterisk strong around code span is bold",
			input: "**`x`**",
			text:  "x",
			entities: []entity.Entity{
				{Type: entity.TypeBold, Offset: 0, Length: 1},
				{Type: entity.TypeCode, Offset: 0, Length: 1},
			},
		},
		{
			name:     "underscore strong around link is italic",
			input:    "__[a](http://b)__",
			text:     "a",
			entities: []entity.Entity{{Type: entity.TypeItalic, Offset: 0, Length: 1}},
		},
		{
			name:     "underscore strong around image is italic",
			input:    "__![a](http://b)__",
			text:     "a",
			entities: []entity.Entity{{Type: entity.TypeItalic, Offset: 0, Length: 1}},
		},
		{
			name:   "underscore strong around strikethrough is italic",
			flavor: goldmark.FlavorGFM,
			input:  "__~~s~~__",
			text:   "s",
			entities: []entity.Entity{
				{Type: entity.TypeItalic, Offset: 0, Length: 1},
				{Type: entity.TypeStrike, Offset: 0, Length: 1},
			},
		},
		{
			name:  "bold over italic over code",
			input: "**_`c`_**",
			text:  "c",
			entities: []entity.Entity{
				{Type: entity.TypeBold, Offset: 0, Length: 1},
				{Type: entity.TypeItalic, Offset: 0, Length: 1},
				{Type: entity.TypeCode, Offset: 0, Length: 1},
			},
		},
		{
			name:     "code span",
			input:    "`code`",
			text:     "code",
			entities: []entity.Entity{{Type: entity.TypeCode, Offset: 0, Length: 4}},
		},
		{
			name:     "fenced code with language",
			input:    "```go\nfmt.Println()\n```",
			text:     "fmt.Println()",
			entities: []entity.Entity{{Type: entity.TypePre, Offset: 0, Length: 13, Language: "go"}},
		},
		{
			name:     "indented code",
			input:    "    code",
			text:     "code",
			entities: []entity.Entity{{Type: entity.TypePre, Offset: 0, Length: 4}},
		},
		{
			name:  "paragraphs joined by newline",
			input: "a\n\nb",
			text:  "a\nb",
		},
		{
			name:  "soft break",
			input: "a\nb",
			text:  "a\nb",
		},
		{
			name:  "heading and body",
			input: "# Title\n\nbody",
			text:  "Title\nbody",
		},
		{
			name:  "list items",
			input: "- a\n- b",
			text:  "a\nb",
		},
		{
			name:     "strikethrough with gfm",
			flavor:   goldmark.FlavorGFM,
			input:    "~~s~~",
			text:     "s",
			entities: []entity.Entity{{Type: entity.TypeStrike, Offset: 0, Length: 1}},
		},
		{
			name:   "strikethrough literal in commonmark",
			flavor: goldmark.FlavorCommonMark,
			input:  "~~s~~",
			text:   "~~s~~",
		},
		{
			name:  "no spoiler syntax",
			input: "||p||",
			text:  "||p||",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := goldmark.Convert(testCase.input, testCase.flavor)

			assert.Equal(t, testCase.text, got.Text)
			assert.Equal(t, testCase.entities, got.Entities)
		})
	}
}

func TestConverter_ConvertUnits(t *testing.T) {
	t.Parallel()

	got, err := goldmark.New(goldmark.FlavorCommonMark).Convert(context.Background(), "😀 **x**", entity.UnitUTF16)
	require.NoError(t, err)
	require.Len(t, got.Entities, 1)
	assert.Equal(t, 3, got.Entities[0].Offset)
	assert.Equal(t, 1, got.Entities[0].Length)
}

func TestConverter_ConvertCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := goldmark.New(goldmark.FlavorGFM).Convert(ctx, "**x**", entity.UnitBytes)
	require.ErrorIs(t, err, context.Canceled)
}

// TestConvert_AgreesWithPipeline covers the syntax both dialects share.
func TestConvert_AgreesWithPipeline(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Hello, world!",
		"Hello **world**",
		"`x` and **y**",
		"```go\nx := 1\n```",
		"**bold `code` inside**",
		"__`x`__",
		"__italic `code` inside__",
	}

	for _, input := range inputs {
		assert.Equal(t, markup.ParseMarkdown(input), goldmark.Convert(input, goldmark.FlavorGFM), "input %q", input)
	}
}

func BenchmarkConvert(b *testing.B) {
	converter := goldmark.New(goldmark.FlavorGFM)
	input := "# Title\n\nSome **bold** and _italic_ text with `code`.\n\n```go\nfunc main() {}\n```\n"
	ctx := context.Background()

	b.ReportAllocs()
	for b.Loop() {
		_, _ = converter.Convert(ctx, input, entity.UnitUTF16)
	}
}
