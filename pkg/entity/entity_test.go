package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/msgmark/pkg/entity"
	"github.com/yaklabco/msgmark/pkg/mdast"
)

func TestTypeForFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format mdast.Format
		want   entity.Type
		ok     bool
	}{
		{mdast.FormatNone, "", false},
		{mdast.FormatBold, entity.TypeBold, true},
		{mdast.FormatItalic, entity.TypeItalic, true},
		{mdast.FormatCode, entity.TypeCode, true},
		{mdast.FormatPre, entity.TypePre, true},
		{mdast.FormatStrike, entity.TypeStrike, true},
		{mdast.FormatSpoiler, entity.TypeSpoiler, true},
	}

	for _, testCase := range tests {
		t.Run(testCase.format.String(), func(t *testing.T) {
			t.Parallel()

			got, ok := entity.TypeForFormat(testCase.format)
			assert.Equal(t, testCase.want, got)
			assert.Equal(t, testCase.ok, ok)
		})
	}
}

func TestType_Short(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Bold", entity.TypeBold.Short())
	assert.Equal(t, "Spoiler", entity.TypeSpoiler.Short())
	assert.Equal(t, "Custom", entity.Type("Custom").Short())
}

func TestFormattedText_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ft      entity.FormattedText
		wantErr bool
	}{
		{
			name: "no entities",
			ft:   entity.Plain("hello"),
		},
		{
			name: "entity at end",
			ft:   entity.FormattedText{Text: "hello", Entities: []entity.Entity{{Type: entity.TypeBold, Offset: 3, Length: 2}}},
		},
		{
			name:    "empty non-nil list",
			ft:      entity.FormattedText{Text: "hello", Entities: []entity.Entity{}},
			wantErr: true,
		},
		{
			name:    "past end",
			ft:      entity.FormattedText{Text: "hello", Entities: []entity.Entity{{Type: entity.TypeBold, Offset: 3, Length: 3}}},
			wantErr: true,
		},
		{
			name:    "negative offset",
			ft:      entity.FormattedText{Text: "hello", Entities: []entity.Entity{{Type: entity.TypeBold, Offset: -1, Length: 1}}},
			wantErr: true,
		},
		{
			name:    "unknown type",
			ft:      entity.FormattedText{Text: "hello", Entities: []entity.Entity{{Type: "MessageEntityUrl", Length: 1}}},
			wantErr: true,
		},
		{
			name:    "language on non-pre",
			ft:      entity.FormattedText{Text: "hello", Entities: []entity.Entity{{Type: entity.TypeCode, Length: 1, Language: "go"}}},
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := testCase.ft.Validate(entity.UnitBytes)
			if testCase.wantErr {
				require.ErrorIs(t, err, entity.ErrInvalidEntity)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestFormattedText_Excerpt(t *testing.T) {
	t.Parallel()

	ft := entity.FormattedText{Text: "Hello world"}

	assert.Equal(t, "world", ft.Excerpt(entity.Entity{Offset: 6, Length: 5}, entity.UnitBytes))
	assert.Empty(t, ft.Excerpt(entity.Entity{Offset: 6, Length: 50}, entity.UnitBytes))
}

func TestFormattedText_CountByType(t *testing.T) {
	t.Parallel()

	assert.Nil(t, entity.Plain("x").CountByType())

	ft := entity.FormattedText{Text: "abc", Entities: []entity.Entity{
		{Type: entity.TypeBold, Length: 1},
		{Type: entity.TypeBold, Offset: 1, Length: 1},
		{Type: entity.TypeCode, Offset: 2, Length: 1},
	}}
	assert.Equal(t, map[entity.Type]int{entity.TypeBold: 2, entity.TypeCode: 1}, ft.CountByType())
}

func TestFormattedText_JSONOmitsEntities(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(entity.Plain("hi"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"hi"}`, string(data))

	data, err = json.Marshal(entity.FormattedText{
		Text:     "x",
		Entities: []entity.Entity{{Type: entity.TypePre, Length: 1, Language: "go"}},
	})
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"text":"x","entities":[{"type":"MessageEntityPre","offset":0,"length":1,"language":"go"}]}`,
		string(data))
}
