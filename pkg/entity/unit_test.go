package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/msgmark/pkg/entity"
)

func TestParseUnit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    entity.Unit
		wantErr bool
	}{
		{"", entity.UnitBytes, false},
		{"bytes", entity.UnitBytes, false},
		{"runes", entity.UnitRunes, false},
		{"UTF16", entity.UnitUTF16, false},
		{"utf-16", entity.UnitUTF16, false},
		{" runes ", entity.UnitRunes, false},
		{"words", entity.UnitBytes, true},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			got, err := entity.ParseUnit(testCase.input)
			if testCase.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestUnit_Len(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		bytes int
		runes int
		utf16 int
	}{
		{"", 0, 0, 0},
		{"abc", 3, 3, 3},
		{"héllo", 6, 5, 5},
		{"😀", 4, 1, 2},
		{"a😀b", 6, 3, 4},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.bytes, entity.UnitBytes.Len(testCase.input))
			assert.Equal(t, testCase.runes, entity.UnitRunes.Len(testCase.input))
			assert.Equal(t, testCase.utf16, entity.UnitUTF16.Len(testCase.input))
		})
	}
}

func TestUnit_ByteOffset(t *testing.T) {
	t.Parallel()

	const s = "a😀b"

	tests := []struct {
		name string
		unit entity.Unit
		n    int
		want int
		ok   bool
	}{
		{"bytes start", entity.UnitBytes, 0, 0, true},
		{"bytes end", entity.UnitBytes, 6, 6, true},
		{"bytes past end", entity.UnitBytes, 7, 0, false},
		{"runes after emoji", entity.UnitRunes, 2, 5, true},
		{"runes end", entity.UnitRunes, 3, 6, true},
		{"utf16 after emoji", entity.UnitUTF16, 3, 5, true},
		{"utf16 inside surrogate pair", entity.UnitUTF16, 2, 0, false},
		{"utf16 end", entity.UnitUTF16, 4, 6, true},
		{"negative", entity.UnitRunes, -1, 0, false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, ok := testCase.unit.ByteOffset(s, testCase.n)
			assert.Equal(t, testCase.ok, ok)
			if testCase.ok {
				assert.Equal(t, testCase.want, got)
			}
		})
	}
}

func TestUnit_String(t *testing.T) {
	t.Parallel()

	for _, name := range entity.ValidUnits() {
		unit, err := entity.ParseUnit(name)
		require.NoError(t, err)
		assert.Equal(t, name, unit.String())
		assert.True(t, unit.IsValid())
	}
	assert.False(t, entity.Unit(9).IsValid())
}
