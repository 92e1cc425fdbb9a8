// Package entity defines the flat formatted-text representation produced by
// the markup pipeline: the stripped text plus formatting spans over it.
package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/msgmark/pkg/mdast"
)

// Type identifies the formatting applied by an entity.
type Type string

// Entity types.
const (
	TypeBold    Type = "MessageEntityBold"
	TypeItalic  Type = "MessageEntityItalic"
	TypeCode    Type = "MessageEntityCode"
	TypePre     Type = "MessageEntityPre"
	TypeStrike  Type = "MessageEntityStrike"
	TypeSpoiler Type = "MessageEntitySpoiler"
)

// AllTypes lists every entity type in a stable order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var AllTypes = []Type{TypeBold, TypeItalic, TypeCode, TypePre, TypeStrike, TypeSpoiler}

// TypeForFormat returns the entity type for a formatting kind.
// The second result is false for FormatNone and unknown formats.
func TypeForFormat(format mdast.Format) (Type, bool) {
	switch format {
	case mdast.FormatBold:
		return TypeBold, true
	case mdast.FormatItalic:
		return TypeItalic, true
	case mdast.FormatCode:
		return TypeCode, true
	case mdast.FormatPre:
		return TypePre, true
	case mdast.FormatStrike:
		return TypeStrike, true
	case mdast.FormatSpoiler:
		return TypeSpoiler, true
	default:
		return "", false
	}
}

// IsValid reports whether t is a known entity type.
func (t Type) IsValid() bool {
	for _, known := range AllTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Short returns the type name without the MessageEntity prefix.
func (t Type) Short() string {
	return strings.TrimPrefix(string(t), "MessageEntity")
}

// Entity is a formatting span over the output text.
// Offset and Length are measured in the Unit the text was converted with.
type Entity struct {
	Type     Type   `json:"type"               msgpack:"type"               yaml:"type"`
	Offset   int    `json:"offset"             msgpack:"offset"             yaml:"offset"`
	Length   int    `json:"length"             msgpack:"length"             yaml:"length"`
	Language string `json:"language,omitempty" msgpack:"language,omitempty" yaml:"language,omitempty"`
}

// End returns the offset just past the entity.
func (e Entity) End() int {
	return e.Offset + e.Length
}

// FormattedText is plain text with its formatting entities.
//
// Entities is nil when the text carries no formatting; it is never an empty
// non-nil slice.
type FormattedText struct {
	Text     string   `json:"text"               msgpack:"text"               yaml:"text"`
	Entities []Entity `json:"entities,omitempty" msgpack:"entities,omitempty" yaml:"entities,omitempty"`
}

// Plain returns text without formatting.
func Plain(text string) FormattedText {
	return FormattedText{Text: text}
}

// HasEntities reports whether any formatting was found.
func (ft FormattedText) HasEntities() bool {
	return len(ft.Entities) > 0
}

// Excerpt returns the part of the text covered by e, where e's coordinates
// are in unit. It returns "" if e does not fit the text.
func (ft FormattedText) Excerpt(e Entity, unit Unit) string {
	start, ok := unit.ByteOffset(ft.Text, e.Offset)
	if !ok {
		return ""
	}
	end, ok := unit.ByteOffset(ft.Text, e.End())
	if !ok || end < start {
		return ""
	}
	return ft.Text[start:end]
}

// ErrInvalidEntity is returned by Validate for a malformed entity.
var ErrInvalidEntity = errors.New("invalid entity")

// Validate checks that every entity has a known type and lies within the
// text, measured in unit, and that Entities is nil rather than empty.
func (ft FormattedText) Validate(unit Unit) error {
	if ft.Entities != nil && len(ft.Entities) == 0 {
		return fmt.Errorf("%w: empty entity list must be nil", ErrInvalidEntity)
	}

	textLen := unit.Len(ft.Text)
	for i, e := range ft.Entities {
		if !e.Type.IsValid() {
			return fmt.Errorf("%w: entity %d has unknown type %q", ErrInvalidEntity, i, e.Type)
		}
		if e.Offset < 0 || e.Length < 0 || e.End() > textLen {
			return fmt.Errorf("%w: entity %d (%s) at %d+%d exceeds text length %d",
				ErrInvalidEntity, i, e.Type.Short(), e.Offset, e.Length, textLen)
		}
		if e.Language != "" && e.Type != TypePre {
			return fmt.Errorf("%w: entity %d (%s) carries a language", ErrInvalidEntity, i, e.Type.Short())
		}
	}

	return nil
}

// CountByType returns the number of entities of each type.
func (ft FormattedText) CountByType() map[Type]int {
	if len(ft.Entities) == 0 {
		return nil
	}
	counts := make(map[Type]int, len(AllTypes))
	for _, e := range ft.Entities {
		counts[e.Type]++
	}
	return counts
}
