// Package mdast provides the token and tree vocabulary shared by the inline
// markup tokenizer, parser and entity converter.
//
// Offsets and lengths in this package are source coordinates: byte indices
// into the original input string.
package mdast

// Format identifies a formatting kind. The set is closed; FormatNone marks
// plain text.
type Format uint8

// Formatting kinds.
const (
	FormatNone Format = iota
	FormatBold
	FormatItalic
	FormatCode
	FormatPre
	FormatStrike
	FormatSpoiler
)

// InlineFormats lists the formats delimited by a single inline marker, in the
// order the tokenizer tries them.
//
//nolint:gochecknoglobals // Read-only lookup table.
var InlineFormats = [...]Format{
	FormatBold,
	FormatItalic,
	FormatCode,
	FormatSpoiler,
	FormatStrike,
}

// String returns the lowercase name of the format.
func (f Format) String() string {
	switch f {
	case FormatNone:
		return "text"
	case FormatBold:
		return "bold"
	case FormatItalic:
		return "italic"
	case FormatCode:
		return "code"
	case FormatPre:
		return "pre"
	case FormatStrike:
		return "strike"
	case FormatSpoiler:
		return "spoiler"
	default:
		return "unknown"
	}
}

// Marker returns the delimiter for the format, or "" for FormatNone.
func (f Format) Marker() string {
	switch f {
	case FormatBold:
		return "**"
	case FormatItalic:
		return "__"
	case FormatCode:
		return "`"
	case FormatPre:
		return "```"
	case FormatStrike:
		return "~~"
	case FormatSpoiler:
		return "||"
	default:
		return ""
	}
}

// IsValid reports whether f is one of the declared formats.
func (f Format) IsValid() bool {
	return f <= FormatSpoiler
}
