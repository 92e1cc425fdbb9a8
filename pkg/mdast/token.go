package mdast

// TokenKind classifies a token produced by the inline tokenizer.
type TokenKind uint8

// Token kinds.
const (
	TokText  TokenKind = iota
	TokOpen            // opening marker of Token.Format
	TokClose           // closing marker of Token.Format
)

// String returns the name of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokText:
		return "Text"
	case TokOpen:
		return "Open"
	case TokClose:
		return "Close"
	default:
		return "Unknown"
	}
}

// Token is a classified span of the source string.
// Tokens are emitted in source order and never mutated after tokenization.
type Token struct {
	// Kind classifies what this token represents.
	Kind TokenKind

	// Format is the formatting kind of a marker token. FormatNone for text.
	Format Format

	// Value is the literal source text: the marker itself, or the text run.
	Value string

	// Offset is the byte index where this token begins (inclusive).
	Offset int

	// Language is the info tag of a fenced code opener, if any.
	Language string
}

// End returns the byte index just past this token.
func (t Token) End() int {
	return t.Offset + len(t.Value)
}

// IsMarker reports whether the token opens or closes a format.
func (t Token) IsMarker() bool {
	return t.Kind == TokOpen || t.Kind == TokClose
}

// ValidateTokens checks that a token slice is well formed:
//   - offsets are non-decreasing and tokens do not overlap;
//   - every token lies within [0, contentLen);
//   - marker tokens carry a format, text tokens do not.
//
// Fenced code drops the newline before its closing fence, so tokens are not
// required to be contiguous.
func ValidateTokens(tokens []Token, contentLen int) bool {
	prevEnd := 0
	for _, tok := range tokens {
		if tok.Offset < prevEnd || tok.End() > contentLen {
			return false
		}
		if tok.IsMarker() == (tok.Format == FormatNone) {
			return false
		}
		prevEnd = tok.End()
	}
	return true
}
