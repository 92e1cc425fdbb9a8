// Package inline implements the messaging markup dialect: a single-pass
// tokenizer with lookahead disambiguation and a stack-based parser that builds
// an mdast tree from the token stream.
package inline

import (
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/msgmark/pkg/mdast"
)

const (
	fence        = "```"
	noOccurrence = -1
)

// tokenizer scans a string left to right and emits tokens in source order.
type tokenizer struct {
	input  string
	tokens []mdast.Token
	pos    int

	// textStart is the offset of the pending text run, or -1.
	textStart int

	// open reports whether a format currently has an unmatched opener.
	open [mdast.FormatSpoiler + 1]bool

	// next caches, per format, the offset of the next marker occurrence found
	// by lookahead. noOccurrence means the rest of the input has none.
	next    [mdast.FormatSpoiler + 1]int
	scanned [mdast.FormatSpoiler + 1]bool
}

// Tokenize splits input into text runs and formatting markers.
//
// Tokenize never fails: input that contains no recognizable markup becomes a
// single text token. Markers of a kind that is left unclosed at the end of
// the input are turned back into text, so the returned stream never contains
// a dangling opener.
func Tokenize(input string) []mdast.Token {
	if input == "" {
		return nil
	}

	const initialCapacityDivisor = 8
	tok := &tokenizer{
		input:     input,
		tokens:    make([]mdast.Token, 0, len(input)/initialCapacityDivisor+1),
		textStart: -1,
	}

	tok.tokenize()

	return tok.tokens
}

// tokenize performs the main scanning loop.
func (t *tokenizer) tokenize() {
	for t.pos < len(t.input) {
		if t.tryFence() {
			continue
		}
		if t.tryInlineMarker() {
			continue
		}
		t.consumeText()
	}
	t.flushText()

	if t.anyOpen() {
		t.tokens = t.neutralizeUnclosed()
	}
}

// consumeText adds one character to the pending text run.
func (t *tokenizer) consumeText() {
	if t.textStart < 0 {
		t.textStart = t.pos
	}
	_, size := utf8.DecodeRuneInString(t.input[t.pos:])
	t.pos += size
}

// literal extends the pending text run over n bytes of marker characters.
func (t *tokenizer) literal(n int) {
	if t.textStart < 0 {
		t.textStart = t.pos
	}
	t.pos += n
}

// flushText emits the pending text run, if any.
func (t *tokenizer) flushText() {
	if t.textStart < 0 {
		return
	}
	t.tokens = append(t.tokens, mdast.Token{
		Kind:   mdast.TokText,
		Value:  t.input[t.textStart:t.pos],
		Offset: t.textStart,
	})
	t.textStart = -1
}

// emitMarker emits a marker token at the current position and advances past it.
func (t *tokenizer) emitMarker(kind mdast.TokenKind, format mdast.Format, value string) {
	t.flushText()
	t.tokens = append(t.tokens, mdast.Token{
		Kind:   kind,
		Format: format,
		Value:  value,
		Offset: t.pos,
	})
	t.pos += len(value)
}

// tryFence attempts to match a fenced code block at the current position.
//
// Two shapes are recognized, tried in order:
//
//	```lang<NL>content[<NL>]```
//	```[<NL>]content[<NL>]```
//
// where lang is [A-Za-z0-9_]+ and <NL> is a single '\n' or '\r'. Content ends
// at the first closing fence that follows.
func (t *tokenizer) tryFence() bool {
	if !strings.HasPrefix(t.input[t.pos:], fence) {
		return false
	}

	start := t.pos
	afterFence := start + len(fence)

	langEnd := afterFence
	for langEnd < len(t.input) && isWordByte(t.input[langEnd]) {
		langEnd++
	}

	if langEnd > afterFence && langEnd < len(t.input) && isNewline(t.input[langEnd]) {
		if t.emitFence(start, langEnd+1, t.input[afterFence:langEnd]) {
			return true
		}
	}

	contentStart := afterFence
	if contentStart < len(t.input) && isNewline(t.input[contentStart]) {
		contentStart++
	}

	return t.emitFence(start, contentStart, "")
}

// emitFence locates the closing fence for content beginning at contentStart
// and emits the open, content and close tokens. It reports false, emitting
// nothing, when there is no closing fence.
func (t *tokenizer) emitFence(start, contentStart int, language string) bool {
	idx := strings.Index(t.input[contentStart:], fence)
	if idx < 0 {
		return false
	}

	closeAt := contentStart + idx
	contentEnd := closeAt
	if contentEnd > contentStart && isNewline(t.input[contentEnd-1]) {
		contentEnd--
	}

	t.flushText()
	t.tokens = append(t.tokens, mdast.Token{
		Kind:     mdast.TokOpen,
		Format:   mdast.FormatPre,
		Value:    t.input[start:contentStart],
		Offset:   start,
		Language: language,
	})
	if contentEnd > contentStart {
		t.tokens = append(t.tokens, mdast.Token{
			Kind:   mdast.TokText,
			Value:  t.input[contentStart:contentEnd],
			Offset: contentStart,
		})
	}
	t.tokens = append(t.tokens, mdast.Token{
		Kind:   mdast.TokClose,
		Format: mdast.FormatPre,
		Value:  fence,
		Offset: closeAt,
	})
	t.pos = closeAt + len(fence)

	return true
}

// tryInlineMarker attempts to match one of the inline markers at the current
// position.
//
// An open kind is closed by its next marker. Otherwise a marker immediately
// followed by a second copy of itself is literal text (the pair is consumed),
// a marker with a later occurrence opens its kind, and any other marker is
// literal text.
func (t *tokenizer) tryInlineMarker() bool {
	rest := t.input[t.pos:]

	for _, format := range mdast.InlineFormats {
		marker := format.Marker()
		if !strings.HasPrefix(rest, marker) {
			continue
		}
		if format == mdast.FormatCode && strings.HasPrefix(rest, fence) {
			continue
		}

		switch {
		case t.open[format]:
			t.emitMarker(mdast.TokClose, format, marker)
			t.open[format] = false
		case strings.HasPrefix(rest[len(marker):], marker):
			t.literal(2 * len(marker))
		case t.hasLater(format, t.pos+len(marker)):
			t.emitMarker(mdast.TokOpen, format, marker)
			t.open[format] = true
		default:
			t.literal(len(marker))
		}

		return true
	}

	return false
}

// hasLater reports whether format's marker occurs at or after from.
func (t *tokenizer) hasLater(format mdast.Format, from int) bool {
	if t.scanned[format] {
		if t.next[format] == noOccurrence {
			return false
		}
		if t.next[format] >= from {
			return true
		}
	}

	t.scanned[format] = true
	idx := strings.Index(t.input[from:], format.Marker())
	if idx < 0 {
		t.next[format] = noOccurrence
		return false
	}
	t.next[format] = from + idx

	return true
}

func (t *tokenizer) anyOpen() bool {
	for _, open := range t.open {
		if open {
			return true
		}
	}
	return false
}

// neutralizeUnclosed turns every marker of a still-open kind into text and
// merges the text runs that become adjacent.
func (t *tokenizer) neutralizeUnclosed() []mdast.Token {
	out := make([]mdast.Token, 0, len(t.tokens))

	for _, tok := range t.tokens {
		if tok.IsMarker() && t.open[tok.Format] {
			tok = mdast.Token{Kind: mdast.TokText, Value: tok.Value, Offset: tok.Offset}
		}

		if tok.Kind == mdast.TokText && len(out) > 0 {
			last := &out[len(out)-1]
			if last.Kind == mdast.TokText && last.End() == tok.Offset {
				last.Value = t.input[last.Offset:tok.End()]
				continue
			}
		}

		out = append(out, tok)
	}

	return out
}

// isWordByte reports whether b may appear in a fence language tag.
func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func isNewline(b byte) bool {
	return b == '\n' || b == '\r'
}
