// Package markup converts messaging markup into formatted text.
//
// The pipeline runs the inline tokenizer, the inline parser and the entity
// converter in sequence. It is fail-soft: whatever goes wrong inside the
// pipeline, the caller gets the original text back without formatting.
package markup

import (
	"context"
	"fmt"

	"github.com/yaklabco/msgmark/internal/logging"
	"github.com/yaklabco/msgmark/pkg/entity"
	"github.com/yaklabco/msgmark/pkg/langdetect"
	"github.com/yaklabco/msgmark/pkg/mdast"
	"github.com/yaklabco/msgmark/pkg/parser/inline"
)

// Options configures a Parser. The zero value counts offsets in bytes and
// leaves fence languages untouched.
type Options struct {
	// Unit selects how entity offsets and lengths are counted.
	Unit entity.Unit

	// NormalizeLanguage rewrites fence language tags to canonical names.
	NormalizeLanguage bool

	// InferLanguage guesses a language for untagged fences.
	InferLanguage bool
}

// Parser converts markup text into entity.FormattedText.
// A Parser holds no mutable state and is safe for concurrent use.
type Parser struct {
	opts    Options
	convert func(nodes []*mdast.Node, unit entity.Unit) entity.FormattedText
}

// New creates a Parser with the given options.
func New(opts Options) *Parser {
	return &Parser{opts: opts, convert: entity.Convert}
}

//nolint:gochecknoglobals // Stateless default parser.
var defaultParser = New(Options{})

// ParseMarkdown converts text with the default options.
//
// Empty input yields an empty result. If any stage fails, the result is the
// input text with no entities.
func ParseMarkdown(text string) entity.FormattedText {
	return defaultParser.Parse(context.Background(), text)
}

// Parse converts text into formatted text.
//
// Parse never panics and never loses text: a fault inside the pipeline, or a
// result that fails validation, is logged at debug level through the context
// logger and the input is returned unformatted.
func (p *Parser) Parse(ctx context.Context, text string) (result entity.FormattedText) {
	if text == "" {
		return entity.FormattedText{}
	}

	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(ctx).Debug("markup pipeline panicked",
				logging.FieldPanic, fmt.Sprint(r),
				logging.FieldInputLen, len(text),
			)
			result = entity.Plain(text)
		}
	}()

	result, err := p.run(text)
	if err == nil {
		err = p.check(text, result)
	}
	if err != nil {
		logging.FromContext(ctx).Debug("markup result rejected",
			logging.FieldError, err,
			logging.FieldInputLen, len(text),
		)
		return entity.Plain(text)
	}

	return result
}

// Tree returns the inline tree for text after language processing.
// It is exposed for inspection tools; Parse is the fail-soft entry point.
func (p *Parser) Tree(text string) []*mdast.Node {
	nodes := inline.Parse(inline.Tokenize(text))
	p.processLanguages(nodes)
	return nodes
}

// run is Tree with the intermediate stages checked before conversion.
func (p *Parser) run(text string) (entity.FormattedText, error) {
	tokens := inline.Tokenize(text)
	if !mdast.ValidateTokens(tokens, len(text)) {
		return entity.FormattedText{}, errMalformedTokens
	}

	nodes := inline.Parse(tokens)
	if err := checkTree(nodes, text); err != nil {
		return entity.FormattedText{}, err
	}

	p.processLanguages(nodes)
	return p.convert(nodes, p.opts.Unit), nil
}

// processLanguages applies language normalization and inference to every
// pre node.
func (p *Parser) processLanguages(nodes []*mdast.Node) {
	if !p.opts.NormalizeLanguage && !p.opts.InferLanguage {
		return
	}

	for _, pre := range mdast.FindByFormat(nodes, mdast.FormatPre) {
		switch {
		case pre.Language != "" && p.opts.NormalizeLanguage:
			pre.Language = langdetect.Normalize(pre.Language)
		case pre.Language == "" && p.opts.InferLanguage:
			if lang, ok := langdetect.Detect(pre.PlainText()); ok {
				pre.Language = lang
			}
		}
	}
}

// check verifies the output invariants: entities fit the text, and the text
// is the input with characters removed, never added or reordered.
func (p *Parser) check(input string, result entity.FormattedText) error {
	if err := result.Validate(p.opts.Unit); err != nil {
		return err
	}
	if !isSubsequence(result.Text, input) {
		return errTextNotDerived
	}
	return nil
}
