// Package goldmark converts CommonMark through the goldmark library into the
// same text-and-entities form the messaging pipeline produces, so the two
// dialects can be compared on one input.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/msgmark/pkg/entity"
	"github.com/yaklabco/msgmark/pkg/mdast"
)

// Flavor identifies the Markdown flavor supported by the converter.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Converter maps goldmark documents onto entity.FormattedText.
// It is safe for concurrent use.
type Converter struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a converter for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "commonmark".
func New(flavor string) *Converter {
	f := flavorOrDefault(flavor)
	return &Converter{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (c *Converter) Flavor() string {
	return c.flavor
}

// Convert parses source with goldmark and flattens it with offsets in bytes.
func Convert(source string, flavor string) entity.FormattedText {
	return entity.Convert(New(flavor).tree(source), entity.UnitBytes)
}

// Convert parses source and flattens the result into text and entities
// counted in unit.
func (c *Converter) Convert(ctx context.Context, source string, unit entity.Unit) (entity.FormattedText, error) {
	nodes, err := c.Tree(ctx, source)
	if err != nil {
		return entity.FormattedText{}, err
	}
	return entity.Convert(nodes, unit), nil
}

// Tree parses source and returns the inline tree goldmark implies for it.
//
// Block structure is flattened: blocks are separated by a newline text leaf.
// Node positions in the returned tree cover content only, not delimiters.
func (c *Converter) Tree(ctx context.Context, source string) ([]*mdast.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	nodes := c.tree(source)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	return nodes, nil
}

func (c *Converter) tree(source string) []*mdast.Node {
	content := []byte(source)
	reader := text.NewReader(content)
	gmDoc := c.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	return newMapper(content).mapDocument(gmDoc)
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option

	switch flavor {
	case FlavorGFM:
		opts = append(opts,
			goldmark.WithExtensions(
				extension.GFM,
			),
		)
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(opts...)
}
