package inline

import (
	"github.com/yaklabco/msgmark/pkg/mdast"
)

// frame is an open formatting context. Each frame owns its children slice
// until the frame is closed, when the slice moves into the finished node or
// into the parent's list.
type frame struct {
	start    mdast.Token
	children []*mdast.Node
}

// parser builds a tree from a token stream using an explicit stack of frames.
type parser struct {
	top   []*mdast.Node
	stack []frame
}

// Parse builds the inline tree for a token stream.
//
// Parse never fails. A closing marker that does not match the innermost open
// context, and any context still open at the end of the stream, degrade to
// their literal marker text; the content collected inside them is kept as
// plain nodes.
func Parse(tokens []mdast.Token) []*mdast.Node {
	if len(tokens) == 0 {
		return nil
	}

	p := &parser{
		top: make([]*mdast.Node, 0, len(tokens)),
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case mdast.TokOpen:
			p.stack = append(p.stack, frame{start: tok})
		case mdast.TokClose:
			p.close(tok)
		default:
			p.appendNode(mdast.NewText(tok.Value, tok.Offset))
		}
	}

	p.unwind()

	return p.top
}

// appendNode appends n to the innermost open frame, or to the top level.
func (p *parser) appendNode(nodes ...*mdast.Node) {
	if len(p.stack) == 0 {
		p.top = append(p.top, nodes...)
		return
	}
	inner := &p.stack[len(p.stack)-1]
	inner.children = append(inner.children, nodes...)
}

// pop removes and returns the innermost frame.
func (p *parser) pop() frame {
	last := len(p.stack) - 1
	f := p.stack[last]
	p.stack[last] = frame{}
	p.stack = p.stack[:last]
	return f
}

// close handles a closing marker.
func (p *parser) close(tok mdast.Token) {
	if len(p.stack) == 0 {
		p.appendNode(mdast.NewText(tok.Value, tok.Offset))
		return
	}

	f := p.pop()

	if f.start.Format != tok.Format {
		p.appendNode(mdast.NewText(f.start.Value, f.start.Offset))
		p.appendNode(f.children...)
		p.appendNode(mdast.NewText(tok.Value, tok.Offset))
		return
	}

	node := mdast.NewFormatted(tok.Format, f.children, f.start.Offset, tok.End()-f.start.Offset)
	if tok.Format == mdast.FormatPre {
		node.Language = f.start.Language
	}
	p.appendNode(node)
}

// unwind degrades every frame still open at the end of the stream, innermost
// first, into its literal opener followed by its children.
func (p *parser) unwind() {
	for len(p.stack) > 0 {
		f := p.pop()
		p.appendNode(mdast.NewText(f.start.Value, f.start.Offset))
		p.appendNode(f.children...)
	}
}
