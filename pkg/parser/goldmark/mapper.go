package goldmark

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/msgmark/pkg/mdast"
)

// mapper converts a goldmark AST into an inline mdast tree.
type mapper struct {
	content []byte

	// last is the source offset just past the most recently mapped text.
	last int
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

// mapDocument converts a goldmark document into a flat list of inline nodes.
func (m *mapper) mapDocument(gmDoc ast.Node) []*mdast.Node {
	return m.mapBlocks(gmDoc)
}

// mapBlocks maps the block children of gmParent, joining them with newlines.
func (m *mapper) mapBlocks(gmParent ast.Node) []*mdast.Node {
	var out []*mdast.Node
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		nodes := m.mapBlock(child)
		if len(nodes) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, mdast.NewText("\n", nodes[0].Offset))
		}
		out = append(out, nodes...)
	}
	return out
}

// mapBlock converts a single goldmark block node.
func (m *mapper) mapBlock(gmNode ast.Node) []*mdast.Node {
	switch gmn := gmNode.(type) {
	case *ast.FencedCodeBlock:
		return []*mdast.Node{m.mapCodeBlock(gmn, string(gmn.Language(m.content)))}

	case *ast.CodeBlock:
		return []*mdast.Node{m.mapCodeBlock(gmn, "")}

	case *ast.HTMLBlock:
		return m.textNodes(m.lines(gmn))

	case *ast.ThematicBreak:
		return nil

	case *ast.Paragraph, *ast.Heading, *ast.TextBlock:
		return m.mapInlines(gmNode)

	default:
		// Containers (lists, quotes, tables) hold blocks; table cells hold inlines.
		if first := gmNode.FirstChild(); first != nil && first.Type() == ast.TypeBlock {
			return m.mapBlocks(gmNode)
		}
		return m.mapInlines(gmNode)
	}
}

// mapCodeBlock converts a code block into a pre node. One trailing newline is
// dropped from the content.
func (m *mapper) mapCodeBlock(gmNode ast.Node, language string) *mdast.Node {
	content := strings.TrimSuffix(m.lines(gmNode), "\n")

	offset := m.last
	if lines := gmNode.Lines(); lines.Len() > 0 {
		offset = lines.At(0).Start
	}

	var children []*mdast.Node
	if content != "" {
		children = append(children, m.text(content, offset))
	}

	node := mdast.NewFormatted(mdast.FormatPre, children, offset, len(content))
	node.Language = language
	return node
}

// lines concatenates the raw source lines of a block.
func (m *mapper) lines(gmNode ast.Node) string {
	var sb strings.Builder
	lines := gmNode.Lines()
	for i := range lines.Len() {
		segment := lines.At(i)
		sb.Write(segment.Value(m.content))
	}
	return sb.String()
}

// mapInlines maps the inline children of gmParent.
func (m *mapper) mapInlines(gmParent ast.Node) []*mdast.Node {
	var out []*mdast.Node
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, m.mapInline(child)...)
	}
	return out
}

// mapInline converts a single goldmark inline node.
func (m *mapper) mapInline(gmNode ast.Node) []*mdast.Node {
	switch gmn := gmNode.(type) {
	case *ast.Text:
		return m.mapText(gmn)

	case *ast.String:
		return m.textNodes(string(gmn.Value))

	case *ast.Emphasis:
		return []*mdast.Node{m.mapEmphasis(gmn)}

	case *ast.CodeSpan:
		return []*mdast.Node{m.mapCodeSpan(gmn)}

	case *ast.AutoLink:
		return m.textNodes(string(gmn.Label(m.content)))

	case *ast.RawHTML:
		var sb strings.Builder
		for i := range gmn.Segments.Len() {
			segment := gmn.Segments.At(i)
			sb.Write(segment.Value(m.content))
		}
		return m.textNodes(sb.String())

	// GFM extension nodes.
	case *east.Strikethrough:
		return []*mdast.Node{m.formatted(mdast.FormatStrike, m.mapInlines(gmn))}

	case *east.TaskCheckBox:
		if gmn.IsChecked {
			return m.textNodes("[x] ")
		}
		return m.textNodes("[ ] ")

	default:
		// Links and images contribute their label text.
		return m.mapInlines(gmNode)
	}
}

// mapText converts a text node, resolving escapes and entity references and
// turning line breaks into newlines.
func (m *mapper) mapText(textNode *ast.Text) []*mdast.Node {
	value := textNode.Segment.Value(m.content)
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	value = util.ResolveEntityNames(value)

	var out []*mdast.Node
	if len(value) > 0 {
		out = append(out, m.text(string(value), textNode.Segment.Start))
	}
	if textNode.SoftLineBreak() || textNode.HardLineBreak() {
		out = append(out, m.text("\n", textNode.Segment.Stop))
	}
	return out
}

// mapEmphasis converts emphasis by its delimiter: anything written with
// underscores is italic, double asterisks are bold and a single asterisk is
// italic.
func (m *mapper) mapEmphasis(emphasis *ast.Emphasis) *mdast.Node {
	format := mdast.FormatItalic
	if m.delimiter(emphasis) == '*' && emphasis.Level >= 2 {
		format = mdast.FormatBold
	}
	return m.formatted(format, m.mapInlines(emphasis))
}

// delimiter recovers the character that opened an emphasis node. goldmark
// does not keep it, so it is read back from the source. The first text under
// the emphasis is found by following first children; scanning backwards from
// it passes the runs of nested emphasis and the openers of code spans, links,
// images and strikethrough before reaching the run that opened this node.
func (m *mapper) delimiter(emphasis *ast.Emphasis) byte {
	inner := 0
	node := emphasis.FirstChild()
	for node != nil {
		if gmn, ok := node.(*ast.Text); ok {
			return m.delimiterBefore(gmn.Segment.Start, inner)
		}
		if gmn, ok := node.(*ast.Emphasis); ok {
			inner += gmn.Level
		}
		node = node.FirstChild()
	}
	return '*'
}

// delimiterBefore scans backwards from pos, skips inner emphasis delimiters
// and returns the next one. Anything other than an opener character stops the
// scan.
func (m *mapper) delimiterBefore(pos, inner int) byte {
	for pos--; pos >= 0 && pos < len(m.content); pos-- {
		switch c := m.content[pos]; c {
		case '*', '_':
			if inner == 0 {
				return c
			}
			inner--
		case '`', '[', '!', '~', ' ':
		default:
			return '*'
		}
	}
	return '*'
}

// mapCodeSpan converts a code span. Line endings inside a span read as spaces.
func (m *mapper) mapCodeSpan(codeSpan *ast.CodeSpan) *mdast.Node {
	var sb strings.Builder
	offset := -1
	for child := codeSpan.FirstChild(); child != nil; child = child.NextSibling() {
		switch gmn := child.(type) {
		case *ast.Text:
			if offset < 0 {
				offset = gmn.Segment.Start
			}
			sb.Write(gmn.Segment.Value(m.content))
		case *ast.String:
			sb.Write(gmn.Value)
		}
	}
	if offset < 0 {
		offset = m.last
	}

	var children []*mdast.Node
	if content := strings.ReplaceAll(sb.String(), "\n", " "); content != "" {
		children = append(children, m.text(content, offset))
	}
	return m.formatted(mdast.FormatCode, children)
}

// formatted wraps children in a formatting node spanning their content.
func (m *mapper) formatted(format mdast.Format, children []*mdast.Node) *mdast.Node {
	offset := m.last
	if len(children) > 0 {
		offset = children[0].Offset
	}
	return mdast.NewFormatted(format, children, offset, m.last-offset)
}

// textNodes returns a one-leaf slice positioned at the current offset, or nil
// for empty text.
func (m *mapper) textNodes(value string) []*mdast.Node {
	if value == "" {
		return nil
	}
	return []*mdast.Node{m.text(value, m.last)}
}

func (m *mapper) text(value string, offset int) *mdast.Node {
	node := mdast.NewText(value, offset)
	m.last = offset + node.Length
	return node
}
