package mdast

import "strings"

// Node represents a single node in the inline markup tree.
//
// A node is either a text leaf (Format == FormatNone, Text set) or a
// formatting node (Format set, Children set). Each formatting node owns its
// Children slice; parsing moves slices into nodes, it never shares them.
type Node struct {
	// Format identifies the formatting kind. FormatNone for text leaves.
	Format Format

	// Text holds the content of a text leaf.
	Text string

	// Children holds the nested nodes of a formatting node, in source order.
	Children []*Node

	// Offset is the byte index where the node begins in the source,
	// including the opening marker for formatting nodes.
	Offset int

	// Length is the source length in bytes, including both markers for
	// formatting nodes.
	Length int

	// Language is the info tag of a pre node, if any.
	Language string
}

// NewText creates a text leaf.
func NewText(text string, offset int) *Node {
	return &Node{
		Format: FormatNone,
		Text:   text,
		Offset: offset,
		Length: len(text),
	}
}

// NewFormatted creates a formatting node that takes ownership of children.
func NewFormatted(format Format, children []*Node, offset, length int) *Node {
	return &Node{
		Format:   format,
		Children: children,
		Offset:   offset,
		Length:   length,
	}
}

// IsText returns true if this is a text leaf.
func (n *Node) IsText() bool {
	return n.Format == FormatNone
}

// PlainText returns the concatenated text of all leaves under n,
// which is what n contributes to the converted output.
func (n *Node) PlainText() string {
	if n.IsText() {
		return n.Text
	}
	var sb strings.Builder
	for _, child := range n.Children {
		sb.WriteString(child.PlainText())
	}
	return sb.String()
}

// PlainText returns the concatenated text of all leaves in nodes.
func PlainText(nodes []*Node) string {
	var sb strings.Builder
	for _, node := range nodes {
		sb.WriteString(node.PlainText())
	}
	return sb.String()
}
