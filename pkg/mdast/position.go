package mdast

// SourceRange represents a byte range in the source content.
type SourceRange struct {
	// StartOffset is the byte index where the range begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the range ends (exclusive).
	EndOffset int
}

// ContainsRange returns true if other lies entirely within r.
func (r SourceRange) ContainsRange(other SourceRange) bool {
	return other.StartOffset >= r.StartOffset && other.EndOffset <= r.EndOffset
}

// SourceRange returns the byte range this node covers in the source,
// markers included.
func (n *Node) SourceRange() SourceRange {
	return SourceRange{StartOffset: n.Offset, EndOffset: n.Offset + n.Length}
}

// Source returns the source text for this node, or "" if the node's range
// does not fit in source.
func (n *Node) Source(source string) string {
	r := n.SourceRange()
	if r.StartOffset < 0 || r.EndOffset > len(source) || r.StartOffset > r.EndOffset {
		return ""
	}
	return source[r.StartOffset:r.EndOffset]
}
