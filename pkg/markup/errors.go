package markup

import (
	"errors"
	"fmt"

	"github.com/yaklabco/msgmark/pkg/mdast"
)

var (
	errTextNotDerived  = errors.New("output text is not derived from input")
	errMalformedTokens = errors.New("token stream is malformed")
	errTreeOutOfRange  = errors.New("tree node lies outside its parent")
)

// checkTree verifies that every text leaf reads back from source at its
// offset and that every node lies within its parent's source range.
func checkTree(nodes []*mdast.Node, source string) error {
	for _, n := range nodes {
		if n.IsText() {
			if n.Source(source) != n.Text {
				return fmt.Errorf("text leaf at %d does not match source", n.Offset)
			}
			continue
		}

		outer := n.SourceRange()
		for _, child := range n.Children {
			if !outer.ContainsRange(child.SourceRange()) {
				return fmt.Errorf("%w: %s at %d", errTreeOutOfRange, child.Format, child.Offset)
			}
		}
		if err := checkTree(n.Children, source); err != nil {
			return err
		}
	}
	return nil
}

// isSubsequence reports whether sub can be obtained from s by deleting bytes.
func isSubsequence(sub, s string) bool {
	if len(sub) > len(s) {
		return false
	}
	j := 0
	for i := 0; i < len(s) && j < len(sub); i++ {
		if s[i] == sub[j] {
			j++
		}
	}
	return j == len(sub)
}
