package mdast

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// Walk performs a pre-order traversal of each tree in nodes.
// If walkFunc returns a non-nil error, the walk stops immediately and
// returns that error.
func Walk(nodes []*Node, walkFunc WalkFunc) error {
	for _, node := range nodes {
		if node == nil {
			continue
		}
		if err := walkFunc(node); err != nil {
			return err
		}
		if err := Walk(node.Children, walkFunc); err != nil {
			return err
		}
	}
	return nil
}

// FindAll returns all nodes matching the predicate, in pre-order.
func FindAll(nodes []*Node, predicate func(n *Node) bool) []*Node {
	var result []*Node

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(nodes, func(node *Node) error {
		if predicate(node) {
			result = append(result, node)
		}
		return nil
	})

	return result
}

// FindByFormat returns all nodes of the specified format.
func FindByFormat(nodes []*Node, format Format) []*Node {
	return FindAll(nodes, func(n *Node) bool {
		return n.Format == format
	})
}
