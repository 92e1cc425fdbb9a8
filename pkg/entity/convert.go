package entity

import (
	"strings"

	"github.com/yaklabco/msgmark/pkg/mdast"
)

// converter walks an inline tree and accumulates output text and entities.
type converter struct {
	unit     Unit
	sb       strings.Builder
	cursor   int
	entities []Entity
}

// Convert flattens an inline tree into text and entities.
//
// Entities are emitted in the order their nodes are entered: an entity's slot
// is reserved before its children are visited and its length is filled in
// afterwards, so an outer entity always precedes the entities nested in it.
// Offsets and lengths are counted in unit.
func Convert(nodes []*mdast.Node, unit Unit) FormattedText {
	c := &converter{unit: unit}

	for _, node := range nodes {
		c.visit(node)
	}

	result := FormattedText{Text: c.sb.String()}
	if len(c.entities) > 0 {
		result.Entities = c.entities
	}

	return result
}

func (c *converter) visit(node *mdast.Node) {
	if node == nil {
		return
	}

	if node.IsText() {
		c.sb.WriteString(node.Text)
		c.cursor += c.unit.Len(node.Text)
		return
	}

	entityType, ok := TypeForFormat(node.Format)
	if !ok {
		for _, child := range node.Children {
			c.visit(child)
		}
		return
	}

	slot := len(c.entities)
	start := c.cursor
	c.entities = append(c.entities, Entity{Type: entityType, Offset: start})
	if node.Format == mdast.FormatPre {
		c.entities[slot].Language = node.Language
	}

	for _, child := range node.Children {
		c.visit(child)
	}

	c.entities[slot].Length = c.cursor - start
}
