package pysrc

import (
	"strings"
)

// Signature returns a canonical whitespace-free rendering of the outline.
// Two modules with equal signatures have the same definition structure.
func (m *Module) Signature() string {
	var sb strings.Builder
	writeNodes(&sb, m.Nodes)
	return sb.String()
}

func writeNodes(sb *strings.Builder, nodes []*Node) {
	for i, n := range nodes {
		if i > 0 {
			sb.WriteByte(';')
		}
		for _, dec := range n.Decorators {
			sb.WriteByte('@')
			sb.WriteString(dec)
			sb.WriteByte(';')
		}
		sb.WriteString(strings.ReplaceAll(n.Signature, " ", ""))
		if len(n.Children) > 0 {
			sb.WriteByte('{')
			writeNodes(sb, n.Children)
			sb.WriteByte('}')
		}
	}
}

// Equal reports whether two outlines describe the same structure.
func (m *Module) Equal(other *Module) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.Signature() == other.Signature()
}

// Render returns a human-readable outline, one definition per line with
// four-space indentation, suitable for diffing two structures.
func (m *Module) Render() string {
	var sb strings.Builder
	renderNodes(&sb, m.Nodes, 0)
	return sb.String()
}

func renderNodes(sb *strings.Builder, nodes []*Node, depth int) {
	indent := strings.Repeat("    ", depth)
	for _, n := range nodes {
		for _, dec := range n.Decorators {
			sb.WriteString(indent)
			sb.WriteByte('@')
			sb.WriteString(dec)
			sb.WriteByte('\n')
		}
		sb.WriteString(indent)
		sb.WriteString(n.Signature)
		sb.WriteByte('\n')
		renderNodes(sb, n.Children, depth+1)
	}
}
