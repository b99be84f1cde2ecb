package snapshot

import (
	"strings"
)

// Render formats node as an indented tree, one node per line. The output
// follows the canonical child order, so equal nodes render identically.
func Render(node Node) string {
	var b strings.Builder
	render(&b, node, "", 0)
	return b.String()
}

func render(b *strings.Builder, node Node, label string, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(label)
	switch n := node.(type) {
	case *List:
		b.WriteString(listToken + "\n")
		for _, e := range n.elems {
			render(b, e, "- ", depth+1)
		}
	case *Set:
		b.WriteString(setToken + "\n")
		for _, e := range n.elems {
			render(b, e, "* ", depth+1)
		}
	case *Map:
		b.WriteString(n.token() + "\n")
		for _, e := range n.entries {
			if isLeaf(e.Value) {
				render(b, e.Value, e.Key.String()+": ", depth+1)
				continue
			}
			b.WriteString(strings.Repeat("  ", depth+1) + e.Key.String() + ":\n")
			render(b, e.Value, "", depth+2)
		}
	default:
		b.WriteString(node.String() + "\n")
	}
}

func isLeaf(n Node) bool {
	switch n.(type) {
	case *List, *Set, *Map:
		return false
	}
	return true
}
