package structure

import "strings"

// Render writes the tree in the box-drawing convention the ASCII parser
// accepts: top-level entries bare, deeper entries behind ├──/└── branch
// connectors, directories marked with a trailing slash. Rendering a parsed
// tree and parsing the output yields an equal tree.
func Render(root *Node) string {
	var b strings.Builder
	root.Each(func(c *Node) {
		b.WriteString(label(c))
		b.WriteByte('\n')
		renderChildren(&b, c, "")
	})
	return b.String()
}

func renderChildren(b *strings.Builder, dir *Node, prefix string) {
	i, total := 0, dir.Len()
	dir.Each(func(c *Node) {
		i++
		connector, childPrefix := "├── ", prefix+"│   "
		if i == total {
			connector, childPrefix = "└── ", prefix+"    "
		}
		b.WriteString(prefix)
		b.WriteString(connector)
		b.WriteString(label(c))
		b.WriteByte('\n')
		renderChildren(b, c, childPrefix)
	})
}

func label(n *Node) string {
	if n.IsDir() {
		return n.name + "/"
	}
	return n.name
}
