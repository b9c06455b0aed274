// Package structure defines the unified tree model shared by the parsers,
// the validator and the materializer. A tree is built once by a parser and
// only traversed afterwards.
package structure

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind tags a Node as a file or a directory.
type Kind int

const (
	KindFile Kind = iota
	KindDir
)

func (k Kind) String() string {
	if k == KindDir {
		return "directory"
	}
	return "file"
}

// Node is one file or directory entry. A directory holds its children in
// insertion order; a file holds none. Sibling names are unique.
type Node struct {
	name     string
	kind     Kind
	children *orderedmap.OrderedMap[string, *Node]
}

// NewFile returns a file node. Files carry no payload; materializing one
// produces an empty file.
func NewFile(name string) *Node {
	return &Node{name: name, kind: KindFile}
}

// NewDir returns an empty directory node.
func NewDir(name string) *Node {
	return &Node{
		name:     name,
		kind:     KindDir,
		children: orderedmap.New[string, *Node](),
	}
}

// NewRoot returns the implicit unnamed root directory that parsers
// populate with the document's top-level entries.
func NewRoot() *Node {
	return NewDir("")
}

func (n *Node) Name() string { return n.name }

func (n *Node) Kind() Kind { return n.kind }

func (n *Node) IsDir() bool { return n.kind == KindDir }

// Add inserts child under n. An existing sibling with the same name is
// replaced but keeps its original position: last write wins, exactly as a
// mapping overwrite would behave. Adding to a file node is a no-op.
func (n *Node) Add(child *Node) {
	if n.kind != KindDir {
		return
	}
	n.children.Set(child.name, child)
}

// Child looks up a direct child by name.
func (n *Node) Child(name string) (*Node, bool) {
	if n.kind != KindDir {
		return nil, false
	}
	return n.children.Get(name)
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	if n.kind != KindDir {
		return 0
	}
	return n.children.Len()
}

// Each calls fn for every direct child in insertion order.
func (n *Node) Each(fn func(child *Node)) {
	if n.kind != KindDir {
		return
	}
	for pair := n.children.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Value)
	}
}

// Walk visits every node below n in pre-order, parents before children.
// Paths are slash-joined and relative to n, which is not itself visited.
func (n *Node) Walk(fn func(path string, node *Node)) {
	n.walk("", fn)
}

func (n *Node) walk(prefix string, fn func(string, *Node)) {
	n.Each(func(c *Node) {
		p := c.name
		if prefix != "" {
			p = prefix + "/" + c.name
		}
		fn(p, c)
		c.walk(p, fn)
	})
}

// Equal reports whether two trees have the same names, kinds and child
// order throughout.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.name != b.name || a.kind != b.kind {
		return false
	}
	if a.kind == KindFile {
		return true
	}
	if a.children.Len() != b.children.Len() {
		return false
	}
	pa, pb := a.children.Oldest(), b.children.Oldest()
	for pa != nil && pb != nil {
		if !Equal(pa.Value, pb.Value) {
			return false
		}
		pa, pb = pa.Next(), pb.Next()
	}
	return pa == nil && pb == nil
}

// Value converts the subtree to a generic nested value: directories become
// map[string]any, files become nil. Map iteration loses child order; use
// Walk or Each when order matters.
func (n *Node) Value() any {
	if n.kind == KindFile {
		return nil
	}
	m := make(map[string]any, n.children.Len())
	n.Each(func(c *Node) {
		m[c.name] = c.Value()
	})
	return m
}
