package parser

import (
	"errors"

	"gopkg.in/yaml.v3"

	"github.com/autostruct/autostruct/internal/structure"
)

// ParseYAML decodes a YAML document into a structure tree using the same
// interpretation as the JSON adapter: mappings are directories, null and
// other scalars are files, sequences declare a directory's contents as an
// ordered list. Decoding into a yaml.Node keeps mapping entries in
// document order, and duplicate keys resolve last-write-wins through the
// ordered child map.
func ParseYAML(input string) (*structure.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		return nil, &FormatError{Format: FormatYAML, Err: err}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, &FormatError{Format: FormatYAML, Err: errors.New("empty document")}
	}
	top := resolveAlias(doc.Content[0])
	if top.Kind != yaml.MappingNode {
		return nil, &FormatError{Format: FormatYAML, Err: errors.New("top-level value must be a mapping")}
	}

	root := structure.NewRoot()
	addMapping(root, top)
	return root, nil
}

// addMapping interprets a mapping node's entries as dir's children.
func addMapping(dir *structure.Node, m *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		addValue(dir, m.Content[i].Value, resolveAlias(m.Content[i+1]))
	}
}

// addValue adds the node denoted by v under dir.
func addValue(dir *structure.Node, name string, v *yaml.Node) {
	switch v.Kind {
	case yaml.MappingNode:
		child := structure.NewDir(name)
		addMapping(child, v)
		dir.Add(child)
	case yaml.SequenceNode:
		child := structure.NewDir(name)
		addList(child, v)
		dir.Add(child)
	default:
		// Scalars, including !!null, denote files; the value is ignored.
		dir.Add(structure.NewFile(name))
	}
}

// addList interprets sequence elements: strings are plain file names,
// mappings contribute their entries, anything else is skipped.
func addList(dir *structure.Node, seq *yaml.Node) {
	for _, el := range seq.Content {
		el = resolveAlias(el)
		switch {
		case el.Kind == yaml.MappingNode:
			addMapping(dir, el)
		case el.Kind == yaml.ScalarNode && el.Tag == "!!str":
			dir.Add(structure.NewFile(el.Value))
		}
	}
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
