// Package validate checks a parsed tree for names that are unsafe to
// create on common filesystems.
package validate

import (
	"fmt"
	"strings"

	"github.com/autostruct/autostruct/internal/structure"
)

// reserved are the characters refused in entry names.
const reserved = `<>:"|?*`

// Violation describes one unsafe name, located by its slash-joined path
// from the root.
type Violation struct {
	Path   string
	Reason string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Reason)
}

// Check walks the tree in pre-order and collects a violation for every
// name containing a reserved character. An empty result means the tree is
// safe to materialize. No other semantic checks (path length, reserved
// device names) are performed.
func Check(root *structure.Node) []Violation {
	var out []Violation
	root.Walk(func(path string, n *structure.Node) {
		if strings.ContainsAny(n.Name(), reserved) {
			out = append(out, Violation{
				Path:   path,
				Reason: fmt.Sprintf("name contains reserved characters (%s)", reserved),
			})
		}
	})
	return out
}
