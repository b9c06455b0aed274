// Package materialize turns a validated tree into real directories and
// empty files, or previews the run without touching the filesystem.
//
// Materialization is best-effort per node: a failure is recorded in the
// action log and traversal continues with the remaining siblings and
// their subtrees. Partial success on a large tree beats discarding it
// over one bad name.
package materialize

import (
	"fmt"
	"path"

	"github.com/go-git/go-billy/v5"

	"github.com/autostruct/autostruct/internal/structure"
)

// Op tags an action log entry.
type Op int

const (
	OpCreated Op = iota
	OpError
)

// Action is one entry of the ordered materialization log. Entries appear
// in pre-order, parents before children.
type Action struct {
	Op      Op
	Kind    structure.Kind
	Path    string
	Message string // set for OpError
	DryRun  bool
}

func (a Action) String() string {
	prefix := ""
	if a.DryRun {
		prefix = "[dry-run] "
	}
	if a.Op == OpError {
		return fmt.Sprintf("%serror creating %s %s: %s", prefix, a.Kind, a.Path, a.Message)
	}
	return fmt.Sprintf("%screated %s: %s", prefix, a.Kind, a.Path)
}

// Materializer writes trees through a billy filesystem. In dry-run mode
// the filesystem is never consulted and may be nil; the log still carries
// the exact paths a real run would create.
type Materializer struct {
	fs     billy.Filesystem
	dryRun bool
}

func New(fs billy.Filesystem, dryRun bool) *Materializer {
	return &Materializer{fs: fs, dryRun: dryRun}
}

// Run materializes root's children under base and returns the action
// log. The base directory itself must already exist; checking that is the
// caller's contract, not Run's.
func (m *Materializer) Run(root *structure.Node, base string) []Action {
	var log []Action
	m.apply(root, base, &log)
	return log
}

func (m *Materializer) apply(dir *structure.Node, base string, log *[]Action) {
	dir.Each(func(n *structure.Node) {
		target := join(base, n.Name())
		if n.IsDir() {
			if err := m.createDir(target); err != nil {
				*log = append(*log, m.failure(n, target, err))
				// A directory that could not be created cannot hold
				// children; its subtree is skipped, siblings continue.
				return
			}
			*log = append(*log, m.success(n, target))
			m.apply(n, target, log)
			return
		}
		if err := m.createFile(target); err != nil {
			*log = append(*log, m.failure(n, target, err))
			return
		}
		*log = append(*log, m.success(n, target))
	})
}

// createDir is idempotent: an already existing directory is a success.
func (m *Materializer) createDir(target string) error {
	if m.dryRun {
		return nil
	}
	return m.fs.MkdirAll(target, 0o755)
}

// createFile creates or truncates a zero-length file, making intermediate
// directories first.
func (m *Materializer) createFile(target string) error {
	if m.dryRun {
		return nil
	}
	if dir := path.Dir(target); dir != "." && dir != "/" {
		if err := m.fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := m.fs.Create(target)
	if err != nil {
		return err
	}
	return f.Close()
}

func (m *Materializer) success(n *structure.Node, target string) Action {
	return Action{Op: OpCreated, Kind: n.Kind(), Path: target, DryRun: m.dryRun}
}

func (m *Materializer) failure(n *structure.Node, target string, err error) Action {
	return Action{Op: OpError, Kind: n.Kind(), Path: target, Message: err.Error(), DryRun: m.dryRun}
}

// join is slash-based regardless of the backing filesystem so that
// dry-run and real logs agree byte for byte.
func join(base, name string) string {
	if base == "" {
		return name
	}
	return path.Join(base, name)
}
