package materialize

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autostruct/autostruct/internal/structure"
)

func sampleTree() *structure.Node {
	root := structure.NewRoot()
	project := structure.NewDir("project")
	project.Add(structure.NewFile("app.py"))
	data := structure.NewDir("data")
	data.Add(structure.NewFile("raw.json"))
	data.Add(structure.NewFile("clean.json"))
	project.Add(data)
	models := structure.NewDir("models")
	models.Add(structure.NewFile("model.pkl"))
	project.Add(models)
	root.Add(project)
	return root
}

func paths(actions []Action) []string {
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		out = append(out, a.Path)
	}
	return out
}

func TestRunCreatesTree(t *testing.T) {
	fs := memfs.New()
	actions := New(fs, false).Run(sampleTree(), "out")

	require.Len(t, actions, 7)
	assert.Equal(t, []string{
		"out/project",
		"out/project/app.py",
		"out/project/data",
		"out/project/data/raw.json",
		"out/project/data/clean.json",
		"out/project/models",
		"out/project/models/model.pkl",
	}, paths(actions))

	for _, a := range actions {
		assert.Equal(t, OpCreated, a.Op, a.Path)
		assert.False(t, a.DryRun)
	}

	fi, err := fs.Stat("out/project/data")
	require.NoError(t, err)
	assert.True(t, fi.IsDir())

	fi, err = fs.Stat("out/project/models/model.pkl")
	require.NoError(t, err)
	assert.False(t, fi.IsDir())
	assert.Zero(t, fi.Size())
}

func TestRunIsIdempotent(t *testing.T) {
	fs := memfs.New()
	m := New(fs, false)

	first := m.Run(sampleTree(), "")
	second := m.Run(sampleTree(), "")

	require.Equal(t, paths(first), paths(second))
	for _, a := range second {
		assert.Equal(t, OpCreated, a.Op, a.Path)
	}
}

func TestDryRunPurity(t *testing.T) {
	fs := memfs.New()

	dry := New(fs, true).Run(sampleTree(), "out")
	for _, a := range dry {
		assert.True(t, a.DryRun)
		assert.Equal(t, OpCreated, a.Op)
	}

	// Nothing was written.
	for _, p := range paths(dry) {
		_, err := fs.Stat(p)
		assert.Error(t, err, p)
	}

	// The path set matches a real run exactly.
	real := New(fs, false).Run(sampleTree(), "out")
	assert.Equal(t, paths(real), paths(dry))
}

func TestDryRunNeedsNoFilesystem(t *testing.T) {
	actions := New(nil, true).Run(sampleTree(), "base")
	assert.Len(t, actions, 7)
}

// failingFS rejects file creation for paths containing a marker substring.
type failingFS struct {
	billy.Filesystem
	denySubstr string
}

func (f *failingFS) Create(name string) (billy.File, error) {
	if strings.Contains(name, f.denySubstr) {
		return nil, errors.New("permission denied")
	}
	return f.Filesystem.Create(name)
}

func TestRunContinuesAfterFileFailure(t *testing.T) {
	root := structure.NewRoot()
	dir := structure.NewDir("a")
	dir.Add(structure.NewFile("denied.txt"))
	dir.Add(structure.NewFile("ok.txt"))
	root.Add(dir)
	sibling := structure.NewDir("b")
	sibling.Add(structure.NewFile("deep.txt"))
	root.Add(sibling)

	fs := &failingFS{Filesystem: memfs.New(), denySubstr: "denied"}
	actions := New(fs, false).Run(root, "")

	require.Len(t, actions, 5)

	assert.Equal(t, OpError, actions[1].Op)
	assert.Equal(t, "a/denied.txt", actions[1].Path)
	assert.Equal(t, "permission denied", actions[1].Message)

	// Siblings at the same and deeper levels still got processed.
	assert.Equal(t, OpCreated, actions[2].Op)
	assert.Equal(t, "a/ok.txt", actions[2].Path)
	assert.Equal(t, "b/deep.txt", actions[4].Path)
}

// dirFailFS rejects directory creation for paths containing a marker
// substring.
type dirFailFS struct {
	billy.Filesystem
	denySubstr string
}

func (f *dirFailFS) MkdirAll(name string, perm os.FileMode) error {
	if strings.Contains(name, f.denySubstr) {
		return errors.New("read-only filesystem")
	}
	return f.Filesystem.MkdirAll(name, perm)
}

func TestRunSkipsChildrenOfFailedDirectory(t *testing.T) {
	root := structure.NewRoot()
	bad := structure.NewDir("locked")
	bad.Add(structure.NewFile("inside.txt"))
	root.Add(bad)
	root.Add(structure.NewFile("after.txt"))

	fs := &dirFailFS{Filesystem: memfs.New(), denySubstr: "locked"}
	actions := New(fs, false).Run(root, "")

	require.Len(t, actions, 2)
	assert.Equal(t, OpError, actions[0].Op)
	assert.Equal(t, "locked", actions[0].Path)
	assert.Equal(t, structure.KindDir, actions[0].Kind)

	// The failed directory's subtree is skipped; the sibling continues.
	assert.Equal(t, OpCreated, actions[1].Op)
	assert.Equal(t, "after.txt", actions[1].Path)
}

func TestActionString(t *testing.T) {
	a := Action{Op: OpCreated, Kind: structure.KindDir, Path: "x/y"}
	assert.Equal(t, "created directory: x/y", a.String())

	a = Action{Op: OpCreated, Kind: structure.KindFile, Path: "x/z", DryRun: true}
	assert.Equal(t, "[dry-run] created file: x/z", a.String())

	a = Action{Op: OpError, Kind: structure.KindFile, Path: "x/w", Message: "disk full"}
	assert.Equal(t, "error creating file x/w: disk full", a.String())
}
