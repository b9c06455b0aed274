package engine

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autostruct/autostruct/internal/materialize"
	"github.com/autostruct/autostruct/internal/parser"
)

const asciiInput = `project/
├── app.py
├── data/
│   ├── raw.json
│   └── clean.json
└── models/
    └── model.pkl`

func TestRunPipeline(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("out", 0o755))

	eng := New(WithFilesystem(fs))
	res, err := eng.Run(Request{
		Format:   parser.FormatASCII,
		Input:    asciiInput,
		BasePath: "out",
	})
	require.NoError(t, err)

	assert.Empty(t, res.Violations)
	require.Len(t, res.Actions, 7)

	fi, err := fs.Stat("out/project/data/clean.json")
	require.NoError(t, err)
	assert.False(t, fi.IsDir())
}

func TestRunDryRun(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("out", 0o755))

	eng := New(WithFilesystem(fs))
	res, err := eng.Run(Request{
		Format:   parser.FormatASCII,
		Input:    asciiInput,
		BasePath: "out",
		DryRun:   true,
	})
	require.NoError(t, err)

	require.Len(t, res.Actions, 7)
	for _, a := range res.Actions {
		assert.True(t, a.DryRun)
		assert.Equal(t, materialize.OpCreated, a.Op)
	}

	// Zero filesystem writes.
	_, err = fs.Stat("out/project")
	assert.Error(t, err)
}

func TestRunValidationStopsMaterialization(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("out", 0o755))

	eng := New(WithFilesystem(fs))
	res, err := eng.Run(Request{
		Format:   parser.FormatASCII,
		Input:    "good/\n  ba:d.txt\n  al*so.txt",
		BasePath: "out",
	})
	require.NoError(t, err)

	require.Len(t, res.Violations, 2)
	assert.Equal(t, "good/ba:d.txt", res.Violations[0].Path)
	assert.Empty(t, res.Actions)

	_, err = fs.Stat("out/good")
	assert.Error(t, err, "nothing may be written when validation fails")
}

func TestRunFormatError(t *testing.T) {
	eng := New(WithFilesystem(memfs.New()))
	_, err := eng.Run(Request{Format: parser.FormatJSON, Input: `{"a":`})

	var fe *parser.FormatError
	require.ErrorAs(t, err, &fe)
}

func TestRunPrecondition(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "afile", nil, 0o644))
	eng := New(WithFilesystem(fs))

	t.Run("missing base", func(t *testing.T) {
		_, err := eng.Run(Request{
			Format:   parser.FormatASCII,
			Input:    "a/\n  b",
			BasePath: "missing",
		})
		var pe *PreconditionError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "missing", pe.Path)
		assert.Equal(t, "does not exist", pe.Reason)
	})

	t.Run("base is a file", func(t *testing.T) {
		_, err := eng.Run(Request{
			Format:   parser.FormatASCII,
			Input:    "a/\n  b",
			BasePath: "afile",
		})
		var pe *PreconditionError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "not a directory", pe.Reason)
	})
}

func TestRunSecondPassIdempotent(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("out", 0o755))
	eng := New(WithFilesystem(fs))
	req := Request{Format: parser.FormatASCII, Input: asciiInput, BasePath: "out"}

	_, err := eng.Run(req)
	require.NoError(t, err)
	res, err := eng.Run(req)
	require.NoError(t, err)

	for _, a := range res.Actions {
		assert.Equal(t, materialize.OpCreated, a.Op, a.Path)
	}
}
