package archive

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autostruct/autostruct/internal/structure"
)

func TestWriteZip(t *testing.T) {
	root := structure.NewRoot()
	project := structure.NewDir("project")
	project.Add(structure.NewFile("app.py"))
	data := structure.NewDir("data")
	data.Add(structure.NewFile("raw.json"))
	project.Add(data)
	root.Add(project)

	var buf bytes.Buffer
	require.NoError(t, WriteZip(&buf, root))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
		assert.Zero(t, f.UncompressedSize64, f.Name)
	}
	assert.Equal(t, []string{
		"project/",
		"project/app.py",
		"project/data/",
		"project/data/raw.json",
	}, names)
}

func TestWriteZipEmptyTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteZip(&buf, structure.NewRoot()))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Empty(t, zr.File)
}
