// Package archive exports a structure as a zip file, the delivery format
// for handing a generated layout to a download-style consumer.
package archive

import (
	"archive/zip"
	"fmt"
	"io"

	"github.com/autostruct/autostruct/internal/structure"
)

// WriteZip writes the tree to w as a zip archive: directories become
// trailing-slash entries, files become zero-length entries, both in tree
// order. The archive is built from the model alone; the filesystem is
// never consulted.
func WriteZip(w io.Writer, root *structure.Node) error {
	zw := zip.NewWriter(w)
	var werr error
	root.Walk(func(path string, n *structure.Node) {
		if werr != nil {
			return
		}
		name := path
		if n.IsDir() {
			name += "/"
		}
		if _, err := zw.Create(name); err != nil {
			werr = fmt.Errorf("add %s: %w", name, err)
		}
	})
	if werr != nil {
		zw.Close()
		return werr
	}
	return zw.Close()
}
