// Package ziputil builds in-memory zip archives for download endpoints.
package ziputil

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// Entry is a single file inside an archive.
type Entry struct {
	Name string
	Body []byte
}

// Archive packs the entries into a zip archive in the given order.
func Archive(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", e.Name, err)
		}
		if _, err := w.Write(e.Body); err != nil {
			return nil, fmt.Errorf("write %s: %w", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
