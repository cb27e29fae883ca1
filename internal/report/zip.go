package report

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// Entry is one file inside the report archive.
type Entry struct {
	Name string
	Data []byte
}

// BuildZip assembles the report entries into a ZIP archive.
func BuildZip(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, entry := range entries {
		f, err := w.Create(entry.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create archive entry %s: %w", entry.Name, err)
		}
		if _, err := f.Write(entry.Data); err != nil {
			return nil, fmt.Errorf("failed to write archive entry %s: %w", entry.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
