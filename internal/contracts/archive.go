package contracts

import (
	"archive/zip"
	"bytes"
	"fmt"
	"sort"
)

// buildArchive packages the given documents into a zip, one entry per
// document keyed by file name, entries in lexicographic key order so the
// archive layout is deterministic.
func buildArchive(files map[string][]byte) ([]byte, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("contracts: adding %s to archive: %w", name, err)
		}
		if _, err := w.Write(files[name]); err != nil {
			return nil, fmt.Errorf("contracts: writing %s to archive: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("contracts: finalizing archive: %w", err)
	}
	return buf.Bytes(), nil
}
