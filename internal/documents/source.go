package documents

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Source is a single document discovered on disk. Identity is the filename
// without its extension and is the authoritative name for records derived
// from the document (job-description identities become team names).
type Source struct {
	Path     string
	Identity string
	Ext      string
}

// supportedExts lists the document types the extractors can handle.
var supportedExts = map[string]bool{
	".pdf":  true,
	".docx": true,
	".pptx": true,
	".txt":  true,
}

// ListResult carries the outcome of a directory scan.
type ListResult struct {
	Sources []Source
	Skipped []string
}

// ListSources enumerates supported documents in dir. Files with unsupported
// extensions are reported in Skipped rather than failing the scan. Sources
// are returned sorted by filename so repeated runs process documents in the
// same order.
func ListSources(dir string) (*ListResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %q: %w", dir, err)
	}

	result := &ListResult{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if !supportedExts[ext] {
			result.Skipped = append(result.Skipped, name)
			continue
		}

		result.Sources = append(result.Sources, Source{
			Path:     filepath.Join(dir, name),
			Identity: strings.TrimSuffix(name, filepath.Ext(name)),
			Ext:      ext,
		})
	}

	sort.Slice(result.Sources, func(i, j int) bool {
		return result.Sources[i].Path < result.Sources[j].Path
	})

	return result, nil
}
