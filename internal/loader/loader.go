package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"docsearch/internal/domain"
)

// PageLoader extracts the ordered pages of a single document file.
type PageLoader interface {
	Load(path string) ([]domain.Page, error)
}

// DirLoader reads a directory of documents, dispatching each file to the
// loader registered for its extension. Files with unrecognized extensions
// are skipped; a loader failure aborts the whole load.
type DirLoader struct {
	loaders map[string]PageLoader
}

// NewDirLoader creates a directory loader with the default PDF and DOCX
// loaders registered.
func NewDirLoader() *DirLoader {
	return &DirLoader{loaders: map[string]PageLoader{
		".pdf":  PDFLoader{},
		".docx": DocxLoader{},
	}}
}

func (l *DirLoader) Load(dir string) ([]domain.Page, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read document directory %s: %w", dir, err)
	}
	var pages []domain.Page
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		pl, ok := l.loaders[ext]
		if !ok {
			continue
		}
		p, err := pl.Load(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", e.Name(), err)
		}
		pages = append(pages, p...)
	}
	return pages, nil
}
