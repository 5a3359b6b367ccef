package loader

import (
	"fmt"

	"github.com/ledongthuc/pdf"

	"docsearch/internal/domain"
)

// PDFLoader extracts text from a PDF file, one Page per PDF page so that
// page-level provenance survives retrieval.
type PDFLoader struct{}

func (PDFLoader) Load(path string) ([]domain.Page, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var pages []domain.Page
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract pdf page %d: %w", i, err)
		}
		idx := i - 1
		pages = append(pages, domain.Page{Text: text, Source: path, Page: &idx})
	}
	return pages, nil
}
