package vectorstore

import "docsearch/internal/domain"

// Storage holds passage vectors and supports similarity search.
type Storage interface {
	Init(dimension int) error
	Upsert(passages []domain.Passage, vectors [][]float64) error
	Search(vector []float64, topK int) ([]domain.SearchResult, error)
	Clear() error
}

// Persistent is implemented by stores whose contents survive restarts.
// Presence of an existing index alone decides whether ingestion runs again;
// there is no staleness check against the source documents.
type Persistent interface {
	Exists() bool
	Load() error
	Save() error
}
