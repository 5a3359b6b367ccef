package disk

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"docsearch/internal/domain"
)

const indexFileName = "index.json"

// Store is a disk-persisted vector store using brute-force cosine similarity.
// The index lives as a single JSON file under a dedicated directory; the
// directory's existence gates whether ingestion is rerun.
type Store struct {
	mu        sync.RWMutex
	dir       string
	dimension int
	entries   []entry
}

type entry struct {
	Text   string    `json:"text"`
	Source string    `json:"source"`
	Page   *int      `json:"page,omitempty"`
	Vector []float64 `json:"vector"`
}

type indexFile struct {
	Dimension int     `json:"dimension"`
	Entries   []entry `json:"entries"`
}

func NewStore(dir string) *Store { return &Store{dir: dir} }

// Exists reports whether a persisted index directory is present.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.dir)
	return err == nil && info.IsDir()
}

// Load reads the persisted index into memory.
func (s *Store) Load() error {
	data, err := os.ReadFile(filepath.Join(s.dir, indexFileName))
	if err != nil {
		return fmt.Errorf("read index: %w", err)
	}
	var f indexFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("decode index: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = f.Dimension
	s.entries = f.Entries
	return nil
}

// Save writes the index to disk, creating the directory as needed.
func (s *Store) Save() error {
	s.mu.RLock()
	f := indexFile{Dimension: s.dimension, Entries: s.entries}
	s.mu.RUnlock()
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create index directory: %w", err)
	}
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, indexFileName), data, 0o644)
}

func (s *Store) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.entries = nil
	return nil
}

func (s *Store) Upsert(passages []domain.Passage, vectors [][]float64) error {
	if len(passages) != len(vectors) {
		return errors.New("passages and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if len(v) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	for i, p := range passages {
		s.entries = append(s.entries, entry{Text: p.Text, Source: p.Source, Page: p.Page, Vector: vectors[i]})
	}
	return nil
}

// Search returns the topK entries by descending cosine similarity. Ties keep
// insertion order.
func (s *Store) Search(vector []float64, topK int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		topK = 5
	}
	type scored struct {
		idx   int
		score float64
	}
	scores := make([]scored, len(s.entries))
	for i := range s.entries {
		scores[i] = scored{i, cosine(s.entries[i].Vector, vector)}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if topK > len(scores) {
		topK = len(scores)
	}
	results := make([]domain.SearchResult, 0, topK)
	for _, sc := range scores[:topK] {
		e := s.entries[sc.idx]
		results = append(results, domain.SearchResult{
			Passage: domain.Passage{Text: e.Text, Source: e.Source, Page: e.Page},
			Score:   sc.score,
		})
	}
	return results, nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}

func cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
