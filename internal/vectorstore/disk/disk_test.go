package disk

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsearch/internal/domain"
)

func TestSearchRanksByDescendingSimilarity(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "idx"))
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert(
		[]domain.Passage{{Text: "a", Source: "a.pdf"}, {Text: "b", Source: "b.pdf"}},
		[][]float64{{0, 1}, {1, 0}},
	))

	results, err := s.Search([]float64{1, 0}, 2)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "b.pdf", results[0].Passage.Source)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestSearchBreaksTiesByInsertionOrder(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "idx"))
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert(
		[]domain.Passage{{Text: "first", Source: "a.pdf"}, {Text: "second", Source: "b.pdf"}},
		[][]float64{{1, 0}, {1, 0}},
	))

	results, err := s.Search([]float64{1, 0}, 2)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "first", results[0].Passage.Text)
	assert.Equal(t, "second", results[1].Passage.Text)
}

func TestSearchOnEmptyStore(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "idx"))

	results, err := s.Search([]float64{1, 0}, 5)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestUpsertLengthMismatch(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "idx"))
	require.NoError(t, s.Init(2))

	err := s.Upsert([]domain.Passage{{Text: "a"}}, nil)

	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "idx")
	page := 2
	s := NewStore(dir)
	assert.False(t, s.Exists())
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert(
		[]domain.Passage{{Text: "premium plan", Source: "policy.pdf", Page: &page}},
		[][]float64{{0.6, 0.8}},
	))
	require.NoError(t, s.Save())
	assert.True(t, s.Exists())

	reopened := NewStore(dir)
	require.True(t, reopened.Exists())
	require.NoError(t, reopened.Load())

	results, err := reopened.Search([]float64{0.6, 0.8}, 5)
	require.NoError(t, err)
	require.Len(t, results, 1, "reopening must not duplicate entries")
	assert.Equal(t, "premium plan", results[0].Passage.Text)
	assert.Equal(t, "policy.pdf", results[0].Passage.Source)
	require.NotNil(t, results[0].Passage.Page)
	assert.Equal(t, 2, *results[0].Passage.Page)
}

func TestLoadTwiceIsIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "idx")
	s := NewStore(dir)
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert([]domain.Passage{{Text: "a", Source: "a.pdf"}}, [][]float64{{1, 0}}))
	require.NoError(t, s.Save())

	reopened := NewStore(dir)
	require.NoError(t, reopened.Load())
	require.NoError(t, reopened.Load())

	results, err := reopened.Search([]float64{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}
