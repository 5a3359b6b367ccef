package service

import (
	"context"
	"fmt"
	"strings"

	"docsearch/internal/domain"
	"docsearch/internal/embedding"
	"docsearch/internal/llm"
	"docsearch/internal/vectorstore"
)

// answerPrompt is the "stuff" pattern: every retrieved passage is placed in
// the model's context verbatim.
const answerPrompt = `Use the following pieces of context to answer the question at the end. If you don't know the answer, just say that you don't know, don't try to make up an answer.

%s

Question: %s
Helpful Answer:`

// Service wires ingestion, indexing, retrieval and answer synthesis together.
type Service struct {
	loader              domain.Loader
	splitter            domain.Splitter
	embedder            embedding.Embedder
	store               vectorstore.Storage
	llm                 llm.Client
	summarizer          domain.Summarizer
	docsDir             string
	topK                int
	summaryMaxSentences int
}

func New(loader domain.Loader, splitter domain.Splitter, embedder embedding.Embedder, store vectorstore.Storage, llmClient llm.Client, summarizer domain.Summarizer, docsDir string, topK, summaryMaxSentences int) *Service {
	if topK <= 0 {
		topK = 5
	}
	return &Service{
		loader:              loader,
		splitter:            splitter,
		embedder:            embedder,
		store:               store,
		llm:                 llmClient,
		summarizer:          summarizer,
		docsDir:             docsDir,
		topK:                topK,
		summaryMaxSentences: summaryMaxSentences,
	}
}

// OpenOrBuild opens the persisted index if one exists, trusting it as-is
// without reading the document directory. Otherwise it ingests the documents,
// embeds every passage and persists a fresh index. On a fresh build it also
// returns a short corpus summary. Embedding failures are fatal: there is no
// partial index.
func (s *Service) OpenOrBuild() (summary string, built bool, err error) {
	if p, ok := s.store.(vectorstore.Persistent); ok && p.Exists() {
		if err := p.Load(); err != nil {
			return "", false, fmt.Errorf("open index: %w", err)
		}
		return "", false, nil
	}

	pages, err := s.loader.Load(s.docsDir)
	if err != nil {
		return "", false, fmt.Errorf("ingest documents: %w", err)
	}
	passages := s.splitter.Split(pages)
	if len(passages) == 0 {
		// An empty corpus still yields a valid, queryable index.
		if p, ok := s.store.(vectorstore.Persistent); ok {
			if err := p.Save(); err != nil {
				return "", false, fmt.Errorf("persist index: %w", err)
			}
		}
		return "", true, nil
	}

	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Text
	}
	if err := s.embedder.Prepare(texts); err != nil {
		return "", false, fmt.Errorf("prepare embedder: %w", err)
	}
	vectors := make([][]float64, len(passages))
	for i := range passages {
		vec, err := s.embedder.Embed(passages[i].Text)
		if err != nil {
			return "", false, fmt.Errorf("embed passage: %w", err)
		}
		vectors[i] = vec
	}
	if err := s.store.Init(s.embedder.Dimension()); err != nil {
		return "", false, fmt.Errorf("init index: %w", err)
	}
	if err := s.store.Upsert(passages, vectors); err != nil {
		return "", false, fmt.Errorf("index passages: %w", err)
	}
	if p, ok := s.store.(vectorstore.Persistent); ok {
		if err := p.Save(); err != nil {
			return "", false, fmt.Errorf("persist index: %w", err)
		}
	}

	var corpus strings.Builder
	for _, p := range pages {
		corpus.WriteString(p.Text)
		corpus.WriteString("\n")
	}
	summary, err = s.summarizer.Summarize(corpus.String(), s.summaryMaxSentences)
	if err != nil {
		return "", false, fmt.Errorf("summarize corpus: %w", err)
	}
	return summary, true, nil
}

// Query embeds the query and returns the topK most similar passages ranked
// by descending similarity. topK <= 0 uses the configured default.
func (s *Service) Query(query string, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 {
		topK = s.topK
	}
	vec, err := s.embedder.Embed(query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	results, err := s.store.Search(vec, topK)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	return results, nil
}

// DocumentSearch surfaces the top result as the likely source document and
// the remaining results, deduplicated by source and excluding the main one,
// as secondary candidates. Returns nil when there are no results.
func (s *Service) DocumentSearch(results []domain.SearchResult) *domain.DocumentSearchResult {
	if len(results) == 0 {
		return nil
	}
	main := domain.Candidate{Source: results[0].Passage.Source, Page: results[0].Passage.Page}
	seen := map[string]struct{}{}
	var subs []domain.Candidate
	for _, r := range results[1:] {
		src := r.Passage.Source
		if _, dup := seen[src]; dup {
			continue
		}
		seen[src] = struct{}{}
		if src == main.Source {
			continue
		}
		subs = append(subs, domain.Candidate{Source: src, Page: r.Passage.Page})
	}
	return &domain.DocumentSearchResult{Main: main, SubCandidates: subs}
}

// Contact synthesizes a natural-language answer from the retrieved passages
// and collects the cited sources in first-seen rank order. Returns nil when
// there are no results.
func (s *Service) Contact(ctx context.Context, query string, results []domain.SearchResult) (*domain.ContactResult, error) {
	if len(results) == 0 {
		return nil, nil
	}
	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Passage.Text
	}
	answer, err := s.llm.Complete(ctx, fmt.Sprintf(answerPrompt, strings.Join(texts, "\n\n"), query))
	if err != nil {
		return nil, fmt.Errorf("synthesize answer: %w", err)
	}

	seen := map[string]struct{}{}
	var sources []string
	for _, r := range results {
		src := r.Passage.Source
		if _, dup := seen[src]; dup {
			continue
		}
		seen[src] = struct{}{}
		sources = append(sources, src)
	}
	return &domain.ContactResult{Answer: answer, Sources: sources}, nil
}
