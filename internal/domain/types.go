package domain

// Page is one unit of text extracted from a source document, with provenance.
type Page struct {
	Text   string
	Source string
	// Page is the zero-based page index within the source document,
	// or nil when the format carries no page numbering (e.g. DOCX).
	Page *int
}

// Passage is a bounded chunk of page text, the unit of retrieval.
// Source and Page are inherited unchanged from the parent page.
type Passage struct {
	Text   string
	Source string
	Page   *int
}

// SearchResult is a retrieved passage with its similarity score.
type SearchResult struct {
	Passage Passage
	Score   float64
}

// Candidate is a source document suggestion with an optional page index.
type Candidate struct {
	Source string
	Page   *int
}

// DocumentSearchResult points at the source document most likely to cover a
// query, with deduplicated secondary candidates in rank order.
type DocumentSearchResult struct {
	Main          Candidate
	SubCandidates []Candidate
}

// ContactResult is a synthesized answer with its cited sources, deduplicated
// in first-seen rank order.
type ContactResult struct {
	Answer  string
	Sources []string
}

// Loader reads every recognized document under a directory and returns its
// pages in order.
type Loader interface {
	Load(dir string) ([]Page, error)
}

// Splitter splits extracted pages into passages suitable for indexing.
type Splitter interface {
	Split(pages []Page) []Passage
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}
