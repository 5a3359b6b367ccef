package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"docsearch/internal/domain"
	"docsearch/internal/session"
)

func intPtr(i int) *int { return &i }

func TestFormatCandidateWithPage(t *testing.T) {
	got := formatCandidate(domain.Candidate{Source: "policy.pdf", Page: intPtr(2)})

	assert.Equal(t, "policy.pdf (p.3)", got, "page indexes render one-based")
}

func TestFormatCandidateWithoutPage(t *testing.T) {
	got := formatCandidate(domain.Candidate{Source: "minutes.docx"})

	assert.Equal(t, "minutes.docx (page number unavailable)", got)
}

func TestRenderTranscriptIsPureOverTurns(t *testing.T) {
	turns := []session.Turn{
		{Role: session.RoleUser, Text: "where are the minutes?"},
		{Role: session.RoleAssistant, DocumentSearch: &domain.DocumentSearchResult{
			Main:          domain.Candidate{Source: "minutes.docx"},
			SubCandidates: []domain.Candidate{{Source: "policy.pdf", Page: intPtr(0)}},
		}},
	}

	first := renderTranscript(turns)
	second := renderTranscript(turns)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "where are the minutes?")
	assert.Contains(t, first, "minutes.docx (page number unavailable)")
	assert.Contains(t, first, "policy.pdf (p.1)")
	assert.Contains(t, first, subMessage)
}

func TestRenderDocumentSearchWithoutSubCandidates(t *testing.T) {
	out := renderDocumentSearch(&domain.DocumentSearchResult{
		Main: domain.Candidate{Source: "policy.pdf", Page: intPtr(1)},
	})

	assert.Contains(t, out, "policy.pdf (p.2)")
	assert.NotContains(t, out, subMessage)
}

func TestRenderContactWithSources(t *testing.T) {
	out := renderContact(&domain.ContactResult{
		Answer:  "The premium plan includes priority support.",
		Sources: []string{"a.docx", "b.docx"},
	})

	assert.Contains(t, out, "The premium plan includes priority support.")
	assert.Contains(t, out, sourcesMessage)
	assert.Contains(t, out, "a.docx")
	assert.Contains(t, out, "b.docx")
}

func TestRenderContactWithoutSourcesOmitsSection(t *testing.T) {
	out := renderContact(&domain.ContactResult{Answer: "no idea"})

	assert.NotContains(t, out, sourcesMessage)
}

func TestRenderErrorTurn(t *testing.T) {
	out := renderTurn(session.Turn{
		Role: session.RoleAssistant,
		Text: "The request could not be completed: llm down",
		Err:  true,
	})

	assert.True(t, strings.Contains(out, "llm down"))
}
