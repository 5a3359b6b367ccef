package session

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsearch/internal/domain"
)

type stubAsker struct {
	results  []domain.SearchResult
	queryErr error
	contact  *domain.ContactResult
	llmErr   error
}

func (s *stubAsker) Query(query string, topK int) ([]domain.SearchResult, error) {
	return s.results, s.queryErr
}

func (s *stubAsker) DocumentSearch(results []domain.SearchResult) *domain.DocumentSearchResult {
	if len(results) == 0 {
		return nil
	}
	return &domain.DocumentSearchResult{Main: domain.Candidate{Source: results[0].Passage.Source}}
}

func (s *stubAsker) Contact(ctx context.Context, query string, results []domain.SearchResult) (*domain.ContactResult, error) {
	if s.llmErr != nil {
		return nil, s.llmErr
	}
	if len(results) == 0 {
		return nil, nil
	}
	return s.contact, nil
}

func someResults() []domain.SearchResult {
	return []domain.SearchResult{{Passage: domain.Passage{Text: "p", Source: "policy.pdf"}}}
}

func TestAskAppendsUserThenAssistantTurn(t *testing.T) {
	sess := New(&stubAsker{results: someResults()}, "")

	turn := sess.Ask(context.Background(), "where is the premium plan described?")

	turns := sess.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, RoleUser, turns[0].Role)
	assert.Equal(t, "where is the premium plan described?", turns[0].Text)
	assert.Equal(t, RoleAssistant, turns[1].Role)
	require.NotNil(t, turn.DocumentSearch)
	assert.Equal(t, "policy.pdf", turn.DocumentSearch.Main.Source)
}

func TestAskContactMode(t *testing.T) {
	answer := &domain.ContactResult{Answer: "covered in full", Sources: []string{"policy.pdf"}}
	sess := New(&stubAsker{results: someResults(), contact: answer}, ModeContact)

	turn := sess.Ask(context.Background(), "what does the plan cover?")

	require.NotNil(t, turn.Contact)
	assert.Equal(t, "covered in full", turn.Contact.Answer)
	assert.Nil(t, turn.DocumentSearch)
}

func TestAskEmptyRetrievalYieldsNoInformationTurn(t *testing.T) {
	for _, mode := range []Mode{ModeDocumentSearch, ModeContact} {
		sess := New(&stubAsker{}, mode)

		turn := sess.Ask(context.Background(), "anything")

		assert.Equal(t, NoInformationMessage, turn.Text, "mode %s", mode)
		assert.False(t, turn.Err)
	}
}

func TestAskSurvivesExternalServiceFailure(t *testing.T) {
	asker := &stubAsker{queryErr: errors.New("embedding service unreachable")}
	sess := New(asker, ModeDocumentSearch)

	turn := sess.Ask(context.Background(), "first")

	assert.True(t, turn.Err)
	assert.Contains(t, turn.Text, "embedding service unreachable")

	// The session keeps running after a failed turn.
	asker.queryErr = nil
	asker.results = someResults()
	next := sess.Ask(context.Background(), "second")
	assert.False(t, next.Err)
	assert.Len(t, sess.Turns(), 4)
}

func TestAskContactErrorBecomesErrorTurn(t *testing.T) {
	sess := New(&stubAsker{results: someResults(), llmErr: errors.New("llm down")}, ModeContact)

	turn := sess.Ask(context.Background(), "q")

	assert.True(t, turn.Err)
	assert.Equal(t, RoleAssistant, turn.Role)
}

func TestToggleMode(t *testing.T) {
	sess := New(&stubAsker{}, ModeDocumentSearch)
	sess.ToggleMode()
	assert.Equal(t, ModeContact, sess.Mode())
	sess.ToggleMode()
	assert.Equal(t, ModeDocumentSearch, sess.Mode())
}

func TestHistoryGrowsUnbounded(t *testing.T) {
	sess := New(&stubAsker{results: someResults()}, ModeDocumentSearch)

	for i := 0; i < 5; i++ {
		sess.Ask(context.Background(), fmt.Sprintf("question %d", i))
	}

	turns := sess.Turns()
	require.Len(t, turns, 10)
	for i, turn := range turns {
		if i%2 == 0 {
			assert.Equal(t, RoleUser, turn.Role)
		} else {
			assert.Equal(t, RoleAssistant, turn.Role)
		}
	}
}
