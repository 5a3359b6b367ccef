package session

import (
	"context"

	"docsearch/internal/domain"
)

// Mode selects how a query is answered.
type Mode string

const (
	// ModeDocumentSearch points the user at the source documents most
	// likely to cover the query.
	ModeDocumentSearch Mode = "document_search"
	// ModeContact synthesizes a natural-language answer with citations.
	ModeContact Mode = "contact"
)

// Role tags a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// NoInformationMessage is the defined result for a query that retrieved
// nothing.
const NoInformationMessage = "No relevant information was found in the indexed documents."

// Turn is one entry of the conversation history. Assistant turns carry
// exactly one of DocumentSearch, Contact, or plain Text (no-information
// notices and error notices); Err marks the latter as a failed turn.
type Turn struct {
	Role           Role
	Text           string
	DocumentSearch *domain.DocumentSearchResult
	Contact        *domain.ContactResult
	Err            bool
}

// Asker is the session-facing subset of the retrieval and synthesis service.
type Asker interface {
	Query(query string, topK int) ([]domain.SearchResult, error)
	DocumentSearch(results []domain.SearchResult) *domain.DocumentSearchResult
	Contact(ctx context.Context, query string, results []domain.SearchResult) (*domain.ContactResult, error)
}

// Session holds the mutable state of one conversation: the selected answer
// mode and the append-only turn history. History lives only in memory for
// the lifetime of the session and is never truncated.
type Session struct {
	svc   Asker
	mode  Mode
	turns []Turn
}

func New(svc Asker, mode Mode) *Session {
	if mode == "" {
		mode = ModeDocumentSearch
	}
	return &Session{svc: svc, mode: mode}
}

func (s *Session) Mode() Mode { return s.mode }

func (s *Session) SetMode(m Mode) { s.mode = m }

// ToggleMode switches between the two answer modes.
func (s *Session) ToggleMode() {
	if s.mode == ModeDocumentSearch {
		s.mode = ModeContact
	} else {
		s.mode = ModeDocumentSearch
	}
}

// Turns returns the conversation history in order.
func (s *Session) Turns() []Turn { return s.turns }

// Ask appends a user turn, answers it according to the current mode, appends
// the structured assistant turn and returns it. A failing external call
// becomes a visible error turn; the session itself keeps running.
func (s *Session) Ask(ctx context.Context, query string) Turn {
	s.turns = append(s.turns, Turn{Role: RoleUser, Text: query})

	results, err := s.svc.Query(query, 0)
	if err != nil {
		return s.push(errorTurn(err))
	}

	switch s.mode {
	case ModeContact:
		res, err := s.svc.Contact(ctx, query, results)
		if err != nil {
			return s.push(errorTurn(err))
		}
		if res == nil {
			return s.push(Turn{Role: RoleAssistant, Text: NoInformationMessage})
		}
		return s.push(Turn{Role: RoleAssistant, Contact: res})
	default:
		res := s.svc.DocumentSearch(results)
		if res == nil {
			return s.push(Turn{Role: RoleAssistant, Text: NoInformationMessage})
		}
		return s.push(Turn{Role: RoleAssistant, DocumentSearch: res})
	}
}

func (s *Session) push(t Turn) Turn {
	s.turns = append(s.turns, t)
	return t
}

func errorTurn(err error) Turn {
	return Turn{Role: RoleAssistant, Text: "The request could not be completed: " + err.Error(), Err: true}
}
