package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"docsearch/internal/domain"
	"docsearch/internal/session"
)

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	headerStyle        = lipgloss.NewStyle().Bold(true)
	modeStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	userStyle          = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	assistantStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	mainSourceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	sourceStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

const (
	greeting = "This assistant answers questions about the indexed document corpus. " +
		"Choose an answer mode (tab to switch), then ask a question."
	mainMessage        = "The information on this topic is most likely found in the following file:"
	subMessage         = "Other candidate files:"
	sourcesMessage     = "Sources"
	pageUnavailable    = "page number unavailable"
	documentSearchHint = "document search: \"meeting minutes from the December marketing review\""
	contactHint        = "contact: \"tell me about the premium plan in detail\""
)

// renderTranscript renders the full conversation history. It is a pure
// function of the turns: the whole scrollback is rebuilt after every turn.
func renderTranscript(turns []session.Turn) string {
	var b strings.Builder
	b.WriteString(assistantStyle.Render("Assistant"))
	b.WriteString("\n")
	b.WriteString(greeting)
	b.WriteString("\n")
	b.WriteString(sourceStyle.Render("  " + documentSearchHint))
	b.WriteString("\n")
	b.WriteString(sourceStyle.Render("  " + contactHint))
	b.WriteString("\n")
	for _, t := range turns {
		b.WriteString("\n")
		b.WriteString(renderTurn(t))
		b.WriteString("\n")
	}
	return b.String()
}

func renderTurn(t session.Turn) string {
	if t.Role == session.RoleUser {
		return userStyle.Render("You") + "\n" + t.Text
	}
	body := renderAssistantBody(t)
	return assistantStyle.Render("Assistant") + "\n" + body
}

func renderAssistantBody(t session.Turn) string {
	switch {
	case t.DocumentSearch != nil:
		return renderDocumentSearch(t.DocumentSearch)
	case t.Contact != nil:
		return renderContact(t.Contact)
	case t.Err:
		return errorStyle.Render(t.Text)
	default:
		return t.Text
	}
}

func renderDocumentSearch(r *domain.DocumentSearchResult) string {
	var b strings.Builder
	b.WriteString(mainMessage)
	b.WriteString("\n")
	b.WriteString(mainSourceStyle.Render("  " + formatCandidate(r.Main)))
	if len(r.SubCandidates) > 0 {
		b.WriteString("\n")
		b.WriteString(subMessage)
		for _, c := range r.SubCandidates {
			b.WriteString("\n")
			b.WriteString(sourceStyle.Render("  " + formatCandidate(c)))
		}
	}
	return b.String()
}

func renderContact(r *domain.ContactResult) string {
	var b strings.Builder
	b.WriteString(r.Answer)
	if len(r.Sources) > 0 {
		b.WriteString("\n")
		b.WriteString(assistantStyle.Render(sourcesMessage))
		for _, src := range r.Sources {
			b.WriteString("\n")
			b.WriteString(sourceStyle.Render("  " + src))
		}
	}
	return b.String()
}

// formatCandidate renders a source with its one-based page number, or a
// fallback label when the loader supplied none.
func formatCandidate(c domain.Candidate) string {
	if c.Page == nil {
		return fmt.Sprintf("%s (%s)", c.Source, pageUnavailable)
	}
	return fmt.Sprintf("%s (p.%d)", c.Source, *c.Page+1)
}
