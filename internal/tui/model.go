package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"docsearch/internal/session"
)

// Model is the Bubble Tea model for the chat interface. Queries run
// synchronously inside Update: one user, one in-flight query at a time.
type Model struct {
	session  *session.Session
	input    textinput.Model
	viewport viewport.Model
	status   string
	ready    bool
}

// New creates a new chat model around an existing session.
func New(sess *session.Session, status string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{session: sess, input: ti, viewport: vp, status: status}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header + status + input frame + spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-th)
		m.viewport.SetContent(renderTranscript(m.session.Turns()))
		m.viewport.GotoBottom()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "tab":
			m.session.ToggleMode()
			m.status = "Mode: " + modeLabel(m.session.Mode())
			return m, nil
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				turn := m.session.Ask(context.Background(), q)
				if turn.Err {
					m.status = turn.Text
				} else {
					m.status = fmt.Sprintf("Answered in %s mode", modeLabel(m.session.Mode()))
				}
				m.input.Reset()
				m.viewport.SetContent(renderTranscript(m.session.Turns()))
				m.viewport.GotoBottom()
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout: header, transcript, input, status.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("Document Search") + "  " +
		modeStyle.Render("mode: "+modeLabel(m.session.Mode())+" (tab to switch)")
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + transcript + "\n" + input + "\n" + status
}

func modeLabel(m session.Mode) string {
	if m == session.ModeContact {
		return "contact"
	}
	return "document search"
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
