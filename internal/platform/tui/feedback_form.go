package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/crescent-arcade/internal/storage"
)

// errNoStore is shown when the host runs without a feedback database.
var errNoStore = errors.New("feedback storage is unavailable")

// FeedbackSaver persists feedback entries. *storage.Store implements it.
type FeedbackSaver interface {
	SaveFeedback(f storage.Feedback) (storage.Feedback, error)
}

type feedbackField int

const (
	fieldKind feedbackField = iota
	fieldMessage
	fieldEmail
	fieldCount
)

// FeedbackModel is a small form: kind selector, message and optional email.
type FeedbackModel struct {
	saver   FeedbackSaver
	source  string
	kind    int
	message textarea.Model
	email   textinput.Model
	focus   feedbackField
	width   int

	err        error
	saved      *storage.Feedback
	back       bool
	standalone bool // true when closing the form should quit the program
}

// NewFeedbackModel creates the form. saver may be nil; submitting then
// reports that storage is unavailable.
func NewFeedbackModel(saver FeedbackSaver, source string, width int) FeedbackModel {
	ta := textarea.New()
	ta.Placeholder = "Tell us what you think..."
	ta.CharLimit = storage.MaxMessageLen
	ta.ShowLineNumbers = false
	ta.SetWidth(formWidth(width))
	ta.SetHeight(6)

	ti := textinput.New()
	ti.Placeholder = "you@example.com (optional)"
	ti.CharLimit = 254
	ti.Width = formWidth(width) - 2

	return FeedbackModel{
		saver:   saver,
		source:  source,
		message: ta,
		email:   ti,
		width:   width,
	}
}

func formWidth(width int) int {
	if width <= 0 || width > 70 {
		return 60
	}
	return max(width-10, 20)
}

// Init initializes the model.
func (m FeedbackModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages.
func (m FeedbackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.message.SetWidth(formWidth(msg.Width))
		m.email.Width = formWidth(msg.Width) - 2
		return m, nil

	case tea.KeyMsg:
		if m.saved != nil {
			return m.close()
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m.close()
		case "ctrl+s":
			m.submit()
			return m, nil
		case "tab":
			return m.setFocus((m.focus + 1) % fieldCount)
		case "shift+tab":
			return m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		}

		if m.focus == fieldKind {
			switch msg.String() {
			case "left", "h":
				m.kind = (m.kind + len(storage.Kinds) - 1) % len(storage.Kinds)
			case "right", "l", " ":
				m.kind = (m.kind + 1) % len(storage.Kinds)
			case "enter", "down":
				return m.setFocus(fieldMessage)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldMessage:
		m.message, cmd = m.message.Update(msg)
	case fieldEmail:
		m.email, cmd = m.email.Update(msg)
	}
	return m, cmd
}

func (m FeedbackModel) close() (tea.Model, tea.Cmd) {
	m.back = true
	if m.standalone {
		return m, tea.Quit
	}
	return m, nil
}

func (m FeedbackModel) setFocus(f feedbackField) (tea.Model, tea.Cmd) {
	m.focus = f
	m.message.Blur()
	m.email.Blur()

	var cmd tea.Cmd
	switch f {
	case fieldMessage:
		cmd = m.message.Focus()
	case fieldEmail:
		cmd = m.email.Focus()
	}
	return m, cmd
}

// submit validates and stores the entry, keeping the form open on error.
func (m *FeedbackModel) submit() {
	if m.saver == nil {
		m.err = errNoStore
		return
	}
	saved, err := m.saver.SaveFeedback(storage.Feedback{
		Kind:    storage.Kinds[m.kind],
		Message: m.message.Value(),
		Email:   m.email.Value(),
		Source:  m.source,
	})
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.saved = &saved
}

// View renders the form.
func (m FeedbackModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Send feedback"))
	b.WriteString("\n\n")

	if m.saved != nil {
		b.WriteString(okStyle.Render("Thank you! Your feedback was saved."))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("reference " + m.saved.Ref))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("press any key to return"))
		return b.String()
	}

	kindLine := make([]string, len(storage.Kinds))
	for i, k := range storage.Kinds {
		if i == m.kind {
			kindLine[i] = cursorStyle.Render("[" + k.Label() + "]")
		} else {
			kindLine[i] = dimStyle.Render(k.Label())
		}
	}
	b.WriteString(m.label(fieldKind, "Kind"))
	b.WriteString("  ")
	b.WriteString(strings.Join(kindLine, "  "))
	b.WriteString("\n\n")

	b.WriteString(m.label(fieldMessage, "Message"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d/%d", len([]rune(m.message.Value())), storage.MaxMessageLen)))
	b.WriteString("\n")
	b.WriteString(m.message.View())
	b.WriteString("\n\n")

	b.WriteString(m.label(fieldEmail, "Email"))
	b.WriteString("\n")
	b.WriteString(m.email.View())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("✗ " + m.err.Error()))
		b.WriteString("\n\n")
	}
	b.WriteString(dimStyle.Render("tab next field • ←/→ kind • ctrl+s send • esc back"))

	return b.String()
}

func (m FeedbackModel) label(f feedbackField, text string) string {
	if m.focus == f {
		return sectionStyle.Render("› " + text)
	}
	return subtitleStyle.Render("  " + text)
}

// Saved returns the stored entry after a successful submit.
func (m FeedbackModel) Saved() *storage.Feedback {
	return m.saved
}

// Err returns the last submit error.
func (m FeedbackModel) Err() error {
	return m.err
}

// WantsBack reports whether the form was closed.
func (m FeedbackModel) WantsBack() bool {
	return m.back
}

// RunFeedbackForm runs the form as a standalone program.
func RunFeedbackForm(saver FeedbackSaver, source string, width int) (*storage.Feedback, error) {
	model := NewFeedbackModel(saver, source, width)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(FeedbackModel)
	if !ok {
		return nil, nil
	}
	return m.Saved(), nil
}
