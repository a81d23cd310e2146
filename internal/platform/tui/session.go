package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/crescent-arcade/internal/core"
	"github.com/vovakirdan/crescent-arcade/internal/games/puzzle"
	"github.com/vovakirdan/crescent-arcade/internal/registry"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewDetails
	viewSize
	viewFeedback
	viewGame
)

// activeGame tracks the mounted game outside the Bubble Tea model so the
// host can dispose it when the program ends without the model noticing,
// for example when an SSH client disconnects.
type activeGame struct {
	mu   sync.Mutex
	game registry.Game
}

func (a *activeGame) set(g registry.Game) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.game = g
}

func (a *activeGame) dispose() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.game != nil {
		a.game.Dispose()
		a.game = nil
	}
}

// SessionModel manages the full arcade session flow: menu -> game -> menu.
// It is the top-level model for SSH sessions and the local menu.
type SessionModel struct {
	id      string
	source  string
	saver   FeedbackSaver
	config  core.RuntimeConfig
	current *activeGame

	view     sessionView
	menu     MenuModel
	details  DetailsModel
	size     PuzzleSizeModel
	feedback FeedbackModel
	game     Model
	gen      int
	quitting bool
}

// NewSessionModel creates a new session. source tags feedback sent from
// this session (e.g. "tui" or "ssh:alice"); saver may be nil.
func NewSessionModel(saver FeedbackSaver, cfg core.RuntimeConfig, source string) SessionModel {
	return SessionModel{
		id:      uuid.NewString(),
		source:  source,
		saver:   saver,
		config:  cfg,
		current: &activeGame{},
		menu:    NewMenuModel(cfg.ScreenW, cfg.ScreenH),
	}
}

// ID returns the unique session id.
func (m SessionModel) ID() string {
	return m.id
}

// Close disposes the mounted game, if any. Safe to call more than once.
func (m SessionModel) Close() {
	m.current.dispose()
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
		if m.view != viewMenu {
			next, _ := m.menu.Update(msg)
			m.menu = next.(MenuModel)
		}
	}

	switch m.view {
	case viewDetails:
		return m.updateDetails(msg)
	case viewSize:
		return m.updateSize(msg)
	case viewFeedback:
		return m.updateFeedback(msg)
	case viewGame:
		return m.updateGame(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.Selected() != nil:
		id := m.menu.Selected().GameID
		m.menu = m.menu.reset()
		return m.choose(id)

	case m.menu.WantsDetails():
		id := m.menu.Current()
		m.menu = m.menu.reset()
		details, err := NewDetailsModel(id, m.config.ScreenW, m.config.ScreenH)
		if err != nil {
			return m, nil
		}
		m.details = details
		m.view = viewDetails

	case m.menu.WantsFeedback():
		m.menu = m.menu.reset()
		m.feedback = NewFeedbackModel(m.saver, m.source, m.config.ScreenW)
		m.view = viewFeedback
		return m, m.feedback.Init()
	}

	return m, cmd
}

func (m SessionModel) updateDetails(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.details.Update(msg)
	m.details = next.(DetailsModel)

	switch {
	case m.details.WantsPlay():
		return m.choose(m.details.GameID())
	case m.details.WantsBack():
		m.view = viewMenu
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) updateSize(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.size.Update(msg)
	m.size = next.(PuzzleSizeModel)

	switch {
	case m.size.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.size.WantsBack():
		m.view = viewMenu
		return m, nil
	case m.size.Selected() > 0:
		return m.startGame(puzzle.NewSized(m.size.Selected()))
	}
	return m, cmd
}

func (m SessionModel) updateFeedback(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.feedback.Update(msg)
	m.feedback = next.(FeedbackModel)

	if m.feedback.WantsBack() {
		m.view = viewMenu
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(Model)

	switch {
	case m.game.quitting:
		m.current.set(nil)
		m.quitting = true
		return m, tea.Quit
	case m.game.WantsMenu():
		m.current.set(nil)
		m.view = viewMenu
		return m, nil
	}
	return m, cmd
}

// choose routes a picked game through the size selector when it has one.
func (m SessionModel) choose(id string) (tea.Model, tea.Cmd) {
	if id == "puzzle" {
		m.size = NewPuzzleSizeModel(m.config.ScreenW, m.config.ScreenH)
		m.view = viewSize
		return m, nil
	}

	game, err := registry.Create(id)
	if err != nil {
		m.view = viewMenu
		return m, nil
	}
	return m.startGame(game)
}

// startGame mounts a fresh game under a new tick generation.
func (m SessionModel) startGame(game registry.Game) (tea.Model, tea.Cmd) {
	m.current.dispose()

	m.gen++
	m.game = NewModel(game, m.config)
	m.game.gen = m.gen
	m.current.set(game)
	m.view = viewGame
	return m, m.game.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewDetails:
		return m.details.View()
	case viewSize:
		return m.size.View()
	case viewFeedback:
		return m.feedback.View()
	case viewGame:
		return m.game.View()
	}
	return m.menu.View()
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(saver FeedbackSaver, cfg core.RuntimeConfig) error {
	model := NewSessionModel(saver, cfg, "tui")

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	model.Close()
	return err
}
