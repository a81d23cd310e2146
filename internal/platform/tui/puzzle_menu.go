package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/crescent-arcade/internal/games/puzzle"
)

// PuzzleSizeModel lets users choose the Sliding Puzzle board size.
type PuzzleSizeModel struct {
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	size      int
	choosing  bool
	quitting  bool
	back      bool
}

// NewPuzzleSizeModel creates a new size selection model.
func NewPuzzleSizeModel(width, height int) PuzzleSizeModel {
	return PuzzleSizeModel{
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m PuzzleSizeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PuzzleSizeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m PuzzleSizeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(puzzle.Sizes)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.size = puzzle.Sizes[m.cursor]
	case MenuActionBack:
		m.back = true
	}

	return m, nil
}

// View renders the size selection.
func (m PuzzleSizeModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("S L I D I N G   P U Z Z L E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(subtitleStyle.Render("Select board size:"), m.width))
	b.WriteString("\n\n")

	for i, n := range puzzle.Sizes {
		label := fmt.Sprintf("%d×%d  (%d tiles)", n, n, n*n-1)
		b.WriteString(centerText(listLine(label, i == m.cursor), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

// Selected returns the chosen size, or 0 while still choosing.
func (m PuzzleSizeModel) Selected() int {
	if m.choosing {
		return 0
	}
	return m.size
}

// IsQuitting returns true if user wants to quit.
func (m PuzzleSizeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m PuzzleSizeModel) WantsBack() bool {
	return m.back
}
