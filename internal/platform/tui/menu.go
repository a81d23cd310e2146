package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/crescent-arcade/internal/core"
	"github.com/vovakirdan/crescent-arcade/internal/registry"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(palette[core.ColorGold])
	subtitleStyle = lipgloss.NewStyle().Foreground(palette[core.ColorPeriwinkle])
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(palette[core.ColorPaleGold])
	dimStyle      = lipgloss.NewStyle().Foreground(palette[core.ColorGray])
	errorStyle    = lipgloss.NewStyle().Foreground(palette[core.ColorCoral])
	okStyle       = lipgloss.NewStyle().Foreground(palette[core.ColorEmerald])
)

// menuKeys describes the menu bindings for the help bar.
type menuKeys struct {
	Move     key.Binding
	Play     key.Binding
	Details  key.Binding
	Feedback key.Binding
	Quit     key.Binding
}

func defaultMenuKeys() menuKeys {
	return menuKeys{
		Move:     key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "choose")),
		Play:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		Details:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "details")),
		Feedback: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "feedback")),
		Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (k menuKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Play, k.Details, k.Feedback, k.Quit}
}

func (k menuKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID string
	Title  string
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	help      help.Model
	keys      menuKeys

	quitting      bool
	selected      *MenuItem // set when the user picks a game
	wantsDetails  bool
	wantsFeedback bool
}

// NewMenuModel creates a new menu listing every registered game.
func NewMenuModel(width, height int) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title})
	}

	return MenuModel{
		items:     items,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
		keys:      defaultMenuKeys(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if item, ok := m.current(); ok {
			m.selected = &item
		}

	case MenuActionDetails:
		if _, ok := m.current(); ok {
			m.wantsDetails = true
		}

	case MenuActionFeedback:
		m.wantsFeedback = true
	}

	return m, nil
}

func (m MenuModel) current() (MenuItem, bool) {
	if len(m.items) == 0 {
		return MenuItem{}, false
	}
	return m.items[m.cursor], true
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("☾  C R E S C E N T   A R C A D E  ☾"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(subtitleStyle.Render("Select a game"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		b.WriteString(centerText(listLine(item.Title, i == m.cursor), m.width))
		b.WriteString("\n")
	}
	if len(m.items) == 0 {
		b.WriteString(centerText(dimStyle.Render("no games registered"), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Current returns the highlighted game id.
func (m MenuModel) Current() string {
	item, _ := m.current()
	return item.GameID
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsDetails reports whether the user asked for the highlighted game's details.
func (m MenuModel) WantsDetails() bool {
	return m.wantsDetails
}

// WantsFeedback reports whether the user opened the feedback form.
func (m MenuModel) WantsFeedback() bool {
	return m.wantsFeedback
}

// reset clears one-shot requests so the menu can be shown again.
func (m MenuModel) reset() MenuModel {
	m.selected = nil
	m.wantsDetails = false
	m.wantsFeedback = false
	return m
}

// centerText centers text within given width. Width is measured in cells
// so styled strings center correctly.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// listLine formats one selectable line with a cursor marker.
func listLine(label string, active bool) string {
	if active {
		return cursorStyle.Render(fmt.Sprintf("> %s", label))
	}
	return fmt.Sprintf("  %s", label)
}
