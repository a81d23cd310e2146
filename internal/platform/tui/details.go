package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/crescent-arcade/internal/core"
	"github.com/vovakirdan/crescent-arcade/internal/registry"
)

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(palette[core.ColorOrchid])
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette[core.ColorRoyal]).
			Padding(1, 2)
)

// DetailsModel shows a game's descriptive record.
type DetailsModel struct {
	id        string
	info      registry.Info
	width     int
	height    int
	keyMapper *KeyMapper

	play bool
	back bool
}

// NewDetailsModel creates a details screen for a registered game.
func NewDetailsModel(id string, width, height int) (DetailsModel, error) {
	gi, err := registry.Describe(id)
	if err != nil {
		return DetailsModel{}, err
	}
	return DetailsModel{
		id:        id,
		info:      gi.Info,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}, nil
}

// Init initializes the model.
func (m DetailsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DetailsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionSelect:
			m.play = true
		case MenuActionBack, MenuActionDetails:
			m.back = true
		case MenuActionQuit:
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the record.
func (m DetailsModel) View() string {
	return RenderInfo(m.info, m.width)
}

// RenderInfo formats a descriptive record as a bordered card.
func RenderInfo(info registry.Info, width int) string {
	inner := 56
	if width > 0 && width-8 < inner {
		inner = core.Max(width-8, 20)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(info.Title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(inner).Render(info.Description))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("How to play"))
	b.WriteString("\n")
	for _, line := range info.Instructions {
		b.WriteString(lipgloss.NewStyle().Width(inner).Render("• " + line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Features"))
	b.WriteString("\n")
	for _, line := range info.Features {
		b.WriteString(lipgloss.NewStyle().Width(inner).Render("✦ " + line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter play • esc back • q quit"))

	card := cardStyle.Render(b.String())
	if width <= 0 {
		return card
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

// WantsPlay reports whether the user chose to start the game.
func (m DetailsModel) WantsPlay() bool {
	return m.play
}

// WantsBack reports whether the user went back to the menu.
func (m DetailsModel) WantsBack() bool {
	return m.back
}

// GameID returns the game being described.
func (m DetailsModel) GameID() string {
	return m.id
}
