package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tileblast/internal/core"
)

// difficultyOption is one entry of the difficulty picker.
type difficultyOption struct {
	Name string
	Hint string
}

var difficultyOptions = []difficultyOption{
	{Name: "easy", Hint: "3 colours, extra moves"},
	{Name: "normal", Hint: "4 colours"},
	{Name: "hard", Hint: "all colours, fewer moves, higher target"},
}

// DifficultyModel lets users choose a difficulty preset before a game.
type DifficultyModel struct {
	title     string
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selected  string
	quitting  bool
	back      bool
}

// NewDifficultyModel creates a difficulty picker for the given game title.
// The cursor starts on "normal".
func NewDifficultyModel(title string, width, height int) DifficultyModel {
	return DifficultyModel{
		title:     title,
		cursor:    1,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(difficultyOptions)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.selected = difficultyOptions[m.cursor].Name
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the picker.
func (m DifficultyModel) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{
		"",
		centerText(menuTitleStyle.Render(m.title), m.width),
		"",
		centerText(menuHintStyle.Render("Select difficulty"), m.width),
		"",
	}
	for i, opt := range difficultyOptions {
		line := fmt.Sprintf("  %-7s %s", opt.Name, opt.Hint)
		if i == m.cursor {
			line = menuSelectedStyle.Render(fmt.Sprintf("> %-7s %s", opt.Name, opt.Hint))
		}
		lines = append(lines, centerText(line, m.width))
	}
	lines = append(lines, "",
		centerText(menuHintStyle.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Selected returns the chosen preset name, or "" while still choosing.
func (m DifficultyModel) Selected() string {
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}

// RunDifficultySelector runs the picker and returns the chosen preset.
// An empty name means the user backed out or quit.
func RunDifficultySelector(title string, cfg core.RuntimeConfig) (string, error) {
	model := NewDifficultyModel(title, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(DifficultyModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return "", nil
	}
	return m.Selected(), nil
}
