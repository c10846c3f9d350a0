package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tileblast/internal/games/tileblast/session"
	"github.com/vovakirdan/tileblast/internal/registry"
	"github.com/vovakirdan/tileblast/internal/storage"
)

const (
	scoreLimit      = 100 // rows loaded per mode
	scoreboardChrom = 10  // lines used by title, tabs, stats, detail and help
)

var (
	sbTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sbActiveTab   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	sbInactiveTab = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	sbBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	sbWinStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.PrevMode, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.NextMode, k.PrevMode}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextMode: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next mode")),
		PrevMode: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev mode")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows stored runs per mode in a table, with aggregate
// stats and the run id of the highlighted row.
type ScoreboardModel struct {
	modes     []registry.GameInfo
	mode      int
	store     *storage.Store
	entries   []storage.ScoreEntry
	stats     storage.ModeStats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = newScoreTable(width, height)
	m.reload()
	return m
}

// newScoreTable sizes the columns to the terminal. The result column takes
// whatever width is left.
func newScoreTable(width, height int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 7},
		{Title: "Moves", Width: 6},
		{Title: "Result", Width: 12},
		{Title: "Date", Width: 12},
	}
	fixed := 0
	for _, c := range columns {
		fixed += c.Width + 2 // cell padding
	}
	if spare := width - 4 - fixed; spare > 0 {
		columns[3].Width += min(spare, 14)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-scoreboardChrom, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// currentMode returns the id of the mode being shown, "" if none exist.
func (m ScoreboardModel) currentMode() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.mode].ID
}

// reload fetches entries and stats of the current mode.
func (m *ScoreboardModel) reload() {
	m.entries, m.stats, m.loadErr = nil, storage.ModeStats{}, nil
	if mode := m.currentMode(); m.store != nil && mode != "" {
		m.entries, m.loadErr = m.store.TopScores(mode, scoreLimit)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.Stats(mode, session.StatusGoalReached.String())
		}
	}
	m.table.SetRows(scoreRows(m.entries))
	m.table.GotoTop()
}

func scoreRows(entries []storage.ScoreEntry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(e.Score),
			strconv.Itoa(e.MovesUsed),
			e.Status,
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// switchMode moves the tab selection by delta, wrapping around.
func (m *ScoreboardModel) switchMode(delta int) {
	if len(m.modes) == 0 {
		return
	}
	m.mode = (m.mode + delta + len(m.modes)) % len(m.modes)
	m.reload()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			m.switchMode(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.switchMode(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = newScoreTable(msg.Width, msg.Height)
		m.table.SetRows(scoreRows(m.entries))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	lines := []string{
		"",
		centerText(sbTitleStyle.Render("HIGH SCORES"), m.width),
		centerText(m.tabs(), m.width),
		centerText(m.statsLine(), m.width),
		"",
		centerText(sbBoxStyle.Render(m.body()), m.width),
		centerText(m.detailLine(), m.width),
		"",
		m.help.View(m.keys),
	}
	return strings.Join(lines, "\n")
}

func (m ScoreboardModel) tabs() string {
	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.mode {
			tabs[i] = sbActiveTab.Render(g.Title)
		} else {
			tabs[i] = sbInactiveTab.Render(g.Title)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(line) > m.width && len(m.modes) > 0 {
		return sbActiveTab.Render(fmt.Sprintf("< %s >", m.modes[m.mode].Title))
	}
	return line
}

func (m ScoreboardModel) statsLine() string {
	if m.stats.Runs == 0 {
		return ""
	}
	return sbMutedStyle.Render(fmt.Sprintf("Runs: %d  Best: %d  Avg: %.1f  Wins: %d",
		m.stats.Runs, m.stats.Best, m.stats.Average, m.stats.Wins))
}

func (m ScoreboardModel) body() string {
	switch {
	case m.store == nil:
		return sbMutedStyle.Render("Scores are unavailable: no database.")
	case m.loadErr != nil:
		return sbMutedStyle.Render("Cannot load scores: " + m.loadErr.Error())
	case len(m.entries) == 0:
		return sbMutedStyle.Italic(true).Padding(1, 4).Render("No scores recorded yet.\nFinish a run to set a high score!")
	}
	return m.table.View()
}

// detailLine shows the run id of the highlighted row.
func (m ScoreboardModel) detailLine() string {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entries) {
		return ""
	}
	e := m.entries[i]
	style := sbMutedStyle
	if e.Status == session.StatusGoalReached.String() {
		style = sbWinStyle
	}
	return style.Render(fmt.Sprintf("run %s  %s", e.RunID, e.CreatedAt.Format("2006-01-02 15:04:05")))
}

// Mode returns the id of the mode being shown.
func (m ScoreboardModel) Mode() string {
	return m.currentMode()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
