// Copyright © 2025 Jake Rogers <code@supportoss.org>
package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/JakeTRogers/zoneMate/logger"
	"github.com/JakeTRogers/zoneMate/tz"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// pane identifies which pane has focus in the wizard UI.
type pane int

const (
	// selectedPane is the left pane showing the working set.
	selectedPane pane = iota
	// availablePane is the right pane showing catalog zones not yet selected.
	availablePane
)

// wizardModel is the Bubbletea model for the timezone wizard.
type wizardModel struct {
	selected  []string
	available []tz.TimezoneDescriptor

	focusedPane     pane
	selectedCursor  int
	availableCursor int

	searchMode  bool
	searchQuery string

	width  int
	height int

	quitting bool
	saved    bool
}

type wizardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	ShiftUp   key.Binding
	ShiftDown key.Binding
	Tab       key.Binding
	Space     key.Binding
	Delete    key.Binding
	Search    key.Binding
	Escape    key.Binding
	Quit      key.Binding
	Cancel    key.Binding
}

var wizardKeys = wizardKeyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	ShiftUp:   key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("⇧↑/K", "move up")),
	ShiftDown: key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("⇧↓/J", "move down")),
	Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	Space:     key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
	Delete:    key.NewBinding(key.WithKeys("backspace", "delete", "x"), key.WithHelp("del/x", "remove")),
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "save & quit")),
	Cancel:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit without saving")),
}

// Styles
var (
	focusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Padding(0, 1)

	unfocusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	popularStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	searchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Background(lipgloss.Color("236"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// availableZones lists the catalog zones not in selected. Without a query the popular zones come first;
// with one, only zones whose city, country or label match are listed.
func availableZones(query string, selected []string) []tz.TimezoneDescriptor {
	if strings.TrimSpace(query) != "" {
		return tz.Search(query, selected)
	}
	zones := tz.Popular(selected)
	for _, d := range tz.All() {
		if !slices.Contains(selected, d.Identifier) && !slices.ContainsFunc(zones, func(p tz.TimezoneDescriptor) bool {
			return p.Identifier == d.Identifier
		}) {
			zones = append(zones, d)
		}
	}
	return zones
}

// initWizardModel creates a new wizard model.
func initWizardModel(currentTimezones []string) wizardModel {
	m := wizardModel{
		selected:    append([]string{}, currentTimezones...),
		focusedPane: availablePane,
		width:       80,
		height:      24,
	}
	m.refresh()
	return m
}

// refresh rebuilds the available pane and keeps both cursors in range.
func (m *wizardModel) refresh() {
	m.available = availableZones(m.searchQuery, m.selected)
	m.availableCursor = clamp(m.availableCursor, len(m.available))
	m.selectedCursor = clamp(m.selectedCursor, len(m.selected))
}

func clamp(cursor, length int) int {
	if cursor >= length {
		cursor = length - 1
	}
	return max(cursor, 0)
}

// Init implements tea.Model
func (m wizardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, wizardKeys.Cancel) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.searchMode {
			return m.handleSearchInput(msg)
		}

		switch {
		case key.Matches(msg, wizardKeys.Quit):
			m.quitting = true
			m.saved = true
			return m, tea.Quit
		case key.Matches(msg, wizardKeys.Tab):
			if m.focusedPane == selectedPane {
				m.focusedPane = availablePane
			} else {
				m.focusedPane = selectedPane
			}
		case key.Matches(msg, wizardKeys.Search):
			m.searchMode = true
			m.focusedPane = availablePane
		case key.Matches(msg, wizardKeys.Escape):
			m.searchQuery = ""
			m.refresh()
		case key.Matches(msg, wizardKeys.Up):
			m.moveCursor(-1)
		case key.Matches(msg, wizardKeys.Down):
			m.moveCursor(1)
		case key.Matches(msg, wizardKeys.ShiftUp):
			if m.focusedPane == selectedPane {
				m.moveSelected(-1)
			}
		case key.Matches(msg, wizardKeys.ShiftDown):
			if m.focusedPane == selectedPane {
				m.moveSelected(1)
			}
		case key.Matches(msg, wizardKeys.Space):
			m.toggleSelection()
		case key.Matches(msg, wizardKeys.Delete):
			if m.focusedPane == selectedPane {
				m.removeSelected()
			}
		}
	}

	return m, nil
}

// handleSearchInput edits the query while search mode is active. Enter or esc leaves search mode and
// keeps the filtered list.
func (m wizardModel) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.searchMode = false
	case tea.KeyBackspace:
		if r := []rune(m.searchQuery); len(r) > 0 {
			m.searchQuery = string(r[:len(r)-1])
			m.refresh()
		}
	case tea.KeySpace:
		m.searchQuery += " "
		m.refresh()
	case tea.KeyRunes:
		m.searchQuery += string(msg.Runes)
		m.availableCursor = 0
		m.refresh()
	}
	return m, nil
}

func (m *wizardModel) moveCursor(delta int) {
	if m.focusedPane == selectedPane {
		m.selectedCursor = clamp(m.selectedCursor+delta, len(m.selected))
		return
	}
	m.availableCursor = clamp(m.availableCursor+delta, len(m.available))
}

// moveSelected swaps the zone under the cursor with its neighbour.
func (m *wizardModel) moveSelected(delta int) {
	to := m.selectedCursor + delta
	if len(m.selected) == 0 || to < 0 || to >= len(m.selected) {
		return
	}
	m.selected[m.selectedCursor], m.selected[to] = m.selected[to], m.selected[m.selectedCursor]
	m.selectedCursor = to
}

// toggleSelection adds the highlighted available zone or removes the highlighted selected one.
func (m *wizardModel) toggleSelection() {
	if m.focusedPane == selectedPane {
		m.removeSelected()
		return
	}
	if len(m.available) == 0 {
		return
	}
	m.selected = append(m.selected, m.available[m.availableCursor].Identifier)
	m.refresh()
}

func (m *wizardModel) removeSelected() {
	if len(m.selected) == 0 {
		return
	}
	m.removeFromSelected(m.selected[m.selectedCursor])
}

func (m *wizardModel) removeFromSelected(id string) {
	m.selected = slices.DeleteFunc(m.selected, func(s string) bool { return s == id })
	m.refresh()
}

// View implements tea.Model
func (m wizardModel) View() string {
	if m.quitting {
		return ""
	}
	paneWidth := max(20, (m.width-6)/2)
	paneHeight := max(5, m.height-6)

	left := m.renderSelectedPane(paneWidth, paneHeight)
	right := m.renderAvailablePane(paneWidth, paneHeight)

	leftStyle, rightStyle := unfocusedBorderStyle, unfocusedBorderStyle
	if m.focusedPane == selectedPane {
		leftStyle = focusedBorderStyle
	} else {
		rightStyle = focusedBorderStyle
	}
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		leftStyle.Width(paneWidth).Height(paneHeight).Render(left),
		rightStyle.Width(paneWidth).Height(paneHeight).Render(right),
	)
	return lipgloss.JoinVertical(lipgloss.Left, panes, m.renderHelp())
}

func (m wizardModel) renderSelectedPane(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Selected (%d)", len(m.selected))))
	b.WriteString("\n")
	if len(m.selected) == 0 {
		b.WriteString(dimStyle.Render("nothing selected yet"))
		return b.String()
	}
	start, end := visibleRange(m.selectedCursor, len(m.selected), height-2)
	for i := start; i < end; i++ {
		d := tz.Describe(m.selected[i])
		line := truncate(fmt.Sprintf("%d. %s %s", i+1, d.City, dimStyle.Render(d.Identifier)), width)
		if i == m.selectedCursor && m.focusedPane == selectedPane {
			line = cursorStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m wizardModel) renderAvailablePane(width, height int) string {
	var b strings.Builder
	title := "Available"
	if m.searchQuery != "" || m.searchMode {
		title = "Search: " + searchStyle.Render(m.searchQuery+cursorIf(m.searchMode))
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	if len(m.available) == 0 {
		b.WriteString(dimStyle.Render("no matching timezones"))
		return b.String()
	}
	popular := tz.Popular(nil)
	start, end := visibleRange(m.availableCursor, len(m.available), height-2)
	for i := start; i < end; i++ {
		d := m.available[i]
		line := fmt.Sprintf("%s, %s (%s)", d.City, d.Country, d.NominalOffset)
		if slices.ContainsFunc(popular, func(p tz.TimezoneDescriptor) bool { return p.Identifier == d.Identifier }) {
			line += popularStyle.Render(" ★")
		}
		line = truncate(line, width)
		if i == m.availableCursor && m.focusedPane == availablePane {
			line = cursorStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func cursorIf(on bool) string {
	if on {
		return "▏"
	}
	return ""
}

// visibleRange returns the visible [start, end) slice of a list of length n that keeps cursor on screen.
func visibleRange(cursor, n, rows int) (int, int) {
	rows = max(rows, 1)
	start := 0
	if cursor >= rows {
		start = cursor - rows + 1
	}
	return start, min(n, start+rows)
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width || width < 2 {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r)) > width-1 {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

func (m wizardModel) renderHelp() string {
	if m.searchMode {
		return helpStyle.Render("type to filter by city, country or name • Enter/Esc: done • ctrl+c: quit without saving")
	}
	parts := []string{"↑↓: navigate", "Tab: switch pane", "/: search", "q: save & quit", "ctrl+c: cancel"}
	if m.focusedPane == selectedPane {
		parts = append([]string{"⇧↑↓/JK: reorder", "Space/Del: remove"}, parts...)
	} else {
		parts = append([]string{"Space/Enter: add"}, parts...)
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}

// runWizard starts the interactive wizard on currentTimezones. It returns the chosen identifiers in order,
// or nil if the user cancelled.
func runWizard(currentTimezones []string) ([]string, error) {
	l.Warn().Msg("disabling logging for interactive wizard")
	logger.Disable()

	p := tea.NewProgram(initWizardModel(currentTimezones), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, errors.Wrap(err, "error running wizard")
	}
	m, ok := finalModel.(wizardModel)
	if !ok {
		return nil, errors.Errorf("unexpected model type: %T", finalModel)
	}
	if !m.saved {
		return nil, nil
	}
	return m.selected, nil
}

// NewWizardCmd creates and returns a new wizard command.
// Each call returns a fresh instance for test isolation.
func NewWizardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Interactive timezone selector",
		Long: `Launch an interactive wizard to choose and reorder the saved timezones.

The wizard displays two panes:
  - Left pane: your selected timezones, in display order
  - Right pane: the timezone catalog, popular zones first (★)

Navigation:
  - Tab: switch between panes
  - ↑/↓ or j/k: move up/down
  - Space/Enter: add the highlighted zone, or remove it in the left pane
  - Shift+↑/↓ or J/K: reorder selected timezones
  - Del/Backspace/x: remove selected timezone
  - /: search by city, country or name (accents are ignored)
  - q: save and quit
  - ctrl+c: quit without saving

Example:
  $ zoneMate wizard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return handleWizardMode(cmd, userPrefs())
		},
	}
}
