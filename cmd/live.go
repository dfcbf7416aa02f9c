// Copyright © 2025 Jake Rogers <code@supportoss.org>
package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/JakeTRogers/zoneMate/prefs"
	"github.com/JakeTRogers/zoneMate/tz"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cast"
)

const cardWidth = 28

// tickMsg carries the single instant every card renders for one refresh.
type tickMsg time.Time

// configChangedMsg reports that the clock format may have changed. The board re-reads the store on arrival.
type configChangedMsg struct{}

type liveKeyMap struct {
	Toggle24Hour key.Binding
	Quit         key.Binding
}

var liveKeys = liveKeyMap{
	Toggle24Hour: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "12/24-hour")),
	Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(cardWidth)

	localCardStyle = cardStyle.BorderForeground(lipgloss.Color("63"))

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	businessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	otherDayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// liveModel is the Bubbletea model for the ticking clock board.
type liveModel struct {
	zones     []tz.TimezoneDescriptor
	local     string
	now       time.Time
	use24Hour bool
	window    tz.BusinessWindow
	store     prefs.KV
	width     int
	quitting  bool
}

func newLiveModel(store *prefs.Store, zones []tz.TimezoneDescriptor, includeLocal bool) liveModel {
	local := time.Local.String()
	if includeLocal {
		zones = addLocalTimezone(zones)
	}
	return liveModel{
		zones:     zones,
		local:     local,
		now:       nowFunc(),
		use24Hour: store.Use24Hour(),
		window:    store.BusinessWindow(),
		store:     store,
		width:     80,
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m liveModel) Init() tea.Cmd {
	return tick()
}

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.now = time.Time(msg)
		return m, tick()
	case configChangedMsg:
		m.use24Hour = cast.ToBool(m.store.Get(prefs.KeyUse24Hour, false))
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, liveKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, liveKeys.Toggle24Hour):
			m.use24Hour = !m.use24Hour
			if err := m.store.Set(prefs.KeyUse24Hour, m.use24Hour); err != nil {
				l.Error().Err(err).Send()
			}
		}
	}
	return m, nil
}

func (m liveModel) View() string {
	if m.quitting {
		return ""
	}
	perRow := max(1, m.width/(cardWidth+4))
	var rows []string
	for start := 0; start < len(m.zones); start += perRow {
		end := min(start+perRow, len(m.zones))
		cards := make([]string, 0, end-start)
		for _, z := range m.zones[start:end] {
			cards = append(cards, m.renderCard(z))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	help := helpStyle.Render(fmt.Sprintf("%s • %s • window %s",
		liveKeys.Toggle24Hour.Help().Key+" "+liveKeys.Toggle24Hour.Help().Desc,
		liveKeys.Quit.Help().Key+" "+liveKeys.Quit.Help().Desc,
		m.window))
	return lipgloss.JoinVertical(lipgloss.Left, append(rows, help)...)
}

// renderCard draws one zone at the model's current instant.
func (m liveModel) renderCard(z tz.TimezoneDescriptor) string {
	id := z.Identifier
	var b strings.Builder
	b.WriteString(titleStyle.UnsetMarginBottom().Render(z.City))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(z.Label))
	b.WriteString("\n")
	b.WriteString(clockStyle.Render(tz.FormatClock(m.now, id, m.use24Hour)))
	b.WriteString("\n")

	dateLine := tz.FormatDate(m.now, id)
	if tz.DayDifference(m.now, id, m.now, m.local) != 0 {
		dateLine = otherDayStyle.Render(dateLine)
	}
	b.WriteString(dateLine)
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s UTC%s", tz.ZoneAbbreviation(id, m.now), tz.FormatOffset(tz.OffsetFromUTC(id, m.now))))

	style := cardStyle
	if id == m.local {
		style = localCardStyle
		b.WriteString("\n" + dimStyle.Render("your timezone"))
	} else {
		b.WriteString("\n" + dimStyle.Render(tz.DescribeDifference(tz.OffsetDifference(m.local, id, m.now))))
	}
	if tz.IsBusinessHour(m.now, id, m.window) {
		b.WriteString("\n" + businessStyle.Render("● business hours"))
	}
	return style.Render(b.String())
}

// runLive shows the board until the user quits. Changes to the clock format in the config file are
// picked up while it runs.
func runLive(store *prefs.Store, zones []tz.TimezoneDescriptor, includeLocal bool) error {
	p := tea.NewProgram(newLiveModel(store, zones, includeLocal), tea.WithAltScreen())
	// Set notifies from inside Update when "t" is pressed, so Send must not block the event loop.
	store.Subscribe(prefs.KeyUse24Hour, func(any) {
		go p.Send(configChangedMsg{})
	})
	store.Watch()
	_, err := p.Run()
	return err
}
