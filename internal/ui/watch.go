package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lancast/internal/discovery"
)

// refreshInterval controls how often the device table is re-read from the
// engine. The engine keeps discovering in the background regardless.
const refreshInterval = time.Second

// DeviceLister is the read-side of the discovery engine consumed by the
// watch screen.
type DeviceLister interface {
	GetAll() []discovery.Device
	IsRunning() bool
}

// refreshMsg triggers a registry re-read.
type refreshMsg time.Time

// watchKeyMap defines key bindings for the watch screen
type watchKeyMap struct {
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Help, k.Quit},
	}
}

var watchKeys = watchKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
}

// WatchModel is the bubbletea model for the live device view.
type WatchModel struct {
	engine  DeviceLister
	spinner spinner.Model
	help    help.Model
	keys    watchKeyMap
	devices []discovery.Device
	width   int
}

// NewWatchModel creates the watch screen over a running engine.
func NewWatchModel(engine DeviceLister) WatchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(PrimaryColor)

	return WatchModel{
		engine:  engine,
		spinner: sp,
		help:    help.New(),
		keys:    watchKeys,
	}
}

// Init implements tea.Model.
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, scheduleRefresh())
}

func scheduleRefresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

// Update implements tea.Model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case refreshMsg:
		devices := m.engine.GetAll()
		sort.Slice(devices, func(i, j int) bool {
			if devices[i].Type != devices[j].Type {
				return devices[i].Type.String() < devices[j].Type.String()
			}
			return devices[i].Name < devices[j].Name
		})
		m.devices = devices
		return m, scheduleRefresh()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m WatchModel) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("lancast device watch"))
	b.WriteString("\n\n")

	if !m.engine.IsRunning() {
		b.WriteString(StatusStyle.Render("Discovery is stopped."))
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
		return b.String()
	}

	if len(m.devices) == 0 {
		b.WriteString(StatusStyle.Render(m.spinner.View() + " Listening for devices..."))
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
		return b.String()
	}

	b.WriteString(StatusStyle.Render(fmt.Sprintf("%d device(s) on the network", len(m.devices))))
	b.WriteString("\n\n")

	b.WriteString(HeaderRowStyle.Render(fmt.Sprintf("%-28s %-11s %-22s %s", "NAME", "TYPE", "ADDRESS", "LAST SEEN")))
	b.WriteString("\n")

	for _, d := range m.devices {
		age := time.Since(d.LastSeen).Truncate(time.Second)
		seen := fmt.Sprintf("%s ago", age)
		if age < time.Second {
			seen = "now"
		}

		seenStyle := FreshStyle
		if age > time.Minute {
			seenStyle = StaleStyle
		}

		row := fmt.Sprintf("%-28s %-11s %-22s %s",
			truncate(d.Name, 28), d.Type.String(), d.Addr(), seenStyle.Render(seen))
		b.WriteString(DeviceRowStyle.Render(row))
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// RunWatch runs the watch screen until the user quits.
func RunWatch(engine DeviceLister) error {
	p := tea.NewProgram(NewWatchModel(engine), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("watch UI failed: %w", err)
	}
	return nil
}
