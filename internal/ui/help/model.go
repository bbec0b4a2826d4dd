// Package help renders the full-screen keyboard reference overlay.
package help

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/foiadesk/foiadesk/internal/keys"
	"github.com/foiadesk/foiadesk/internal/theme"
)

// section groups related bindings under one heading in the overlay.
type section struct {
	title    string
	bindings []key.Binding
}

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(k *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:   k,
		help:   h,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) sections() []section {
	k := m.keys
	return []section{
		{"Views", []key.Binding{
			k.Requests, k.Agencies, k.Videos, k.Inbox,
			k.Analytics, k.Audit, k.Notifications,
		}},
		{"Navigation", []key.Binding{
			k.Up, k.Down, k.NextPage, k.PrevPage, k.Select, k.Back,
		}},
		{"Filters and search", []key.Binding{
			k.Search, k.CycleFilter, k.ClearFilter, k.Refresh,
		}},
		{"Actions", []key.Binding{
			k.Submit, k.MarkRead, k.MarkAllRead,
		}},
	}
}

// View renders the grouped keyboard reference.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorBlue)

	keyStyle := lipgloss.NewStyle().
		Foreground(theme.ColorYellow).
		Width(10)

	blocks := []string{titleStyle.Render("Keyboard Shortcuts")}
	for _, s := range m.sections() {
		lines := []string{sectionStyle.Render(s.title)}
		for _, b := range s.bindings {
			h := b.Help()
			lines = append(lines, keyStyle.Render(h.Key)+theme.HelpStyle.Render(h.Desc))
		}
		blocks = append(blocks, lipgloss.JoinVertical(lipgloss.Left, lines...), "")
	}

	m.help.Width = m.width - 4
	footer := m.help.ShortHelpView([]key.Binding{m.keys.Help, m.keys.Quit})
	blocks = append(blocks, footer)

	content := lipgloss.JoinVertical(lipgloss.Left, blocks...)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(content)
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
