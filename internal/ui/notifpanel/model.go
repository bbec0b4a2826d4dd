package notifpanel

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/foiadesk/foiadesk/internal/keys"
	"github.com/foiadesk/foiadesk/internal/notify"
	"github.com/foiadesk/foiadesk/internal/theme"
)

// RefreshedMsg is sent after the center has refetched from the server.
type RefreshedMsg struct {
	Err error
}

// OpenLinkMsg asks the root model to navigate to a notification's
// deep link ("requests/<id>", "videos/<id>").
type OpenLinkMsg struct {
	Link string
}

// readDoneMsg reports the outcome of a mark-read write. The optimistic
// local flip already happened, so an error is informational only.
type readDoneMsg struct {
	err error
}

// Model is the notification panel overlay.
type Model struct {
	center *notify.Center
	keys   *keys.KeyMap
	cursor int
	errMsg string
	width  int
	height int
}

// New creates the notification panel over a shared center.
func New(center *notify.Center, k *keys.KeyMap, width, height int) Model {
	return Model{center: center, keys: k, width: width, height: height}
}

func (m Model) Init() tea.Cmd {
	return m.Refresh()
}

// Refresh refetches the notification list from the server.
func (m Model) Refresh() tea.Cmd {
	c := m.center
	return func() tea.Msg {
		return RefreshedMsg{Err: c.Refresh(context.Background(), 50)}
	}
}

// Update handles messages for the notification panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshedMsg:
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
		} else {
			m.errMsg = ""
		}
		m.clampCursor()
		return m, nil

	case readDoneMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.center.Items())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.Refresh()

	case key.Matches(msg, m.keys.MarkRead):
		items := m.center.Items()
		if m.cursor >= len(items) {
			return m, nil
		}
		id := items[m.cursor].ID
		c := m.center
		return m, func() tea.Msg {
			return readDoneMsg{err: c.MarkRead(context.Background(), id)}
		}

	case key.Matches(msg, m.keys.MarkAllRead):
		c := m.center
		return m, func() tea.Msg {
			return readDoneMsg{err: c.MarkAllRead(context.Background())}
		}

	case key.Matches(msg, m.keys.Select):
		items := m.center.Items()
		if m.cursor >= len(items) {
			return m, nil
		}
		id := items[m.cursor].ID
		c := m.center
		return m, func() tea.Msg {
			link, err := c.Open(context.Background(), id)
			if err != nil || link == "" {
				return readDoneMsg{err: err}
			}
			return OpenLinkMsg{Link: link}
		}
	}

	return m, nil
}

func (m *Model) clampCursor() {
	if n := len(m.center.Items()); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the notification panel.
func (m Model) View() string {
	items := m.center.Items()

	title := "Notifications"
	if unread := m.center.Unread(); unread > 0 {
		title = lipgloss.JoinHorizontal(lipgloss.Top,
			"Notifications ", theme.BadgeStyle.Render(strconv.Itoa(unread)))
	}

	rows := []string{lipgloss.NewStyle().Bold(true).Render(title)}
	if m.errMsg != "" {
		rows = append(rows, theme.ErrorStyle.Render("refresh failed: "+m.errMsg))
	}

	if len(items) == 0 {
		rows = append(rows, theme.HelpStyle.Render("Nothing yet."))
	}

	for i, n := range items {
		marker := "●"
		line := marker + " " + theme.NotificationTypeStyle(n.Type).Render(n.Type) + " " + n.Message
		if n.Read {
			line = theme.HelpStyle.Render("○ " + n.Type + " " + n.Message)
		}
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		rows = append(rows, line)
	}

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
