package inboxview

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/foiadesk/foiadesk/internal/keys"
	"github.com/foiadesk/foiadesk/internal/mailbox"
	"github.com/foiadesk/foiadesk/internal/model"
	"github.com/foiadesk/foiadesk/internal/pager"
	"github.com/foiadesk/foiadesk/internal/theme"
)

// LoadedMsg carries one fetched page of mailbox messages.
type LoadedMsg struct {
	Token uint64
	Items []model.InboxMessage
	Total int
	Err   error
}

// BodyLoadedMsg carries a fetched message body.
type BodyLoadedMsg struct {
	ID   string
	Body string
	Err  error
}

// Model is the agency-response inbox view. When no mailbox is
// configured it renders a setup hint instead.
type Model struct {
	inbox   *mailbox.Inbox
	keys    *keys.KeyMap
	pager   *pager.Pager[model.InboxMessage]
	cursor  int
	reading bool
	body    viewport.Model
	errMsg  string
	width   int
	height  int
}

// New creates the inbox view. inbox may be nil when the mailbox is not
// configured.
func New(inbox *mailbox.Inbox, k *keys.KeyMap, pageSize, width, height int) Model {
	vp := viewport.New(width, height-2)
	return Model{
		inbox:  inbox,
		keys:   k,
		pager:  pager.New[model.InboxMessage](pageSize),
		body:   vp,
		width:  width,
		height: height,
	}
}

// Configured reports whether a mailbox is wired up.
func (m Model) Configured() bool {
	return m.inbox != nil
}

func (m Model) Init() tea.Cmd {
	return m.Load()
}

// Load fetches the current pager page from the mailbox.
func (m Model) Load() tea.Cmd {
	if m.inbox == nil {
		return nil
	}
	token := m.pager.Begin()
	page, pageSize := m.pager.Page(), m.pager.PageSize()
	in := m.inbox
	return func() tea.Msg {
		items, total, err := in.Fetch(context.Background(), page, pageSize)
		if err != nil {
			return LoadedMsg{Token: token, Err: err}
		}
		return LoadedMsg{Token: token, Items: items, Total: total}
	}
}

// Update handles messages for the inbox view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		if m.pager.Apply(msg.Token, msg.Items, msg.Total) {
			if n := len(m.pager.Items()); m.cursor >= n && n > 0 {
				m.cursor = n - 1
			}
		}
		return m, nil

	case BodyLoadedMsg:
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.reading = true
		m.body.SetContent(msg.Body)
		m.body.GotoTop()
		// Opening a message marks it seen on the server.
		in := m.inbox
		id := msg.ID
		return m, tea.Batch(
			func() tea.Msg {
				_ = in.MarkSeen(context.Background(), id)
				return nil
			},
			m.Load(),
		)

	case tea.KeyMsg:
		if m.reading {
			if key.Matches(msg, m.keys.Back) {
				m.reading = false
				return m, nil
			}
			var cmd tea.Cmd
			m.body, cmd = m.body.Update(msg)
			return m, cmd
		}
		return m.handleListKeys(msg)
	}

	return m, nil
}

func (m Model) handleListKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.pager.Items())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.NextPage):
		if m.pager.Next() {
			m.cursor = 0
			return m, m.Load()
		}
	case key.Matches(msg, m.keys.PrevPage):
		if m.pager.Prev() {
			m.cursor = 0
			return m, m.Load()
		}
	case key.Matches(msg, m.keys.Select):
		items := m.pager.Items()
		if m.cursor >= len(items) || m.inbox == nil {
			return m, nil
		}
		id := items[m.cursor].ID
		in := m.inbox
		return m, func() tea.Msg {
			body, err := in.Body(context.Background(), id)
			return BodyLoadedMsg{ID: id, Body: body, Err: err}
		}
	}

	return m, nil
}

// View renders the inbox.
func (m Model) View() string {
	if m.inbox == nil {
		style := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return style.Render(
			"No response mailbox configured.\n\n" +
				"Add a mailbox section to " + model.DefaultConfigPath() + ".",
		)
	}

	if m.reading {
		return theme.DetailPanelStyle.
			Width(m.width - 4).
			Render(m.body.View())
	}

	if m.errMsg != "" {
		banner := theme.ErrorStyle.Padding(0, 1).Render("error: " + m.errMsg)
		return lipgloss.JoinVertical(lipgloss.Left, banner, m.renderRows())
	}
	return m.renderRows()
}

func (m Model) renderRows() string {
	items := m.pager.Items()
	if len(items) == 0 {
		style := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return style.Render("No agency responses in the last 30 days.")
	}

	rows := make([]string, 0, len(items)+1)
	rows = append(rows, theme.HelpStyle.Render(fmt.Sprintf(
		"page %d/%d · %d messages",
		m.pager.Page(), m.pager.TotalPages(), m.pager.Total())))

	for i, msg := range items {
		marker := "●"
		if msg.Seen {
			marker = " "
		}
		tracking := ""
		if msg.TrackingNumber != "" {
			tracking = theme.RequestStatusStyle("acknowledged").Render(msg.TrackingNumber) + " "
		}
		line := fmt.Sprintf("%s %s  %s%s | %s",
			marker, msg.ReceivedAt.Format("Jan 02"), tracking, msg.From, msg.Subject)
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		rows = append(rows, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.body.Width = width - 8
	m.body.Height = height - 4
}
