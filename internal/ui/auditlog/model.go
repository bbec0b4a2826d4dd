package auditlog

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/foiadesk/foiadesk/internal/api"
	"github.com/foiadesk/foiadesk/internal/keys"
	"github.com/foiadesk/foiadesk/internal/model"
	"github.com/foiadesk/foiadesk/internal/pager"
	"github.com/foiadesk/foiadesk/internal/theme"
)

// LoadedMsg carries one fetched page of audit entries.
type LoadedMsg struct {
	Token uint64
	Items []model.AuditEntry
	Total int
	Err   error
}

// Model is the read-only audit log view.
type Model struct {
	client *api.Client
	keys   *keys.KeyMap
	pager  *pager.Pager[model.AuditEntry]
	errMsg string
	width  int
	height int
}

// New creates the audit log view.
func New(client *api.Client, k *keys.KeyMap, pageSize, width, height int) Model {
	return Model{
		client: client,
		keys:   k,
		pager:  pager.New[model.AuditEntry](pageSize),
		width:  width,
		height: height,
	}
}

func (m Model) Init() tea.Cmd {
	return m.Load()
}

// Load fetches the current pager page.
func (m Model) Load() tea.Cmd {
	token := m.pager.Begin()
	filter := api.AuditFilter{
		Actor:    m.pager.Filter("actor"),
		Action:   m.pager.Filter("action"),
		Page:     m.pager.Page(),
		PageSize: m.pager.PageSize(),
	}
	c := m.client
	return func() tea.Msg {
		page, err := c.ListAuditLog(context.Background(), filter)
		if err != nil {
			return LoadedMsg{Token: token, Err: err}
		}
		return LoadedMsg{Token: token, Items: page.Items, Total: page.Total}
	}
}

// Update handles messages for the audit log view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.pager.Apply(msg.Token, msg.Items, msg.Total)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.NextPage):
			if m.pager.Next() {
				return m, m.Load()
			}
		case key.Matches(msg, m.keys.PrevPage):
			if m.pager.Prev() {
				return m, m.Load()
			}
		}
	}

	return m, nil
}

// View renders the audit log.
func (m Model) View() string {
	if m.errMsg != "" {
		return theme.ErrorStyle.Padding(0, 1).Render("error: " + m.errMsg)
	}

	items := m.pager.Items()
	if len(items) == 0 {
		style := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return style.Render("No audit entries.")
	}

	rows := make([]string, 0, len(items)+1)
	rows = append(rows, theme.HelpStyle.Render(fmt.Sprintf(
		"page %d/%d · %d entries",
		m.pager.Page(), m.pager.TotalPages(), m.pager.Total())))

	for _, e := range items {
		line := fmt.Sprintf("%s  %-20s %-24s %s/%s",
			e.CreatedAt.Format("2006-01-02 15:04"),
			e.Actor, e.Action, e.TargetType, e.TargetID)
		if e.Detail != "" {
			line += "  " + theme.HelpStyle.Render(e.Detail)
		}
		rows = append(rows, theme.ListItemStyle.Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
