package agencylist

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/foiadesk/foiadesk/internal/api"
	"github.com/foiadesk/foiadesk/internal/keys"
	"github.com/foiadesk/foiadesk/internal/model"
	"github.com/foiadesk/foiadesk/internal/pager"
	"github.com/foiadesk/foiadesk/internal/theme"
)

// LoadedMsg carries one fetched page of agencies.
type LoadedMsg struct {
	Token uint64
	Items []model.Agency
	Total int
	Err   error
}

// jurisdictionCycle is the order the f key walks through.
var jurisdictionCycle = []string{"", "federal", "state", "local"}

// Model is the agency directory view.
type Model struct {
	client      *api.Client
	keys        *keys.KeyMap
	pager       *pager.Pager[model.Agency]
	cursor      int
	jurIdx      int
	searchMode  bool
	searchInput textinput.Model
	errMsg      string
	width       int
	height      int
}

// New creates the agency directory view.
func New(client *api.Client, k *keys.KeyMap, pageSize, width, height int) Model {
	si := textinput.New()
	si.Placeholder = "search agencies..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		client:      client,
		keys:        k,
		pager:       pager.New[model.Agency](pageSize),
		searchInput: si,
		width:       width,
		height:      height,
	}
}

func (m Model) Init() tea.Cmd {
	return m.Load()
}

// Load fetches the current pager page.
func (m Model) Load() tea.Cmd {
	token := m.pager.Begin()
	filter := api.AgencyFilter{
		Jurisdiction: m.pager.Filter("jurisdiction"),
		Query:        m.pager.Filter("q"),
		Page:         m.pager.Page(),
		PageSize:     m.pager.PageSize(),
	}
	c := m.client
	return func() tea.Msg {
		page, err := c.ListAgencies(context.Background(), filter)
		if err != nil {
			return LoadedMsg{Token: token, Err: err}
		}
		return LoadedMsg{Token: token, Items: page.Items, Total: page.Total}
	}
}

// Update handles messages for the agency view.
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

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		if m.pager.SetFilter("q", m.searchInput.Value()) {
			m.cursor = 0
			return m, m.Load()
		}
		return m, nil
	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		if m.pager.SetFilter("q", "") {
			m.cursor = 0
			return m, m.Load()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
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
	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()
	case key.Matches(msg, m.keys.CycleFilter):
		m.jurIdx = (m.jurIdx + 1) % len(jurisdictionCycle)
		if m.pager.SetFilter("jurisdiction", jurisdictionCycle[m.jurIdx]) {
			m.cursor = 0
			return m, m.Load()
		}
	case key.Matches(msg, m.keys.ClearFilter):
		m.jurIdx = 0
		if m.pager.ClearFilters() {
			m.cursor = 0
			return m, m.Load()
		}
	}

	return m, nil
}

// Searching reports whether the search input has focus.
func (m Model) Searching() bool {
	return m.searchMode
}

// View renders the agency directory.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.renderRows())
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
		return style.Render("No agencies found.")
	}

	rows := make([]string, 0, len(items)+1)
	rows = append(rows, theme.HelpStyle.Render(fmt.Sprintf(
		"page %d/%d · %d agencies",
		m.pager.Page(), m.pager.TotalPages(), m.pager.Total())))

	for i, a := range items {
		line := fmt.Sprintf("%-8s %-40s %3d requests  avg %.1fd",
			a.Jurisdiction, a.Name, a.RequestCount, a.AvgResponseDays)
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
	m.searchInput.Width = width - 4
}
