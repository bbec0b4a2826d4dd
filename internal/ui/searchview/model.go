package searchview

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/foiadesk/foiadesk/internal/api"
	"github.com/foiadesk/foiadesk/internal/theme"
)

// ResultsMsg carries grouped search results for a query.
type ResultsMsg struct {
	Query   string
	Results *api.SearchResults
	Err     error
}

// CloseMsg asks the root model to dismiss the search overlay.
type CloseMsg struct{}

// Model is the global search overlay.
type Model struct {
	client  *api.Client
	input   textinput.Model
	query   string
	results *api.SearchResults
	errMsg  string
	width   int
	height  int
}

// New creates the search overlay.
func New(client *api.Client, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "search everything..."
	ti.Prompt = "/ "
	ti.Width = width - 4

	return Model{
		client: client,
		input:  ti,
		width:  width,
		height: height,
	}
}

// Focus prepares the overlay for input.
func (m *Model) Focus() tea.Cmd {
	m.input.Reset()
	m.query = ""
	m.results = nil
	m.errMsg = ""
	return m.input.Focus()
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the search overlay.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ResultsMsg:
		// Ignore results for anything but the latest query.
		if msg.Query != m.query {
			return m, nil
		}
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.results = msg.Results
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return CloseMsg{} }
		case "enter":
			query := m.input.Value()
			if query == "" {
				return m, nil
			}
			m.query = query
			c := m.client
			return m, func() tea.Msg {
				results, err := c.Search(context.Background(), query, 10)
				return ResultsMsg{Query: query, Results: results, Err: err}
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the search overlay.
func (m Model) View() string {
	rows := []string{m.input.View(), ""}

	switch {
	case m.errMsg != "":
		rows = append(rows, theme.ErrorStyle.Render("search failed: "+m.errMsg))
	case m.results == nil:
		rows = append(rows, theme.HelpStyle.Render("Type a query and press enter."))
	case m.results.Empty():
		rows = append(rows, theme.HelpStyle.Render(fmt.Sprintf("No results for %q.", m.query)))
	default:
		rows = append(rows, m.renderResults()...)
	}

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderResults() []string {
	section := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue)
	var rows []string

	if len(m.results.Requests) > 0 {
		rows = append(rows, section.Render("Requests"))
		for _, r := range m.results.Requests {
			rows = append(rows, theme.ListItemStyle.Render(
				theme.RequestStatusStyle(string(r.Status)).Render(string(r.Status))+" "+r.Subject))
		}
	}
	if len(m.results.Agencies) > 0 {
		rows = append(rows, section.Render("Agencies"))
		for _, a := range m.results.Agencies {
			rows = append(rows, theme.ListItemStyle.Render(a.Name+"  "+theme.HelpStyle.Render(a.Jurisdiction)))
		}
	}
	if len(m.results.Videos) > 0 {
		rows = append(rows, section.Render("Videos"))
		for _, v := range m.results.Videos {
			rows = append(rows, theme.ListItemStyle.Render(
				theme.VideoStatusStyle(string(v.Status)).Render(string(v.Status))+" "+v.Title))
		}
	}
	if len(m.results.Articles) > 0 {
		rows = append(rows, section.Render("Articles"))
		for _, a := range m.results.Articles {
			rows = append(rows, theme.ListItemStyle.Render(a.Title+"  "+theme.HelpStyle.Render(a.Outlet)))
		}
	}
	return rows
}

// SetSize updates the overlay dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 4
}
