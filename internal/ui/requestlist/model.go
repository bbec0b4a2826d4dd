package requestlist

import (
	"context"
	"fmt"
	"time"

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

// LoadedMsg carries one fetched page of requests. Token ties the
// response to the pager state it was requested under.
type LoadedMsg struct {
	Token uint64
	Items []model.Request
	Total int
	Err   error
}

// SelectedMsg is sent when the user opens a request's detail view.
type SelectedMsg struct {
	RequestID string
}

// SubmittedMsg carries the result of submitting a drafted request.
type SubmittedMsg struct {
	Request *model.Request
	Err     error
}

// statusCycle is the order the f key walks through. The empty entry
// means no status filter.
var statusCycle = []model.RequestStatus{
	"",
	model.RequestDraft,
	model.RequestSubmitted,
	model.RequestAcknowledged,
	model.RequestProcessing,
	model.RequestResponded,
	model.RequestFulfilled,
	model.RequestDenied,
	model.RequestAppealed,
	model.RequestClosed,
}

// Model is the FOIA request list view.
type Model struct {
	client      *api.Client
	keys        *keys.KeyMap
	pager       *pager.Pager[model.Request]
	cursor      int
	statusIdx   int
	searchMode  bool
	searchInput textinput.Model
	loading     bool
	errMsg      string
	width       int
	height      int
}

// New creates the request list view.
func New(client *api.Client, k *keys.KeyMap, pageSize, width, height int) Model {
	si := textinput.New()
	si.Placeholder = "search requests..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		client:      client,
		keys:        k,
		pager:       pager.New[model.Request](pageSize),
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns the command that loads the first page.
func (m Model) Init() tea.Cmd {
	return m.Load()
}

// Load fetches the page the pager currently points at. The returned
// message carries the pager token so stale responses are discarded.
func (m Model) Load() tea.Cmd {
	token := m.pager.Begin()
	filter := api.RequestFilter{
		Status:   model.RequestStatus(m.pager.Filter("status")),
		Query:    m.pager.Filter("q"),
		Overdue:  m.pager.Filter("overdue") == "true",
		Page:     m.pager.Page(),
		PageSize: m.pager.PageSize(),
	}
	c := m.client
	return func() tea.Msg {
		page, err := c.ListRequests(context.Background(), filter)
		if err != nil {
			return LoadedMsg{Token: token, Err: err}
		}
		return LoadedMsg{Token: token, Items: page.Items, Total: page.Total}
	}
}

// Update handles messages for the request list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		if m.pager.Apply(msg.Token, msg.Items, msg.Total) {
			m.clampCursor()
		}
		return m, nil

	case SubmittedMsg:
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		return m, m.Load()

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleSearchKeys processes key input while the search bar has focus.
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

// handleNormalKeys processes key input in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.pager.Items())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		if m.pager.Next() {
			m.cursor = 0
			m.loading = true
			return m, m.Load()
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		if m.pager.Prev() {
			m.cursor = 0
			m.loading = true
			return m, m.Load()
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		req, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedMsg{RequestID: req.ID}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.CycleFilter):
		m.statusIdx = (m.statusIdx + 1) % len(statusCycle)
		if m.pager.SetFilter("status", string(statusCycle[m.statusIdx])) {
			m.cursor = 0
			return m, m.Load()
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearFilter):
		m.statusIdx = 0
		m.searchInput.Reset()
		if m.pager.ClearFilters() {
			m.cursor = 0
			return m, m.Load()
		}
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		req, ok := m.selected()
		if !ok || req.Status != model.RequestDraft {
			return m, nil
		}
		return m, m.submit(req.ID)
	}

	return m, nil
}

// submit files a drafted request with its agency.
func (m Model) submit(id string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		req, err := c.SubmitRequest(context.Background(), id)
		return SubmittedMsg{Request: req, Err: err}
	}
}

func (m Model) selected() (model.Request, bool) {
	items := m.pager.Items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return model.Request{}, false
	}
	return items[m.cursor], true
}

func (m *Model) clampCursor() {
	if n := len(m.pager.Items()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the request list.
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
		return m.renderEmptyState()
	}

	now := time.Now()
	rows := make([]string, 0, len(items)+1)
	rows = append(rows, theme.HelpStyle.Render(m.pageLine()))

	for i, req := range items {
		rows = append(rows, m.renderRow(req, i == m.cursor, now))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderRow(req model.Request, selected bool, now time.Time) string {
	statusBadge := theme.RequestStatusStyle(string(req.Status)).Render(string(req.Status))

	tracking := req.TrackingNumber
	if tracking == "" {
		tracking = "-"
	}

	overdue := ""
	if req.Overdue(now) {
		overdue = theme.OverdueStyle.Render(" OVERDUE")
	}

	line := fmt.Sprintf("%s %-14s %s  %s%s",
		statusBadge, tracking, req.AgencyName, req.Subject, overdue)

	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

func (m Model) pageLine() string {
	line := fmt.Sprintf("page %d/%d · %d requests",
		m.pager.Page(), m.pager.TotalPages(), m.pager.Total())
	if m.loading {
		line += " · loading"
	}
	if summary := m.FilterSummary(); summary != "" {
		line += " · " + summary
	}
	return line
}

// renderEmptyState shows guidance text when no requests match.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.FilterSummary() != "" {
		return style.Render("No matching requests.\nPress F to clear filters.")
	}
	return style.Render("No requests yet.\n\nDraft one with `foiadesk requests create`.")
}

// Searching reports whether the search input has focus, so the root
// model leaves keystrokes alone.
func (m Model) Searching() bool {
	return m.searchMode
}

// FilterSummary describes the active filters for the status bar, empty
// when none are set.
func (m Model) FilterSummary() string {
	var parts []string
	if s := m.pager.Filter("status"); s != "" {
		parts = append(parts, "status="+s)
	}
	if q := m.pager.Filter("q"); q != "" {
		parts = append(parts, "q="+q)
	}
	if len(parts) == 0 {
		return ""
	}
	summary := parts[0]
	for _, p := range parts[1:] {
		summary += " " + p
	}
	return summary
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.searchInput.Width = width - 4
}
