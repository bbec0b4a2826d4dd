package requestdetail

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/foiadesk/foiadesk/internal/api"
	"github.com/foiadesk/foiadesk/internal/keys"
	"github.com/foiadesk/foiadesk/internal/model"
	"github.com/foiadesk/foiadesk/internal/theme"
)

// LoadedMsg carries a fetched request.
type LoadedMsg struct {
	Request *model.Request
	Err     error
}

// BackMsg asks the root model to return to the list view.
type BackMsg struct{}

// SubmittedMsg carries the result of submitting the shown request.
type SubmittedMsg struct {
	Request *model.Request
	Err     error
}

// Model is the single-request detail view.
type Model struct {
	client   *api.Client
	keys     *keys.KeyMap
	request  *model.Request
	loading  bool
	errMsg   string
	viewport viewport.Model
	width    int
	height   int
}

// New creates the request detail view.
func New(client *api.Client, k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width-8, height-4)
	return Model{
		client:   client,
		keys:     k,
		viewport: vp,
		width:    width,
		height:   height,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Load fetches a request by ID and renders it into the viewport.
func (m Model) Load(id string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		req, err := c.GetRequest(context.Background(), id)
		return LoadedMsg{Request: req, Err: err}
	}
}

// SetLoading toggles the loading indicator.
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.request = msg.Request
		m.viewport.SetContent(m.renderRequest())
		m.viewport.GotoTop()
		return m, nil

	case SubmittedMsg:
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.request = msg.Request
		m.viewport.SetContent(m.renderRequest())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }

		case key.Matches(msg, m.keys.Submit):
			if m.request == nil || m.request.Status != model.RequestDraft {
				return m, nil
			}
			c := m.client
			id := m.request.ID
			return m, func() tea.Msg {
				req, err := c.SubmitRequest(context.Background(), id)
				return SubmittedMsg{Request: req, Err: err}
			}
		}

		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the detail panel.
func (m Model) View() string {
	if m.loading {
		return theme.HelpStyle.Padding(0, 1).Render("loading request...")
	}
	if m.errMsg != "" {
		return theme.ErrorStyle.Padding(0, 1).Render("error: " + m.errMsg)
	}
	if m.request == nil {
		return ""
	}
	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(m.viewport.View())
}

func (m Model) renderRequest() string {
	r := m.request
	var b strings.Builder

	b.WriteString(theme.HeaderStyle.Render(r.Subject) + "\n\n")
	fmt.Fprintf(&b, "Status    %s\n",
		theme.RequestStatusStyle(string(r.Status)).Render(string(r.Status)))
	fmt.Fprintf(&b, "Agency    %s\n", r.AgencyName)

	if r.TrackingNumber != "" {
		fmt.Fprintf(&b, "Tracking  %s\n", r.TrackingNumber)
	}
	if r.SubmittedAt != nil {
		fmt.Fprintf(&b, "Submitted %s\n", r.SubmittedAt.Format("2006-01-02"))
	}
	if r.DueAt != nil {
		due := r.DueAt.Format("2006-01-02")
		if r.Overdue(time.Now()) {
			due += theme.OverdueStyle.Render("  OVERDUE")
		}
		fmt.Fprintf(&b, "Due       %s\n", due)
	}
	if r.EstimatedFee > 0 {
		fmt.Fprintf(&b, "Est. fee  $%.2f\n", float64(r.EstimatedFee)/100)
	}

	if r.Body != "" {
		b.WriteString("\n" + r.Body + "\n")
	}
	return b.String()
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width - 8
	m.viewport.Height = height - 4
}
