package analytics

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/foiadesk/foiadesk/internal/api"
	"github.com/foiadesk/foiadesk/internal/model"
	"github.com/foiadesk/foiadesk/internal/theme"
)

// LoadedMsg carries the analytics overview and revenue series.
type LoadedMsg struct {
	Summary *model.AnalyticsSummary
	Revenue []model.RevenuePoint
	Err     error
}

// RecalculatedMsg is sent after a server-side analytics rebuild.
type RecalculatedMsg struct {
	Err error
}

// Model is the analytics overview view.
type Model struct {
	client  *api.Client
	summary *model.AnalyticsSummary
	revenue []model.RevenuePoint
	errMsg  string
	width   int
	height  int
}

// New creates the analytics view.
func New(client *api.Client, width, height int) Model {
	return Model{client: client, width: width, height: height}
}

func (m Model) Init() tea.Cmd {
	return m.Load()
}

// Load fetches the summary and the last twelve months of revenue.
func (m Model) Load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx := context.Background()
		summary, err := c.AnalyticsSummary(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		revenue, err := c.RevenueSeries(ctx, 12)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		return LoadedMsg{Summary: summary, Revenue: revenue}
	}
}

// Recalculate asks the server to rebuild its analytics rollups.
func (m Model) Recalculate() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		return RecalculatedMsg{Err: c.RecalculateAnalytics(context.Background())}
	}
}

// Update handles messages for the analytics view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.summary = msg.Summary
		m.revenue = msg.Revenue
		return m, nil

	case RecalculatedMsg:
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		return m, m.Load()

	case tea.KeyMsg:
		if msg.String() == "R" {
			return m, m.Recalculate()
		}
	}

	return m, nil
}

// View renders the analytics overview.
func (m Model) View() string {
	if m.errMsg != "" {
		return theme.ErrorStyle.Padding(0, 1).Render("error: " + m.errMsg)
	}
	if m.summary == nil {
		return theme.HelpStyle.Padding(0, 1).Render("loading analytics...")
	}

	s := m.summary
	var b strings.Builder
	fmt.Fprintf(&b, "Requests   total %d · open %d · fulfilled %d · denied %d\n",
		s.TotalRequests, s.OpenRequests, s.FulfilledRequests, s.DeniedRequests)
	fmt.Fprintf(&b, "Success    %.1f%% · avg response %.1f days\n",
		s.SuccessRate*100, s.AvgResponseDays)
	fmt.Fprintf(&b, "Pipeline   %d published · %d views · $%.2f revenue\n",
		s.PublishedVideos, s.TotalViews, float64(s.RevenueCents)/100)

	if len(m.revenue) > 0 {
		b.WriteString("\nRevenue by month\n")
		for _, p := range m.revenue {
			fmt.Fprintf(&b, "  %s  %s $%8.2f  %d videos · %d views\n",
				p.Month, bar(p.RevenueCents, m.maxRevenue()),
				float64(p.RevenueCents)/100, p.VideoCount, p.Views)
		}
	}

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(b.String())
}

func (m Model) maxRevenue() int64 {
	var max int64
	for _, p := range m.revenue {
		if p.RevenueCents > max {
			max = p.RevenueCents
		}
	}
	return max
}

// bar renders a proportional block bar for one month's revenue.
func bar(value, max int64) string {
	const widest = 20
	if max <= 0 {
		return strings.Repeat(" ", widest)
	}
	n := int(value * widest / max)
	return lipgloss.NewStyle().Foreground(theme.ColorGreen).
		Render(strings.Repeat("█", n) + strings.Repeat(" ", widest-n))
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
