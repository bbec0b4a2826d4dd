package videolist

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

// LoadedMsg carries one fetched page of pipeline videos.
type LoadedMsg struct {
	Token uint64
	Items []model.Video
	Total int
	Err   error
}

// StatusChangedMsg carries the result of advancing a video's stage.
type StatusChangedMsg struct {
	Video *model.Video
	Err   error
}

// statusCycle is the filter order the f key walks through.
var statusCycle = []model.VideoStatus{
	"",
	model.VideoRawFootage,
	model.VideoEditing,
	model.VideoReview,
	model.VideoScheduled,
	model.VideoPublished,
}

// nextStage maps each pipeline stage to its successor. Published is
// terminal.
var nextStage = map[model.VideoStatus]model.VideoStatus{
	model.VideoRawFootage: model.VideoEditing,
	model.VideoEditing:    model.VideoReview,
	model.VideoReview:     model.VideoScheduled,
	model.VideoScheduled:  model.VideoPublished,
}

// Model is the video pipeline view.
type Model struct {
	client    *api.Client
	keys      *keys.KeyMap
	pager     *pager.Pager[model.Video]
	cursor    int
	statusIdx int
	errMsg    string
	width     int
	height    int
}

// New creates the video pipeline view.
func New(client *api.Client, k *keys.KeyMap, pageSize, width, height int) Model {
	return Model{
		client: client,
		keys:   k,
		pager:  pager.New[model.Video](pageSize),
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
	filter := api.VideoFilter{
		Status:   model.VideoStatus(m.pager.Filter("status")),
		Page:     m.pager.Page(),
		PageSize: m.pager.PageSize(),
	}
	c := m.client
	return func() tea.Msg {
		page, err := c.ListVideos(context.Background(), filter)
		if err != nil {
			return LoadedMsg{Token: token, Err: err}
		}
		return LoadedMsg{Token: token, Items: page.Items, Total: page.Total}
	}
}

// Update handles messages for the video pipeline view.
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

	case StatusChangedMsg:
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		return m, m.Load()

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
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
	case key.Matches(msg, m.keys.CycleFilter):
		m.statusIdx = (m.statusIdx + 1) % len(statusCycle)
		if m.pager.SetFilter("status", string(statusCycle[m.statusIdx])) {
			m.cursor = 0
			return m, m.Load()
		}
	case key.Matches(msg, m.keys.ClearFilter):
		m.statusIdx = 0
		if m.pager.ClearFilters() {
			m.cursor = 0
			return m, m.Load()
		}
	case key.Matches(msg, m.keys.Submit):
		// s advances the selected video one pipeline stage.
		items := m.pager.Items()
		if m.cursor >= len(items) {
			return m, nil
		}
		video := items[m.cursor]
		next, ok := nextStage[video.Status]
		if !ok {
			return m, nil
		}
		return m, m.advance(video.ID, next)
	}

	return m, nil
}

func (m Model) advance(id string, status model.VideoStatus) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		video, err := c.UpdateVideoStatus(context.Background(), id, status)
		return StatusChangedMsg{Video: video, Err: err}
	}
}

// View renders the video pipeline.
func (m Model) View() string {
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
		return style.Render("No videos in the pipeline.")
	}

	rows := make([]string, 0, len(items)+1)
	rows = append(rows, theme.HelpStyle.Render(fmt.Sprintf(
		"page %d/%d · %d videos",
		m.pager.Page(), m.pager.TotalPages(), m.pager.Total())))

	for i, v := range items {
		statusBadge := theme.VideoStatusStyle(string(v.Status)).Render(string(v.Status))

		meta := ""
		if v.Status == model.VideoPublished {
			meta = fmt.Sprintf("  %d views · $%.2f", v.Views, float64(v.RevenueCents)/100)
		} else if v.Editor != "" {
			meta = "  editor: " + v.Editor
		}

		line := fmt.Sprintf("%s %s%s", statusBadge, v.Title, meta)
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
}
