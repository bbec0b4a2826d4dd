package login

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/foiadesk/foiadesk/internal/api"
	"github.com/foiadesk/foiadesk/internal/session"
	"github.com/foiadesk/foiadesk/internal/theme"
)

// LoggedInMsg is sent after a credential has been validated and stored.
type LoggedInMsg struct {
	User *api.Me
}

// validateResultMsg carries the outcome of checking the entered token
// against /auth/me.
type validateResultMsg struct {
	user *api.Me
	err  error
}

// Model is the login form shown when no valid credential is stored.
type Model struct {
	client     *api.Client
	sess       *session.Store
	form       *huh.Form
	token      string
	validating bool
	errMsg     string
	width      int
	height     int
}

// New creates the login form.
func New(client *api.Client, sess *session.Store, width, height int) Model {
	m := Model{
		client: client,
		sess:   sess,
		width:  width,
		height: height,
	}
	m.form = m.buildForm()
	return m
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("API token").
				Description("Paste the personal access token from your workspace settings page.").
				EchoMode(huh.EchoModePassword).
				Value(&m.token),
		),
	)
}

// Init starts the form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the login form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case validateResultMsg:
		m.validating = false
		if msg.err != nil {
			// Reject the credential and let the user try again.
			_ = m.sess.Clear()
			m.errMsg = msg.err.Error()
			m.token = ""
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		return m, func() tea.Msg {
			return LoggedInMsg{User: msg.user}
		}
	}

	if m.validating {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.validating = true
		m.errMsg = ""
		return m, m.validate()
	}
	if m.form.State == huh.StateAborted {
		m.token = ""
		m.form = m.buildForm()
		return m, m.form.Init()
	}

	return m, cmd
}

// validate stores the token and checks it against the server.
func (m Model) validate() tea.Cmd {
	c := m.client
	sess := m.sess
	token := m.token
	return func() tea.Msg {
		if err := sess.SetToken(token); err != nil {
			return validateResultMsg{err: err}
		}
		user, err := c.WhoAmI(context.Background())
		return validateResultMsg{user: user, err: err}
	}
}

// View renders the login form.
func (m Model) View() string {
	title := lipgloss.NewStyle().Bold(true).MarginBottom(1).Render("Sign in")

	body := m.form.View()
	if m.validating {
		body = theme.HelpStyle.Render("validating credential...")
	}

	rows := []string{title, body}
	if m.errMsg != "" {
		rows = append(rows, theme.ErrorStyle.Render("login failed: "+m.errMsg))
	}

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
