// Package app owns the root Bubble Tea model: view routing, the live
// push subscription, the polling backstop, and the shared notification
// center.
package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/foiadesk/foiadesk/internal/api"
	"github.com/foiadesk/foiadesk/internal/keys"
	"github.com/foiadesk/foiadesk/internal/mailbox"
	"github.com/foiadesk/foiadesk/internal/model"
	"github.com/foiadesk/foiadesk/internal/notify"
	"github.com/foiadesk/foiadesk/internal/push"
	"github.com/foiadesk/foiadesk/internal/session"
	"github.com/foiadesk/foiadesk/internal/store"
	appsync "github.com/foiadesk/foiadesk/internal/sync"
	"github.com/foiadesk/foiadesk/internal/ui"
	"github.com/foiadesk/foiadesk/internal/ui/agencylist"
	"github.com/foiadesk/foiadesk/internal/ui/analytics"
	"github.com/foiadesk/foiadesk/internal/ui/auditlog"
	helpview "github.com/foiadesk/foiadesk/internal/ui/help"
	"github.com/foiadesk/foiadesk/internal/ui/inboxview"
	"github.com/foiadesk/foiadesk/internal/ui/login"
	"github.com/foiadesk/foiadesk/internal/ui/notifpanel"
	"github.com/foiadesk/foiadesk/internal/ui/requestdetail"
	"github.com/foiadesk/foiadesk/internal/ui/requestlist"
	"github.com/foiadesk/foiadesk/internal/ui/searchview"
	"github.com/foiadesk/foiadesk/internal/ui/videolist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewRequests
	ViewRequestDetail
	ViewAgencies
	ViewVideos
	ViewInbox
	ViewAnalytics
	ViewAudit
	ViewNotifications
	ViewSearch
	ViewHelp
)

// authFailureMsg is emitted when the transport saw a 401 and cleared
// the session.
type authFailureMsg struct{}

// seededMsg carries the cached notification snapshot loaded at startup.
type seededMsg struct {
	items    []model.Notification
	syncedAt time.Time
}

// snapshotSavedMsg reports the outcome of persisting notifications to
// the local cache; failures are logged and otherwise ignored.
type snapshotSavedMsg struct {
	err error
}

// Model is the root Bubble Tea model.
type Model struct {
	cfg    *model.AppConfig
	sess   *session.Store
	client *api.Client
	cache  *store.Cache
	log    *slog.Logger

	pushc     *push.Client
	refresher *appsync.Refresher
	center    *notify.Center
	keys      *keys.KeyMap
	layout    ui.Layout
	ready     bool

	currentView  ViewState
	previousView ViewState
	toast        string
	user         *api.Me
	cachedAt     time.Time

	eventCh    chan PushEventMsg
	authFailCh chan struct{}

	requestList   requestlist.Model
	requestDetail requestdetail.Model
	agencyList    agencylist.Model
	videoList     videolist.Model
	inboxView     inboxview.Model
	auditLog      auditlog.Model
	notifPanel    notifpanel.Model
	analyticsView analytics.Model
	searchView    searchview.Model
	loginView     login.Model
	helpView      helpview.Model
}

// New wires the root model. inbox may be nil when no mailbox is
// configured.
func New(
	cfg *model.AppConfig,
	sess *session.Store,
	client *api.Client,
	cache *store.Cache,
	inbox *mailbox.Inbox,
	log *slog.Logger,
) *Model {
	if log == nil {
		log = slog.Default()
	}

	k := keys.DefaultKeyMap()
	center := notify.NewCenter(client)

	streamURL := strings.TrimRight(client.BaseURL(), "/") + cfg.Server.StreamPath
	pushc := push.NewClient(streamURL, sess.Token, log)

	interval := time.Duration(cfg.Display.PollIntervalSec) * time.Second
	refresher := appsync.New(interval,
		appsync.FeedRequests,
		appsync.FeedAgencies,
		appsync.FeedVideos,
		appsync.FeedNotifications,
		appsync.FeedInbox,
	)

	pageSize := cfg.Display.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	m := &Model{
		cfg:        cfg,
		sess:       sess,
		client:     client,
		cache:      cache,
		log:        log,
		pushc:      pushc,
		refresher:  refresher,
		center:     center,
		keys:       k,
		eventCh:    make(chan PushEventMsg, 32),
		authFailCh: make(chan struct{}, 1),

		requestList:   requestlist.New(client, k, pageSize, 80, 24),
		requestDetail: requestdetail.New(client, k, 80, 24),
		agencyList:    agencylist.New(client, k, pageSize, 80, 24),
		videoList:     videolist.New(client, k, pageSize, 80, 24),
		inboxView:     inboxview.New(inbox, k, pageSize, 80, 24),
		auditLog:      auditlog.New(client, k, pageSize, 80, 24),
		notifPanel:    notifpanel.New(center, k, 80, 24),
		analyticsView: analytics.New(client, 80, 24),
		searchView:    searchview.New(client, 80, 24),
		loginView:     login.New(client, sess, 80, 24),
		helpView:      helpview.New(k, 80, 24),
	}

	pushc.SetHandlers(m.pushHandlers())

	// A 401 anywhere drops the session; surface it to the event loop.
	client.OnAuthFailure(func() {
		select {
		case m.authFailCh <- struct{}{}:
		default:
		}
	})

	// Credential changes (login, logout, rotation) recycle the stream.
	sess.Subscribe(func(string) {
		pushc.Restart()
	})

	if sess.Authenticated() {
		m.currentView = ViewRequests
	} else {
		m.currentView = ViewLogin
	}

	return m
}

// Init starts either the login form or the full session.
func (m *Model) Init() tea.Cmd {
	if m.currentView == ViewLogin {
		return tea.Batch(m.loginView.Init(), m.waitForAuthFailure())
	}
	return m.startSession()
}

// startSession boots everything that needs a valid credential.
func (m *Model) startSession() tea.Cmd {
	m.pushc.Start()

	cmds := []tea.Cmd{
		m.seedFromCache(),
		m.refresher.Start(),
		m.waitForPushEvent(),
		m.waitForAuthFailure(),
		m.requestList.Init(),
		m.notifPanel.Refresh(),
	}
	return tea.Batch(cmds...)
}

// seedFromCache loads the last notification snapshot so the panel has
// content before the first fetch completes.
func (m *Model) seedFromCache() tea.Cmd {
	if m.cache == nil {
		return nil
	}
	cache := m.cache
	return func() tea.Msg {
		ctx := context.Background()
		items, err := cache.LoadNotifications(ctx)
		if err != nil || len(items) == 0 {
			return nil
		}
		syncedAt, _ := cache.LastSync(ctx, "notifications")
		return seededMsg{items: items, syncedAt: syncedAt}
	}
}

// saveSnapshot persists the center's current notifications.
func (m *Model) saveSnapshot() tea.Cmd {
	if m.cache == nil {
		return nil
	}
	cache := m.cache
	items := m.center.Items()
	return func() tea.Msg {
		ctx := context.Background()
		err := cache.SaveNotifications(ctx, items)
		if err == nil {
			err = cache.TouchFeed(ctx, "notifications", time.Now())
		}
		return snapshotSavedMsg{err: err}
	}
}

func (m *Model) waitForAuthFailure() tea.Cmd {
	ch := m.authFailCh
	return func() tea.Msg {
		<-ch
		return authFailureMsg{}
	}
}

// Update handles messages and dispatches to the active view.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.requestList.SetSize(w, h)
		m.requestDetail.SetSize(w, h)
		m.agencyList.SetSize(w, h)
		m.videoList.SetSize(w, h)
		m.inboxView.SetSize(w, h)
		m.auditLog.SetSize(w, h)
		m.notifPanel.SetSize(w, h)
		m.analyticsView.SetSize(w, h)
		m.searchView.SetSize(w, h)
		m.loginView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		// Forward to the active view so huh forms can lay themselves out.
		return m.updateActiveView(msg)

	case PushEventMsg:
		if msg.Toast != "" {
			m.toast = msg.Toast
		}
		cmds := []tea.Cmd{
			m.waitForPushEvent(),
			m.notifPanel.Refresh(),
			m.reloadFeed(msg.Feed),
		}
		return m, tea.Batch(cmds...)

	case appsync.TickMsg:
		return m, tea.Batch(
			m.refresher.WaitForNextTick(),
			m.reloadFeed(msg.Feed),
		)

	case seededMsg:
		m.center.Seed(msg.items)
		m.cachedAt = msg.syncedAt
		return m, nil

	case snapshotSavedMsg:
		if msg.err != nil {
			m.log.Warn("persisting notification snapshot", "error", msg.err)
		}
		return m, nil

	case authFailureMsg:
		m.pushc.Stop()
		m.refresher.Stop()
		m.toast = "Session expired, sign in again"
		m.currentView = ViewLogin
		return m, tea.Batch(m.loginView.Init(), m.waitForAuthFailure())

	case login.LoggedInMsg:
		m.user = msg.User
		m.toast = "Signed in as " + msg.User.Name
		m.currentView = ViewRequests
		return m, m.startSession()

	case notifpanel.RefreshedMsg:
		if msg.Err == nil {
			m.cachedAt = time.Time{}
		}
		var cmd tea.Cmd
		m.notifPanel, cmd = m.notifPanel.Update(msg)
		return m, tea.Batch(cmd, m.saveSnapshot())

	case notifpanel.OpenLinkMsg:
		return m.openLink(msg.Link)

	case requestlist.SelectedMsg:
		m.previousView = m.currentView
		m.currentView = ViewRequestDetail
		m.requestDetail.SetLoading(true)
		return m, m.requestDetail.Load(msg.RequestID)

	case requestdetail.BackMsg:
		m.currentView = ViewRequests
		return m, nil

	case searchview.CloseMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		if newModel, cmd, handled := m.handleGlobalKeys(msg); handled {
			return newModel, cmd
		}
	}

	return m.updateActiveView(msg)
}

// reloadFeed maps a feed name to the command refreshing its view.
func (m *Model) reloadFeed(feed appsync.Feed) tea.Cmd {
	switch feed {
	case appsync.FeedRequests:
		return m.requestList.Load()
	case appsync.FeedAgencies:
		return m.agencyList.Load()
	case appsync.FeedVideos:
		return m.videoList.Load()
	case appsync.FeedNotifications:
		return m.notifPanel.Refresh()
	case appsync.FeedInbox:
		return m.inboxView.Load()
	case appsync.FeedArticles:
		// Articles surface through analytics and search only.
		if m.currentView == ViewAnalytics {
			return m.analyticsView.Load()
		}
	}
	return nil
}

// openLink routes a notification deep link to the matching view.
func (m *Model) openLink(link string) (tea.Model, tea.Cmd) {
	kind, id, _ := strings.Cut(link, "/")
	switch kind {
	case "requests":
		m.previousView = m.currentView
		m.currentView = ViewRequestDetail
		m.requestDetail.SetLoading(true)
		return m, m.requestDetail.Load(id)
	case "videos":
		m.currentView = ViewVideos
		return m, m.videoList.Load()
	default:
		return m, nil
	}
}

// handleGlobalKeys processes keys that work in any view. Returns
// handled=false when the active view should see the key instead.
func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	// Text-entry views own the keyboard.
	if m.currentView == ViewLogin || m.currentView == ViewSearch {
		if msg.String() == "ctrl+c" {
			return m, m.quit(), true
		}
		return m, nil, false
	}
	if m.currentView == ViewRequests && m.requestList.Searching() {
		return m, nil, false
	}
	if m.currentView == ViewAgencies && m.agencyList.Searching() {
		return m, nil, false
	}

	switch msg.String() {
	case "ctrl+c":
		return m, m.quit(), true

	case "q":
		if m.currentView == ViewRequestDetail || m.currentView == ViewHelp ||
			m.currentView == ViewNotifications {
			m.currentView = m.previousView
			return m, nil, true
		}
		return m, m.quit(), true

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case "esc":
		switch m.currentView {
		case ViewHelp, ViewNotifications, ViewSearch:
			m.currentView = m.previousView
			return m, nil, true
		}
		return m, nil, false

	case "1":
		m.currentView = ViewRequests
		return m, m.requestList.Load(), true
	case "2":
		m.currentView = ViewAgencies
		return m, m.agencyList.Load(), true
	case "3":
		m.currentView = ViewVideos
		return m, m.videoList.Load(), true
	case "4":
		m.currentView = ViewInbox
		return m, m.inboxView.Load(), true
	case "5":
		m.currentView = ViewAnalytics
		return m, m.analyticsView.Load(), true
	case "6":
		m.currentView = ViewAudit
		return m, m.auditLog.Load(), true

	case "n":
		if m.currentView == ViewNotifications {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewNotifications
		return m, m.notifPanel.Refresh(), true

	case "ctrl+f":
		m.previousView = m.currentView
		m.currentView = ViewSearch
		return m, m.searchView.Focus(), true

	case "r":
		m.toast = ""
		m.refresher.RefreshAll()
		return m, nil, true
	}

	return m, nil, false
}

func (m *Model) quit() tea.Cmd {
	m.pushc.Stop()
	m.refresher.Stop()
	return tea.Quit
}

// updateActiveView dispatches the message to the currently active view.
func (m *Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewRequests:
		m.requestList, cmd = m.requestList.Update(msg)
	case ViewRequestDetail:
		m.requestDetail, cmd = m.requestDetail.Update(msg)
	case ViewAgencies:
		m.agencyList, cmd = m.agencyList.Update(msg)
	case ViewVideos:
		m.videoList, cmd = m.videoList.Update(msg)
	case ViewInbox:
		m.inboxView, cmd = m.inboxView.Update(msg)
	case ViewAnalytics:
		m.analyticsView, cmd = m.analyticsView.Update(msg)
	case ViewAudit:
		m.auditLog, cmd = m.auditLog.Update(msg)
	case ViewNotifications:
		m.notifPanel, cmd = m.notifPanel.Update(msg)
	case ViewSearch:
		m.searchView, cmd = m.searchView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("FOIA Desk", m.center.Unread(), m.headerStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.toast, m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

func (m *Model) headerStatus() string {
	if m.currentView == ViewLogin {
		return "signed out"
	}

	var parts []string
	if m.user != nil {
		parts = append(parts, m.user.Name)
	}
	// Cleared once the first live refresh lands.
	if !m.cachedAt.IsZero() {
		parts = append(parts, "cached "+m.cachedAt.Format("15:04"))
	}
	return strings.Join(parts, " | ")
}

// renderContent returns the rendered string for the current active view.
func (m *Model) renderContent() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewRequests:
		return m.requestList.View()
	case ViewRequestDetail:
		return m.requestDetail.View()
	case ViewAgencies:
		return m.agencyList.View()
	case ViewVideos:
		return m.videoList.View()
	case ViewInbox:
		return m.inboxView.View()
	case ViewAnalytics:
		return m.analyticsView.View()
	case ViewAudit:
		return m.auditLog.View()
	case ViewNotifications:
		return m.notifPanel.View()
	case ViewSearch:
		return m.searchView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m *Model) keyHints() string {
	switch m.currentView {
	case ViewLogin:
		return "enter submit | ctrl+c quit"
	case ViewRequestDetail:
		return "esc back | s submit draft | j/k scroll"
	case ViewHelp:
		return "? close help"
	case ViewNotifications:
		return "m mark read | M mark all | enter open | esc back"
	case ViewSearch:
		return "enter search | esc close"
	case ViewInbox:
		return "enter read | h/l pages | r refresh | ? help"
	case ViewRequests:
		if summary := m.requestList.FilterSummary(); summary != "" {
			return summary + " | F clear"
		}
		return "q quit | ? help | / search | f filter | s submit | n notifications"
	default:
		return "q quit | ? help | 1-6 views | n notifications | r refresh"
	}
}
