// Package sync provides the polling backstop behind the push
// subscription: push delivery is best-effort, so every feed is also
// fully refreshed once per interval to guarantee eventual consistency
// across reconnect gaps.
package sync

import (
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Feed names one refreshable data set on the dashboard.
type Feed string

const (
	FeedRequests      Feed = "requests"
	FeedAgencies      Feed = "agencies"
	FeedVideos        Feed = "videos"
	FeedArticles      Feed = "articles"
	FeedNotifications Feed = "notifications"
	FeedAudit         Feed = "audit"
	FeedInbox         Feed = "inbox"
)

// TickMsg is a tea.Msg telling the UI to fully refresh one feed.
type TickMsg struct {
	Feed Feed
	At   time.Time
}

// Refresher emits a TickMsg per feed once per interval, plus immediate
// ticks on manual refresh. It runs independently of push state.
type Refresher struct {
	interval time.Duration
	feeds    []Feed

	tickCh    chan TickMsg
	triggerCh chan Feed
	stopCh    chan struct{}

	mu      gosync.Mutex
	running bool
}

// New creates a refresher for the given feeds. A non-positive interval
// falls back to one minute.
func New(interval time.Duration, feeds ...Feed) *Refresher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Refresher{
		interval:  interval,
		feeds:     feeds,
		tickCh:    make(chan TickMsg, 32),
		triggerCh: make(chan Feed, 32),
		stopCh:    make(chan struct{}),
	}
}

// Start launches the refresh loop and returns the subscription command
// that delivers the first tick to the Bubble Tea runtime. A stopped
// refresher can be started again.
func (r *Refresher) Start() tea.Cmd {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = true
	select {
	case <-r.stopCh:
		// Previous run was stopped; arm a fresh stop channel.
		r.stopCh = make(chan struct{})
	default:
	}
	stop := r.stopCh
	r.mu.Unlock()

	go r.loop(stop)
	return r.waitForTick()
}

// Stop halts the refresh loop.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}
	close(r.stopCh)
	r.running = false
}

// RefreshAll triggers an immediate refresh of every feed.
func (r *Refresher) RefreshAll() {
	for _, feed := range r.feeds {
		r.RefreshFeed(feed)
	}
}

// RefreshFeed triggers an immediate refresh of a single feed.
func (r *Refresher) RefreshFeed(feed Feed) {
	select {
	case r.triggerCh <- feed:
	default:
		// Channel full; a refresh is already queued.
	}
}

// WaitForNextTick returns a tea.Cmd that waits for the next tick. Call
// it after processing a TickMsg to keep listening.
func (r *Refresher) WaitForNextTick() tea.Cmd {
	return r.waitForTick()
}

// loop emits the initial full refresh, then interval ticks and manual
// triggers until stopped.
func (r *Refresher) loop(stop <-chan struct{}) {
	r.emitAll()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.emitAll()
		case feed := <-r.triggerCh:
			r.emit(feed)
		}
	}
}

func (r *Refresher) emitAll() {
	for _, feed := range r.feeds {
		r.emit(feed)
	}
}

// emit sends a tick without blocking; a full channel means the UI is
// behind and will catch up on the next interval anyway.
func (r *Refresher) emit(feed Feed) {
	select {
	case r.tickCh <- TickMsg{Feed: feed, At: time.Now()}:
	default:
	}
}

func (r *Refresher) waitForTick() tea.Cmd {
	return func() tea.Msg {
		tick, ok := <-r.tickCh
		if !ok {
			return nil
		}
		return tick
	}
}
