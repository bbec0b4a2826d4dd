package sync

import (
	"testing"
	"time"
)

func collectTicks(t *testing.T, r *Refresher, n int, timeout time.Duration) []TickMsg {
	t.Helper()
	var ticks []TickMsg
	deadline := time.After(timeout)
	for len(ticks) < n {
		select {
		case tick := <-r.tickCh:
			ticks = append(ticks, tick)
		case <-deadline:
			t.Fatalf("got %d ticks before timeout, want %d", len(ticks), n)
		}
	}
	return ticks
}

func TestInitialTickCoversEveryFeed(t *testing.T) {
	r := New(time.Hour, FeedRequests, FeedNotifications)
	r.Start()
	defer r.Stop()

	ticks := collectTicks(t, r, 2, time.Second)

	seen := map[Feed]bool{}
	for _, tick := range ticks {
		seen[tick.Feed] = true
	}
	if !seen[FeedRequests] || !seen[FeedNotifications] {
		t.Errorf("initial ticks = %v, want both feeds", seen)
	}
}

func TestIntervalTicks(t *testing.T) {
	r := New(20*time.Millisecond, FeedRequests)
	r.Start()
	defer r.Stop()

	// Initial tick plus at least two interval ticks.
	collectTicks(t, r, 3, time.Second)
}

func TestManualRefreshSingleFeed(t *testing.T) {
	r := New(time.Hour, FeedRequests, FeedVideos)
	r.Start()
	defer r.Stop()

	collectTicks(t, r, 2, time.Second)

	r.RefreshFeed(FeedVideos)
	ticks := collectTicks(t, r, 1, time.Second)
	if ticks[0].Feed != FeedVideos {
		t.Errorf("manual tick feed = %s, want %s", ticks[0].Feed, FeedVideos)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	r := New(time.Hour, FeedRequests)
	r.Start()
	r.Stop()
	r.Stop()
}

func TestRestartAfterStop(t *testing.T) {
	r := New(time.Hour, FeedRequests)
	r.Start()
	collectTicks(t, r, 1, time.Second)
	r.Stop()

	r.Start()
	defer r.Stop()
	collectTicks(t, r, 1, time.Second)
}
