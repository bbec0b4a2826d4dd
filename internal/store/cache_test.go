package store

import (
	"context"
	"testing"
	"time"

	"github.com/foiadesk/foiadesk/internal/model"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening test cache: %v", err)
	}
	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Errorf("closing test cache: %v", err)
		}
	})
	return c
}

func TestNotificationSnapshotRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	items := []model.Notification{
		{
			ID:        "n-1",
			Type:      "foia_response_received",
			Message:   "Response received on F-2026-01441",
			Link:      "requests/r-1",
			CreatedAt: now,
		},
		{
			ID:        "n-2",
			Type:      "video_published",
			Message:   "Bodycam compilation published",
			Read:      true,
			CreatedAt: now.Add(-time.Hour),
		},
	}

	if err := c.SaveNotifications(ctx, items); err != nil {
		t.Fatalf("SaveNotifications: %v", err)
	}

	loaded, err := c.LoadNotifications(ctx)
	if err != nil {
		t.Fatalf("LoadNotifications: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("len = %d, want 2", len(loaded))
	}
	if loaded[0].ID != "n-1" {
		t.Errorf("order wrong: first = %s, want newest n-1", loaded[0].ID)
	}
	if !loaded[1].Read {
		t.Error("read flag lost in round trip")
	}
	if loaded[0].Link != "requests/r-1" {
		t.Errorf("link = %q", loaded[0].Link)
	}

	// A second save replaces, not appends.
	if err := c.SaveNotifications(ctx, items[:1]); err != nil {
		t.Fatalf("SaveNotifications: %v", err)
	}
	loaded, err = c.LoadNotifications(ctx)
	if err != nil {
		t.Fatalf("LoadNotifications: %v", err)
	}
	if len(loaded) != 1 {
		t.Errorf("len = %d after replace, want 1", len(loaded))
	}
}

func TestPreferences(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	missing, err := c.GetPreference(ctx, "requests.filter.status")
	if err != nil {
		t.Fatalf("GetPreference: %v", err)
	}
	if missing != "" {
		t.Errorf("missing preference = %q, want empty", missing)
	}

	if err := c.SetPreference(ctx, "requests.filter.status", "submitted"); err != nil {
		t.Fatalf("SetPreference: %v", err)
	}
	if err := c.SetPreference(ctx, "requests.filter.status", "denied"); err != nil {
		t.Fatalf("SetPreference (update): %v", err)
	}

	got, err := c.GetPreference(ctx, "requests.filter.status")
	if err != nil {
		t.Fatalf("GetPreference: %v", err)
	}
	if got != "denied" {
		t.Errorf("preference = %q, want denied", got)
	}
}

func TestFeedSyncState(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	never, err := c.LastSync(ctx, "notifications")
	if err != nil {
		t.Fatalf("LastSync: %v", err)
	}
	if !never.IsZero() {
		t.Errorf("LastSync for unseen feed = %v, want zero", never)
	}

	at := time.Now().UTC().Truncate(time.Second)
	if err := c.TouchFeed(ctx, "notifications", at); err != nil {
		t.Fatalf("TouchFeed: %v", err)
	}

	got, err := c.LastSync(ctx, "notifications")
	if err != nil {
		t.Fatalf("LastSync: %v", err)
	}
	if !got.Equal(at) {
		t.Errorf("LastSync = %v, want %v", got, at)
	}
}
