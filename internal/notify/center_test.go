package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/foiadesk/foiadesk/internal/api"
	"github.com/foiadesk/foiadesk/internal/model"
	"github.com/foiadesk/foiadesk/internal/session"
)

// notificationBackend is a minimal in-memory /notifications API.
type notificationBackend struct {
	mu     sync.Mutex
	items  []model.Notification
	reads  []string
	broken bool
}

func (b *notificationBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		if b.broken {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/notifications":
			unread := 0
			for _, n := range b.items {
				if !n.Read {
					unread++
				}
			}
			resp := api.NotificationList{
				Items:       b.items,
				Total:       len(b.items),
				Page:        1,
				PageSize:    len(b.items),
				UnreadCount: unread,
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)

		case r.Method == http.MethodPost && r.URL.Path == "/notifications/read-all":
			for i := range b.items {
				b.items[i].Read = true
			}
			w.WriteHeader(http.StatusNoContent)

		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/read"):
			id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/notifications/"), "/read")
			b.reads = append(b.reads, id)
			for i := range b.items {
				if b.items[i].ID == id {
					b.items[i].Read = true
				}
			}
			w.WriteHeader(http.StatusNoContent)

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func (b *notificationBackend) readRequests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.reads))
	copy(out, b.reads)
	return out
}

func newTestCenter(t *testing.T, backend *notificationBackend) *Center {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	return NewCenter(api.NewClient(srv.URL, session.NewMemoryStore("tok")))
}

func seedNotifications(n int) []model.Notification {
	items := make([]model.Notification, n)
	for i := range items {
		items[i] = model.Notification{
			ID:      fmt.Sprintf("n-%d", i+1),
			Type:    "foia_response_received",
			Message: fmt.Sprintf("Response received on request %d", i+1),
			Link:    fmt.Sprintf("requests/r-%d", i+1),
		}
	}
	return items
}

// Mirrors the end-to-end read flow: count starts at 3, one click marks a
// notification read, the count drops optimistically, the read request is
// issued, and a refetch confirms unread_count=2.
func TestMarkReadEndToEnd(t *testing.T) {
	backend := &notificationBackend{items: seedNotifications(3)}
	center := newTestCenter(t, backend)
	ctx := context.Background()

	if err := center.Refresh(ctx, 20); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if center.Unread() != 3 {
		t.Fatalf("Unread = %d, want 3", center.Unread())
	}

	if err := center.MarkRead(ctx, "n-2"); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if center.Unread() != 2 {
		t.Errorf("Unread = %d immediately after MarkRead, want 2 (optimistic)", center.Unread())
	}
	if reads := backend.readRequests(); len(reads) != 1 || reads[0] != "n-2" {
		t.Errorf("read requests = %v, want [n-2]", reads)
	}

	if err := center.Refresh(ctx, 20); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if center.Unread() != 2 {
		t.Errorf("Unread = %d after refetch, want 2", center.Unread())
	}
}

func TestMarkAllRead(t *testing.T) {
	backend := &notificationBackend{items: seedNotifications(4)}
	center := newTestCenter(t, backend)
	ctx := context.Background()

	if err := center.Refresh(ctx, 20); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if err := center.MarkAllRead(ctx); err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if center.Unread() != 0 {
		t.Errorf("Unread = %d, want 0", center.Unread())
	}
	for _, item := range center.Items() {
		if !item.Read {
			t.Errorf("notification %s still unread locally", item.ID)
		}
	}
}

func TestRefreshFailureRetainsState(t *testing.T) {
	backend := &notificationBackend{items: seedNotifications(2)}
	center := newTestCenter(t, backend)
	ctx := context.Background()

	if err := center.Refresh(ctx, 20); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	backend.mu.Lock()
	backend.broken = true
	backend.mu.Unlock()

	if err := center.Refresh(ctx, 20); err == nil {
		t.Fatal("Refresh against a broken backend must return the error")
	}
	if center.Unread() != 2 {
		t.Errorf("Unread = %d after failed refresh, want last-known 2", center.Unread())
	}
	if len(center.Items()) != 2 {
		t.Errorf("items lost after failed refresh")
	}
}

func TestOpenMarksReadAndReturnsLink(t *testing.T) {
	backend := &notificationBackend{items: seedNotifications(1)}
	center := newTestCenter(t, backend)
	ctx := context.Background()

	if err := center.Refresh(ctx, 20); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	link, err := center.Open(ctx, "n-1")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if link != "requests/r-1" {
		t.Errorf("link = %q", link)
	}
	if center.Unread() != 0 {
		t.Errorf("Unread = %d after Open, want 0", center.Unread())
	}

	// Opening an already-read notification issues no second write.
	if _, err := center.Open(ctx, "n-1"); err != nil {
		t.Fatalf("Open again: %v", err)
	}
	if reads := backend.readRequests(); len(reads) != 1 {
		t.Errorf("read requests = %v, want exactly one", reads)
	}
}

func TestOptimisticStateKeptOnWriteFailure(t *testing.T) {
	backend := &notificationBackend{items: seedNotifications(2)}
	center := newTestCenter(t, backend)
	ctx := context.Background()

	if err := center.Refresh(ctx, 20); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	backend.mu.Lock()
	backend.broken = true
	backend.mu.Unlock()

	// The write fails, but the optimistic flip stays (no rollback).
	if err := center.MarkRead(ctx, "n-1"); err == nil {
		t.Fatal("MarkRead against a broken backend must return the error")
	}
	if center.Unread() != 1 {
		t.Errorf("Unread = %d, want optimistic 1", center.Unread())
	}
}
