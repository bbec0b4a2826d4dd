// Package notify keeps the unread-count badge and notification list
// fresh, combining push-driven refreshes with the polling backstop and
// applying reads optimistically.
package notify

import (
	"context"
	"sync"

	"github.com/foiadesk/foiadesk/internal/api"
	"github.com/foiadesk/foiadesk/internal/model"
)

// Center is the client-side notification state. Reads are optimistic:
// the local flag and counter update immediately and the write request
// follows; a failed write is left for the next refresh to reconcile
// rather than rolled back.
type Center struct {
	client *api.Client

	mu     sync.Mutex
	items  []model.Notification
	unread int
	loaded bool
}

// NewCenter creates a notification center over the given transport.
func NewCenter(client *api.Client) *Center {
	return &Center{client: client}
}

// Seed installs a cached snapshot so the badge renders before the
// first fetch completes. It never overwrites live data.
func (c *Center) Seed(items []model.Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return
	}
	c.items = items
	c.unread = countUnread(items)
}

// Refresh fetches the latest page and unread count. On failure the
// last-known state is retained and the error returned for logging; the
// caller shows staleness, not a crash.
func (c *Center) Refresh(ctx context.Context, pageSize int) error {
	list, err := c.client.ListNotifications(ctx, 1, pageSize)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.items = list.Items
	c.unread = list.UnreadCount
	c.loaded = true
	c.mu.Unlock()
	return nil
}

// Items returns the current notification list snapshot.
func (c *Center) Items() []model.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Unread returns the unread count for the badge.
func (c *Center) Unread() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unread
}

// MarkRead optimistically flips the local flag and decrements the
// counter, then persists the read. The write error (if any) is
// returned for logging only; local state stays optimistic.
func (c *Center) MarkRead(ctx context.Context, id string) error {
	c.mu.Lock()
	for i := range c.items {
		if c.items[i].ID == id && !c.items[i].Read {
			c.items[i].Read = true
			if c.unread > 0 {
				c.unread--
			}
			break
		}
	}
	c.mu.Unlock()

	return c.client.MarkNotificationRead(ctx, id)
}

// MarkAllRead optimistically flips every local flag and zeroes the
// counter, then persists.
func (c *Center) MarkAllRead(ctx context.Context) error {
	c.mu.Lock()
	for i := range c.items {
		c.items[i].Read = true
	}
	c.unread = 0
	c.mu.Unlock()

	return c.client.MarkAllNotificationsRead(ctx)
}

// Open marks the notification read if it is unread and returns its
// deep link ("" when the notification has no target). The caller
// closes the panel and navigates.
func (c *Center) Open(ctx context.Context, id string) (string, error) {
	c.mu.Lock()
	var link string
	needsRead := false
	for i := range c.items {
		if c.items[i].ID == id {
			link = c.items[i].Link
			needsRead = !c.items[i].Read
			break
		}
	}
	c.mu.Unlock()

	if !needsRead {
		return link, nil
	}
	return link, c.MarkRead(ctx, id)
}

func countUnread(items []model.Notification) int {
	n := 0
	for _, item := range items {
		if !item.Read {
			n++
		}
	}
	return n
}
