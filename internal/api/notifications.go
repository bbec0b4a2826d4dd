package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/foiadesk/foiadesk/internal/model"
)

// NotificationList is a page of notifications plus the server-computed
// unread count across all pages.
type NotificationList struct {
	Items       []model.Notification `json:"items"`
	Total       int                  `json:"total"`
	Page        int                  `json:"page"`
	PageSize    int                  `json:"page_size"`
	UnreadCount int                  `json:"unread_count"`
}

// ListNotifications retrieves a page of notifications with the unread
// count.
func (c *Client) ListNotifications(
	ctx context.Context, page, pageSize int,
) (*NotificationList, error) {
	v := url.Values{}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		v.Set("page_size", strconv.Itoa(pageSize))
	}

	var list NotificationList
	if err := c.Get(ctx, "/notifications", v, &list); err != nil {
		return nil, fmt.Errorf("fetching notifications: %w", err)
	}
	return &list, nil
}

// MarkNotificationRead records that a single notification has been seen.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	path := "/notifications/" + url.PathEscape(id) + "/read"
	if err := c.Post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("marking notification %s read: %w", id, err)
	}
	return nil
}

// MarkAllNotificationsRead records that every notification has been seen.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	if err := c.Post(ctx, "/notifications/read-all", nil, nil); err != nil {
		return fmt.Errorf("marking all notifications read: %w", err)
	}
	return nil
}
