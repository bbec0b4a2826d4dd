package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/foiadesk/foiadesk/internal/model"
)

// AuditFilter controls filtering and pagination for the audit log.
type AuditFilter struct {
	Actor      string
	Action     string
	TargetType string
	Page       int
	PageSize   int
}

func (f AuditFilter) values() url.Values {
	v := url.Values{}
	if f.Actor != "" {
		v.Set("actor", f.Actor)
	}
	if f.Action != "" {
		v.Set("action", f.Action)
	}
	if f.TargetType != "" {
		v.Set("target_type", f.TargetType)
	}
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(f.PageSize))
	}
	return v
}

// ListAuditLog retrieves a page of audit entries, newest first.
func (c *Client) ListAuditLog(
	ctx context.Context, filter AuditFilter,
) (Page[model.AuditEntry], error) {
	raw, err := c.GetRaw(ctx, "/audit-log", filter.values())
	if err != nil {
		return Page[model.AuditEntry]{}, err
	}
	return DecodePage[model.AuditEntry](raw)
}
