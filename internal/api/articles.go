package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/foiadesk/foiadesk/internal/model"
)

// ArticleFilter controls filtering and pagination for scanned articles.
type ArticleFilter struct {
	Outlet     string
	Unreviewed bool
	Query      string
	Page       int
	PageSize   int
}

func (f ArticleFilter) values() url.Values {
	v := url.Values{}
	if f.Outlet != "" {
		v.Set("outlet", f.Outlet)
	}
	if f.Unreviewed {
		v.Set("unreviewed", "true")
	}
	if f.Query != "" {
		v.Set("q", f.Query)
	}
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(f.PageSize))
	}
	return v
}

// ListArticles retrieves a page of scanned articles.
func (c *Client) ListArticles(
	ctx context.Context, filter ArticleFilter,
) (Page[model.Article], error) {
	raw, err := c.GetRaw(ctx, "/articles", filter.values())
	if err != nil {
		return Page[model.Article]{}, err
	}
	return DecodePage[model.Article](raw)
}

// TriggerScan asks the backend to run a news scan now. Completion is
// reported asynchronously via the scan_complete push event.
func (c *Client) TriggerScan(ctx context.Context) error {
	if err := c.Post(ctx, "/articles/scan", nil, nil); err != nil {
		return fmt.Errorf("triggering scan: %w", err)
	}
	return nil
}

// MarkArticleReviewed records that a scan hit has been triaged.
func (c *Client) MarkArticleReviewed(ctx context.Context, id string) error {
	path := "/articles/" + url.PathEscape(id) + "/reviewed"
	if err := c.Post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("marking article %s reviewed: %w", id, err)
	}
	return nil
}
