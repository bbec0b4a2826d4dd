package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/foiadesk/foiadesk/internal/model"
)

// SearchResults holds the grouped results of a global search.
type SearchResults struct {
	Requests []model.Request `json:"requests"`
	Agencies []model.Agency  `json:"agencies"`
	Videos   []model.Video   `json:"videos"`
	Articles []model.Article `json:"articles"`
}

// Empty reports whether the search matched nothing in any group.
func (r SearchResults) Empty() bool {
	return len(r.Requests) == 0 && len(r.Agencies) == 0 &&
		len(r.Videos) == 0 && len(r.Articles) == 0
}

// Search runs a global search across requests, agencies, videos, and
// articles.
func (c *Client) Search(
	ctx context.Context, query string, limit int,
) (*SearchResults, error) {
	v := url.Values{}
	v.Set("q", query)
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}

	var results SearchResults
	if err := c.Get(ctx, "/search", v, &results); err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	return &results, nil
}
