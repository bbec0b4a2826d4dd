package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/foiadesk/foiadesk/internal/model"
)

// AnalyticsSummary retrieves the workflow overview numbers.
func (c *Client) AnalyticsSummary(ctx context.Context) (*model.AnalyticsSummary, error) {
	var summary model.AnalyticsSummary
	if err := c.Get(ctx, "/analytics/summary", nil, &summary); err != nil {
		return nil, fmt.Errorf("fetching analytics summary: %w", err)
	}
	return &summary, nil
}

// RevenueSeries retrieves per-month revenue/viewership for the last
// `months` months.
func (c *Client) RevenueSeries(
	ctx context.Context, months int,
) ([]model.RevenuePoint, error) {
	v := url.Values{}
	if months > 0 {
		v.Set("months", strconv.Itoa(months))
	}

	var series struct {
		Points []model.RevenuePoint `json:"points"`
	}
	if err := c.Get(ctx, "/analytics/revenue", v, &series); err != nil {
		return nil, fmt.Errorf("fetching revenue series: %w", err)
	}
	return series.Points, nil
}

// RecalculateAnalytics asks the backend to rebuild its aggregates.
func (c *Client) RecalculateAnalytics(ctx context.Context) error {
	if err := c.Post(ctx, "/analytics/recalculate", nil, nil); err != nil {
		return fmt.Errorf("recalculating analytics: %w", err)
	}
	return nil
}
