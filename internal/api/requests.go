package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/foiadesk/foiadesk/internal/model"
)

// RequestFilter controls filtering and pagination for FOIA request lists.
type RequestFilter struct {
	Status   model.RequestStatus
	AgencyID string
	Overdue  bool
	Query    string
	Page     int
	PageSize int
}

func (f RequestFilter) values() url.Values {
	v := url.Values{}
	if f.Status != "" {
		v.Set("status", string(f.Status))
	}
	if f.AgencyID != "" {
		v.Set("agency_id", f.AgencyID)
	}
	if f.Overdue {
		v.Set("overdue", "true")
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

// ListRequests retrieves a page of FOIA requests.
func (c *Client) ListRequests(
	ctx context.Context, filter RequestFilter,
) (Page[model.Request], error) {
	raw, err := c.GetRaw(ctx, "/requests", filter.values())
	if err != nil {
		return Page[model.Request]{}, err
	}
	return DecodePage[model.Request](raw)
}

// GetRequest retrieves a single FOIA request by ID.
func (c *Client) GetRequest(ctx context.Context, id string) (*model.Request, error) {
	var req model.Request
	if err := c.Get(ctx, "/requests/"+url.PathEscape(id), nil, &req); err != nil {
		return nil, fmt.Errorf("fetching request %s: %w", id, err)
	}
	return &req, nil
}

// CreateRequest drafts a new FOIA request.
func (c *Client) CreateRequest(
	ctx context.Context, req model.Request,
) (*model.Request, error) {
	var created model.Request
	if err := c.Post(ctx, "/requests", req, &created); err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	return &created, nil
}

// SubmitRequest files a drafted request with its agency.
func (c *Client) SubmitRequest(ctx context.Context, id string) (*model.Request, error) {
	var submitted model.Request
	path := "/requests/" + url.PathEscape(id) + "/submit"
	if err := c.Post(ctx, path, nil, &submitted); err != nil {
		return nil, fmt.Errorf("submitting request %s: %w", id, err)
	}
	return &submitted, nil
}

// BatchSubmitRequests files several drafted requests at once and
// returns the per-request results.
func (c *Client) BatchSubmitRequests(
	ctx context.Context, ids []string,
) ([]model.Request, error) {
	body := struct {
		IDs []string `json:"ids"`
	}{IDs: ids}

	var result struct {
		Submitted []model.Request `json:"submitted"`
	}
	if err := c.Post(ctx, "/requests/batch-submit", body, &result); err != nil {
		return nil, fmt.Errorf("batch submitting %d requests: %w", len(ids), err)
	}
	return result.Submitted, nil
}
