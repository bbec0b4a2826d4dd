package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/foiadesk/foiadesk/internal/model"
)

// AgencyFilter controls filtering and pagination for agency lists.
type AgencyFilter struct {
	Jurisdiction string
	Query        string
	Page         int
	PageSize     int
}

func (f AgencyFilter) values() url.Values {
	v := url.Values{}
	if f.Jurisdiction != "" {
		v.Set("jurisdiction", f.Jurisdiction)
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

// ListAgencies retrieves a page of agencies.
func (c *Client) ListAgencies(
	ctx context.Context, filter AgencyFilter,
) (Page[model.Agency], error) {
	raw, err := c.GetRaw(ctx, "/agencies", filter.values())
	if err != nil {
		return Page[model.Agency]{}, err
	}
	return DecodePage[model.Agency](raw)
}

// GetAgency retrieves a single agency by ID.
func (c *Client) GetAgency(ctx context.Context, id string) (*model.Agency, error) {
	var agency model.Agency
	if err := c.Get(ctx, "/agencies/"+url.PathEscape(id), nil, &agency); err != nil {
		return nil, fmt.Errorf("fetching agency %s: %w", id, err)
	}
	return &agency, nil
}

// CreateAgency registers a new agency.
func (c *Client) CreateAgency(
	ctx context.Context, agency model.Agency,
) (*model.Agency, error) {
	var created model.Agency
	if err := c.Post(ctx, "/agencies", agency, &created); err != nil {
		return nil, fmt.Errorf("creating agency: %w", err)
	}
	return &created, nil
}

// UpdateAgency updates an existing agency.
func (c *Client) UpdateAgency(
	ctx context.Context, agency model.Agency,
) (*model.Agency, error) {
	var updated model.Agency
	path := "/agencies/" + url.PathEscape(agency.ID)
	if err := c.Put(ctx, path, agency, &updated); err != nil {
		return nil, fmt.Errorf("updating agency %s: %w", agency.ID, err)
	}
	return &updated, nil
}
