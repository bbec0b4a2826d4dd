package api

import (
	"context"
	"fmt"
)

// Settings is the server-side workspace configuration exposed to the
// dashboard.
type Settings struct {
	// ScanKeywords drive the news scanner.
	ScanKeywords []string `json:"scan_keywords"`

	// ScanIntervalMin is how often the backend scans, in minutes.
	ScanIntervalMin int `json:"scan_interval_min"`

	// DefaultRequestTemplate is the boilerplate for new FOIA drafts.
	DefaultRequestTemplate string `json:"default_request_template"`

	// FollowUpDays is when to nudge agencies past their due date.
	FollowUpDays int `json:"follow_up_days"`
}

// GetSettings retrieves the workspace settings.
func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	var settings Settings
	if err := c.Get(ctx, "/settings", nil, &settings); err != nil {
		return nil, fmt.Errorf("fetching settings: %w", err)
	}
	return &settings, nil
}

// UpdateSettings replaces the workspace settings.
func (c *Client) UpdateSettings(ctx context.Context, settings Settings) error {
	if err := c.Put(ctx, "/settings", settings, nil); err != nil {
		return fmt.Errorf("updating settings: %w", err)
	}
	return nil
}

// Me describes the authenticated user; used to validate a credential at
// login time.
type Me struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// WhoAmI validates the current credential and returns the user it
// belongs to.
func (c *Client) WhoAmI(ctx context.Context) (*Me, error) {
	var me Me
	if err := c.Get(ctx, "/auth/me", nil, &me); err != nil {
		return nil, err
	}
	return &me, nil
}
