package api

import (
	"encoding/json"
	"fmt"
)

// Page is a normalized page of list results.
type Page[T any] struct {
	Items    []T
	Total    int
	Page     int
	PageSize int
}

// pageEnvelope is the standard list response shape.
type pageEnvelope struct {
	Items    json.RawMessage `json:"items"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// DecodePage normalizes the two list shapes the backend produces: the
// `{items, total, page, page_size}` envelope and, on legacy endpoints,
// a bare JSON array. Bare arrays carry no paging metadata, so total is
// the item count and the page is forced to 1.
func DecodePage[T any](raw []byte) (Page[T], error) {
	var page Page[T]

	trimmed := firstNonSpace(raw)
	if trimmed == '[' {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return page, fmt.Errorf("parsing legacy list response: %w", err)
		}
		page.Items = items
		page.Total = len(items)
		page.Page = 1
		page.PageSize = len(items)
		return page, nil
	}

	var env pageEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return page, fmt.Errorf("parsing list envelope: %w", err)
	}
	if len(env.Items) > 0 {
		if err := json.Unmarshal(env.Items, &page.Items); err != nil {
			return page, fmt.Errorf("parsing list items: %w", err)
		}
	}
	page.Total = env.Total
	page.Page = env.Page
	page.PageSize = env.PageSize
	if page.Page < 1 {
		page.Page = 1
	}
	if page.Total < len(page.Items) {
		page.Total = len(page.Items)
	}
	return page, nil
}

// firstNonSpace returns the first non-whitespace byte of raw, or 0.
func firstNonSpace(raw []byte) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}
