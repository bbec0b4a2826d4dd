package model

import "time"

// Article is a scanned news article that may prompt a FOIA request.
type Article struct {
	// ID is the unique identifier for this article.
	ID string `json:"id"`

	// Title is the article headline.
	Title string `json:"title"`

	// URL is the canonical article link.
	URL string `json:"url"`

	// Outlet is the publication that ran the article.
	Outlet string `json:"outlet"`

	// MatchedTerms are the scan keywords that flagged this article.
	MatchedTerms []string `json:"matched_terms,omitempty"`

	// Reviewed indicates a human has triaged the scan hit.
	Reviewed bool `json:"reviewed"`

	PublishedAt time.Time `json:"published_at"`
	ScannedAt   time.Time `json:"scanned_at"`
}
