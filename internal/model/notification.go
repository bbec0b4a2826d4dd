package model

import "time"

// Notification represents an alert surfaced to the user about activity in
// the records workflow (scan hits, agency responses, video publishes).
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id"`

	// Type is the event-type tag that produced this notification
	// (e.g. "foia_response_received", "video_published").
	Type string `json:"type"`

	// Message is the human-readable notification text.
	Message string `json:"message"`

	// Read indicates whether the user has seen this notification.
	Read bool `json:"read"`

	// Link is an optional in-app destination ("requests/<id>",
	// "videos/<id>"); empty when the notification has no target.
	Link string `json:"link,omitempty"`

	// CreatedAt is when this notification was generated.
	CreatedAt time.Time `json:"created_at"`
}
