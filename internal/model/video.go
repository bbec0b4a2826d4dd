package model

import "time"

// VideoStatus is the production pipeline state of a video.
type VideoStatus string

const (
	VideoRawFootage VideoStatus = "raw_footage"
	VideoEditing    VideoStatus = "editing"
	VideoReview     VideoStatus = "review"
	VideoScheduled  VideoStatus = "scheduled"
	VideoPublished  VideoStatus = "published"
)

// Video represents one item in the production pipeline, from raw footage
// through publication.
type Video struct {
	// ID is the unique identifier for this video.
	ID string `json:"id"`

	// Title is the working or published title.
	Title string `json:"title"`

	// Status is the pipeline stage.
	Status VideoStatus `json:"status"`

	// RequestID links to the FOIA request whose records the video covers.
	RequestID string `json:"request_id,omitempty"`

	// Editor is the staff member currently responsible for the video.
	Editor string `json:"editor,omitempty"`

	// DurationSec is the cut length in seconds, zero until an edit exists.
	DurationSec int `json:"duration_sec,omitempty"`

	// Views is the platform view count after publication.
	Views int64 `json:"views"`

	// RevenueCents is attributed revenue in cents after publication.
	RevenueCents int64 `json:"revenue_cents"`

	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
