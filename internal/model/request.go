package model

import "time"

// RequestStatus is the lifecycle state of a FOIA request.
type RequestStatus string

const (
	RequestDraft        RequestStatus = "draft"
	RequestSubmitted    RequestStatus = "submitted"
	RequestAcknowledged RequestStatus = "acknowledged"
	RequestProcessing   RequestStatus = "processing"
	RequestResponded    RequestStatus = "response_received"
	RequestFulfilled    RequestStatus = "fulfilled"
	RequestDenied       RequestStatus = "denied"
	RequestAppealed     RequestStatus = "appealed"
	RequestClosed       RequestStatus = "closed"
)

// Request represents a single FOIA request tracked through its lifecycle.
type Request struct {
	// ID is the unique identifier for this request.
	ID string `json:"id"`

	// TrackingNumber is the agency-assigned reference (e.g. "F-2026-01441").
	// Empty until the agency acknowledges the request.
	TrackingNumber string `json:"tracking_number"`

	// AgencyID links to the agency this request was filed against.
	AgencyID string `json:"agency_id"`

	// AgencyName is denormalized for list rendering.
	AgencyName string `json:"agency_name"`

	// Subject is the short description of the records sought.
	Subject string `json:"subject"`

	// Body is the full request text.
	Body string `json:"body,omitempty"`

	// Status is the current lifecycle state.
	Status RequestStatus `json:"status"`

	// ArticleID links to the news article that prompted this request, if any.
	ArticleID string `json:"article_id,omitempty"`

	// EstimatedFee is the agency's quoted processing fee in cents, if any.
	EstimatedFee int64 `json:"estimated_fee,omitempty"`

	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Overdue reports whether the request has passed its statutory due date
// without reaching a terminal state.
func (r Request) Overdue(now time.Time) bool {
	if r.DueAt == nil {
		return false
	}
	switch r.Status {
	case RequestFulfilled, RequestDenied, RequestClosed:
		return false
	}
	return now.After(*r.DueAt)
}
