package model

import "time"

// Agency represents a government agency that FOIA requests are filed against.
type Agency struct {
	// ID is the unique identifier for this agency.
	ID string `json:"id"`

	// Name is the agency's full name.
	Name string `json:"name"`

	// Jurisdiction is "federal", "state", or "local".
	Jurisdiction string `json:"jurisdiction"`

	// ContactEmail is where requests and follow-ups are sent.
	ContactEmail string `json:"contact_email"`

	// Address is the mailing address used for paper filings.
	Address string `json:"address"`

	// AvgResponseDays is the server-computed average turnaround.
	AvgResponseDays float64 `json:"avg_response_days"`

	// RequestCount is how many requests have been filed against this agency.
	RequestCount int `json:"request_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
