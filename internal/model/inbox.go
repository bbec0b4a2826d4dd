package model

import "time"

// InboxMessage is an agency response email surfaced on the inbox page.
type InboxMessage struct {
	// ID is a stable local identifier for this message.
	ID string `json:"id"`

	// From is the sender address.
	From string `json:"from"`

	// Subject is the message subject line.
	Subject string `json:"subject"`

	// TrackingNumber is the FOIA reference matched in the subject,
	// empty when no known pattern matched.
	TrackingNumber string `json:"tracking_number,omitempty"`

	// Seen mirrors the mailbox seen flag.
	Seen bool `json:"seen"`

	ReceivedAt time.Time `json:"received_at"`
}
