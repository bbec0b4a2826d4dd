package model

import "time"

// AuditEntry is one row of the server-side audit log.
type AuditEntry struct {
	// ID is the unique identifier for this entry.
	ID string `json:"id"`

	// Actor is the user or system component that performed the action.
	Actor string `json:"actor"`

	// Action is the machine-readable verb ("request.submit",
	// "video.publish", "settings.update").
	Action string `json:"action"`

	// TargetType and TargetID identify the affected entity.
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`

	// Detail is optional human-readable context.
	Detail string `json:"detail,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
