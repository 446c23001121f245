package models

import "time"

// EventAction identifies a workflow transition recorded in the audit trail.
type EventAction string

const (
	EventCreated  EventAction = "created"
	EventApproved EventAction = "approved"
	EventRejected EventAction = "rejected"
	EventMerged   EventAction = "merged"
)

// ReviewEvent is one audit-trail entry for a branch's review workflow.
type ReviewEvent struct {
	ID        string
	Branch    string
	Base      string
	Action    EventAction
	Actor     string
	Notes     string
	CreatedAt time.Time
}
