package events

import "time"

const (
	LeaveDecisionTopic     = "hr.leave.decision.v1"
	LeaveDecisionFinalized = "leave.decision.finalized.v1"
)

// LeaveDecisionEvent is published through the outbox whenever a leave request
// reaches a terminal or review state, including human overrides.
type LeaveDecisionEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id"`
	RequestNumber string    `json:"request_number"`
	CompanyID     string    `json:"company_id"`
	EmployeeID    string    `json:"employee_id"`
	LeaveCategory string    `json:"leave_category"`
	Status        string    `json:"status"`
	Engine        string    `json:"decision_engine,omitempty"`
	Confidence    int       `json:"confidence,omitempty"`
	DecidedBy     string    `json:"decided_by,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
