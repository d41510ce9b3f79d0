package decision

import "time"

// Screening outcomes. A screening verdict is produced fresh per evaluation and
// is never persisted beyond the audit trail.
type ScreeningOutcome string

const (
	ScreeningPass   ScreeningOutcome = "PASS"
	ScreeningReject ScreeningOutcome = "REJECT"
)

// Screening reason codes, stable identifiers surfaced to callers and audits.
const (
	ReasonSecurityViolation = "security_violation"
	ReasonGibberish         = "gibberish"
	ReasonTooShort          = "too_short"
	ReasonTooFewWords       = "too_few_words"
	ReasonTooManyWords      = "too_many_words"
)

type ScreeningVerdict struct {
	Outcome     ScreeningOutcome `json:"outcome"`
	Reason      string           `json:"reason,omitempty"`
	Explanation string           `json:"explanation,omitempty"`
	Flags       []string         `json:"flags,omitempty"`
}

// Rule severities. A single HARD violation is terminal; SOFT violations carry
// forward as risk signals into the combiner.
type Severity string

const (
	SeverityHard Severity = "HARD"
	SeveritySoft Severity = "SOFT"
)

type RuleViolation struct {
	RuleID   string   `json:"rule_id"`
	Severity Severity `json:"severity"`
	Detail   string   `json:"detail"`
}

type RuleOutcome string

const (
	RulesPass       RuleOutcome = "PASS"
	RulesSoftFlag   RuleOutcome = "SOFT_FLAG"
	RulesHardReject RuleOutcome = "HARD_REJECT"
)

type RuleVerdict struct {
	Outcome    RuleOutcome     `json:"outcome"`
	Violations []RuleViolation `json:"violations,omitempty"`
}

func (v RuleVerdict) HardViolations() []RuleViolation {
	return v.violationsBySeverity(SeverityHard)
}

func (v RuleVerdict) SoftViolations() []RuleViolation {
	return v.violationsBySeverity(SeveritySoft)
}

func (v RuleVerdict) violationsBySeverity(s Severity) []RuleViolation {
	var out []RuleViolation
	for _, violation := range v.Violations {
		if violation.Severity == s {
			out = append(out, violation)
		}
	}
	return out
}

// Recommended actions the advisory oracle may return.
const (
	AdvisoryApprove      = "APPROVE"
	AdvisoryReject       = "REJECT"
	AdvisoryManualReview = "MANUAL_REVIEW"
)

// AdvisoryOpinion is the oracle's structured opinion. It is untrusted input:
// the combiner always tempers it with deterministic signals.
type AdvisoryOpinion struct {
	ValidityScore     int      `json:"validity_score"`
	RiskFlags         []string `json:"risk_flags,omitempty"`
	RecommendedAction string   `json:"recommended_action"`
	Rationale         string   `json:"rationale"`
	ReasonCategory    string   `json:"reason_category,omitempty"`
}

// Terminal actions of one evaluation.
type Action string

const (
	ActionApproved      Action = "APPROVED"
	ActionRejected      Action = "REJECTED"
	ActionPendingReview Action = "PENDING_REVIEW"
)

// Engine labels record which stage produced the terminal call, for audit.
const (
	EngineScreening = "screening"
	EngineRules     = "rules"
	EngineAIRules   = "ai+rules"
	EngineManual    = "manual"
)

// Decision is immutable once produced; a human override later goes through the
// manual review path, never by mutating this value.
type Decision struct {
	Action      Action `json:"action"`
	Engine      string `json:"engine"`
	Explanation string `json:"explanation"`
	Confidence  int    `json:"confidence"`
}

// Request is the pipeline's view of a submitted leave request.
type Request struct {
	RequestID     string
	EmployeeID    string
	Category      string
	StartDate     time.Time
	EndDate       time.Time
	Days          int
	Justification string
	HasAttachment bool
}

type CategoryBalance struct {
	Total     int `json:"total"`
	Used      int `json:"used"`
	Pending   int `json:"pending"`
	Remaining int `json:"remaining"`
}

type HistoryEntry struct {
	Category    string    `json:"category"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Days        int       `json:"days"`
	Outcome     string    `json:"outcome"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Risk levels derived from aggregate history.
const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

type AggregateStats struct {
	UnplannedLast30Days    int     `json:"unplanned_leaves_last_30_days"`
	TotalLast90Days        int     `json:"total_leaves_last_90_days"`
	MondayStartsLast90Days int     `json:"monday_leaves_last_90_days"`
	FridayStartsLast90Days int     `json:"friday_leaves_last_90_days"`
	PatternScore           float64 `json:"monday_friday_pattern_score"`
	ConsecutiveStreakDays  int     `json:"consecutive_leave_streak_days"`
	AverageDurationDays    float64 `json:"average_duration_days"`
	MostUsedCategory       string  `json:"most_used_category,omitempty"`
	RiskLevel              string  `json:"risk_level"`
}

// EmployeeContext is read-only input supplied by the persistence collaborator.
type EmployeeContext struct {
	Balances map[string]CategoryBalance
	History  []HistoryEntry
	Stats    AggregateStats
}
