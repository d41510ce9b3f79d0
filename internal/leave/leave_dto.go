package leave

type CreateLeaveRequest struct {
	Category      string `json:"category" binding:"required,oneof=ANNUAL SICK CASUAL UNPAID"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	Justification string `json:"justification"`
	HasAttachment bool   `json:"has_attachment"`
}

type ReviewLeaveRequest struct {
	Action  string `json:"action" binding:"required,oneof=APPROVE REJECT"`
	Comment string `json:"comment" binding:"required,max=1000"`
}

type LeaveResponse struct {
	ID            string `json:"id"`
	RequestNumber string `json:"request_number"`
	CompanyID     string `json:"company_id"`
	EmployeeID    string `json:"employee_id"`
	Category      string `json:"category"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	TotalDays     int    `json:"total_days"`
	Justification string `json:"justification"`
	HasAttachment bool   `json:"has_attachment"`
	Status        string `json:"status"`

	DecisionEngine      string `json:"decision_engine,omitempty"`
	DecisionExplanation string `json:"decision_explanation,omitempty"`
	Confidence          int    `json:"confidence"`

	ReviewedBy    *string `json:"reviewed_by,omitempty"`
	ReviewComment *string `json:"review_comment,omitempty"`
	ReviewedAt    *string `json:"reviewed_at,omitempty"`
	DecidedAt     *string `json:"decided_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

type AuditEntryResponse struct {
	ID            string `json:"id"`
	Action        string `json:"action"`
	Engine        string `json:"engine"`
	Explanation   string `json:"explanation"`
	Confidence    int    `json:"confidence"`
	Screening     string `json:"screening,omitempty"`
	Rules         string `json:"rules,omitempty"`
	Advisory      string `json:"advisory,omitempty"`
	AdvisoryError string `json:"advisory_error,omitempty"`
	ActorID       string `json:"actor_id,omitempty"`
	CreatedAt     string `json:"created_at"`
}
