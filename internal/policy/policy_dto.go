package policy

type UpdatePolicyRequest struct {
	AutoApproveMin         *int  `json:"auto_approve_min" binding:"omitempty,min=0,max=100"`
	AutoRejectMax          *int  `json:"auto_reject_max" binding:"omitempty,min=0,max=100"`
	SoftFlagBlocksApproval *bool `json:"soft_flag_blocks_approval"`

	AllowNegativeBalance       *bool    `json:"allow_negative_balance"`
	PastStartGraceDays         *int     `json:"past_start_grace_days" binding:"omitempty,min=0,max=30"`
	LongLeaveThresholdDays     *int     `json:"long_leave_threshold_days" binding:"omitempty,min=1"`
	MinAdvanceDaysForLongLeave *int     `json:"min_advance_days_for_long_leave" binding:"omitempty,min=0"`
	MaxConsecutiveLeaveDays    *int     `json:"max_consecutive_leave_days" binding:"omitempty,min=1"`
	MaxUnplannedLeaves30Days   *int     `json:"max_unplanned_leaves_30_days" binding:"omitempty,min=0"`
	MaxLeaves90Days            *int     `json:"max_leaves_90_days" binding:"omitempty,min=0"`
	MaxPatternScore            *float64 `json:"max_pattern_score" binding:"omitempty,min=0,max=1"`
	MedicalProofAfterDays      *int     `json:"medical_proof_after_days" binding:"omitempty,min=0"`
	HistoryWindowDays          *int     `json:"history_window_days" binding:"omitempty,min=30,max=730"`

	ReasonOptionalCategories *string `json:"reason_optional_categories"`
	BalanceExemptCategories  *string `json:"balance_exempt_categories"`
}

type PolicyResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`

	AutoApproveMin         int  `json:"auto_approve_min"`
	AutoRejectMax          int  `json:"auto_reject_max"`
	SoftFlagBlocksApproval bool `json:"soft_flag_blocks_approval"`

	AllowNegativeBalance       bool    `json:"allow_negative_balance"`
	PastStartGraceDays         int     `json:"past_start_grace_days"`
	LongLeaveThresholdDays     int     `json:"long_leave_threshold_days"`
	MinAdvanceDaysForLongLeave int     `json:"min_advance_days_for_long_leave"`
	MaxConsecutiveLeaveDays    int     `json:"max_consecutive_leave_days"`
	MaxUnplannedLeaves30Days   int     `json:"max_unplanned_leaves_30_days"`
	MaxLeaves90Days            int     `json:"max_leaves_90_days"`
	MaxPatternScore            float64 `json:"max_pattern_score"`
	MedicalProofAfterDays      int     `json:"medical_proof_after_days"`
	HistoryWindowDays          int     `json:"history_window_days"`

	ReasonOptionalCategories string `json:"reason_optional_categories"`
	BalanceExemptCategories  string `json:"balance_exempt_categories"`

	Blackouts []BlackoutResponse `json:"blackout_periods"`
}

type CreateBlackoutRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type BlackoutResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}
