package balance

type AdjustBalanceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Category   string `json:"category" binding:"required,oneof=ANNUAL SICK CASUAL UNPAID"`
	Year       int    `json:"year" binding:"required,min=2000,max=2100"`
	TotalDays  int    `json:"total_days" binding:"min=0,max=366"`
}

type BalanceResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	Category    string `json:"category"`
	Year        int    `json:"year"`
	TotalDays   int    `json:"total_days"`
	UsedDays    int    `json:"used_days"`
	PendingDays int    `json:"pending_days"`
	Remaining   int    `json:"remaining_days"`
}
