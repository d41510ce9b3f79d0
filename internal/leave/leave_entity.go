package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_company_status"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`

	RequestNumber string `gorm:"type:varchar(20);not null;uniqueIndex:uq_leave_requests_number"`

	Category      string    `gorm:"type:varchar(30);not null;default:'ANNUAL'"`
	StartDate     time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate       time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	TotalDays     int       `gorm:"type:int;not null;default:1"`
	Justification string    `gorm:"type:text"`
	HasAttachment bool      `gorm:"not null;default:false"`

	Status string `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_company_status"`

	// Pipeline outcome, frozen at evaluation time.
	DecisionEngine      string `gorm:"type:varchar(20)"`
	DecisionExplanation string `gorm:"type:text"`
	Confidence          int    `gorm:"type:int;not null;default:0"`

	// Manual review override.
	ReviewedBy    *uuid.UUID `gorm:"type:uuid"`
	ReviewComment *string    `gorm:"type:text"`
	ReviewedAt    *time.Time

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	DecidedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leave_requests_deleted_at"`
}

func (LeaveRequest) TableName() string { return "leave_requests" }
