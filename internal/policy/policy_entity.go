package policy

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeavePolicy is the per-company tuning of the decision pipeline. Exactly one
// active row per company; reads fall back to defaults when none exists.
type LeavePolicy struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_policies_company"`

	AutoApproveMin         int  `gorm:"type:int;not null;default:80"`
	AutoRejectMax          int  `gorm:"type:int;not null;default:30"`
	SoftFlagBlocksApproval bool `gorm:"not null;default:true"`

	AllowNegativeBalance       bool    `gorm:"not null;default:false"`
	PastStartGraceDays         int     `gorm:"type:int;not null;default:1"`
	LongLeaveThresholdDays     int     `gorm:"type:int;not null;default:5"`
	MinAdvanceDaysForLongLeave int     `gorm:"type:int;not null;default:7"`
	MaxConsecutiveLeaveDays    int     `gorm:"type:int;not null;default:15"`
	MaxUnplannedLeaves30Days   int     `gorm:"type:int;not null;default:3"`
	MaxLeaves90Days            int     `gorm:"type:int;not null;default:10"`
	MaxPatternScore            float64 `gorm:"type:numeric(3,2);not null;default:0.7"`
	MedicalProofAfterDays      int     `gorm:"type:int;not null;default:2"`
	HistoryWindowDays          int     `gorm:"type:int;not null;default:180"`

	// Comma-separated category codes; empty means none.
	ReasonOptionalCategories string `gorm:"type:varchar(200);not null;default:''"`
	BalanceExemptCategories  string `gorm:"type:varchar(200);not null;default:'UNPAID'"`

	UpdatedBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leave_policies_deleted_at"`
}

func (LeavePolicy) TableName() string { return "leave_policies" }

// BlackoutPeriod is a company-wide no-leave window enforced as a hard rule.
type BlackoutPeriod struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_blackout_periods_company"`

	Name      string    `gorm:"type:varchar(100);not null"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_blackout_periods_deleted_at"`
}

func (BlackoutPeriod) TableName() string { return "blackout_periods" }
