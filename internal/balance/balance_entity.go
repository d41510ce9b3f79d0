package balance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveBalance is one employee's allocation for a single category and year.
// Pending days are held while a request awaits a decision and either convert
// to used days on approval or release on rejection/cancellation.
type LeaveBalance struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_balances_company"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_employee_category_year"`

	Category string `gorm:"type:varchar(30);not null;uniqueIndex:uq_leave_balances_employee_category_year"`
	Year     int    `gorm:"type:int;not null;uniqueIndex:uq_leave_balances_employee_category_year"`

	TotalDays   int `gorm:"type:int;not null;default:0"`
	UsedDays    int `gorm:"type:int;not null;default:0"`
	PendingDays int `gorm:"type:int;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leave_balances_deleted_at"`
}

func (LeaveBalance) TableName() string { return "leave_balances" }

func (b LeaveBalance) Remaining() int {
	return b.TotalDays - b.UsedDays - b.PendingDays
}

// Default yearly allocations seeded for new employees. UNPAID is tracked for
// reporting but never balance-checked.
var defaultAllocations = map[string]int{
	"ANNUAL": 20,
	"SICK":   10,
	"CASUAL": 6,
	"UNPAID": 0,
}
