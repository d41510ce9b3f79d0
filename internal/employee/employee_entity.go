package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;index:idx_employees_company"`

	EmployeeNumber   string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_employees_number"`
	FullName         string    `gorm:"type:varchar(150);not null"`
	Email            string    `gorm:"type:varchar(150);not null;uniqueIndex:uq_employees_email"`
	Phone            string    `gorm:"type:varchar(30)"`
	HireDate         time.Time `gorm:"type:date;not null"`
	EmploymentStatus string    `gorm:"type:varchar(20);not null;default:'ACTIVE'"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_employees_deleted_at"`
}

func (Employee) TableName() string { return "employees" }
