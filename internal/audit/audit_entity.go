package audit

import (
	"time"

	"github.com/google/uuid"
)

// DecisionAudit is one immutable record per evaluation or human override.
// Stage snapshots are stored as raw JSON so the trail survives schema drift
// in the pipeline types.
type DecisionAudit struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null;index:idx_decision_audits_company"`
	LeaveRequestID uuid.UUID `gorm:"type:uuid;not null;index:idx_decision_audits_request"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;not null"`

	Action      string `gorm:"type:varchar(20);not null"`
	Engine      string `gorm:"type:varchar(20);not null"`
	Explanation string `gorm:"type:text"`
	Confidence  int    `gorm:"type:int;not null;default:0"`

	ScreeningSnapshot []byte `gorm:"type:jsonb"`
	RulesSnapshot     []byte `gorm:"type:jsonb"`
	AdvisorySnapshot  []byte `gorm:"type:jsonb"`
	AdvisoryError     string `gorm:"type:text"`

	// ActorID is set only for manual review overrides.
	ActorID *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
}

func (DecisionAudit) TableName() string { return "decision_audits" }
