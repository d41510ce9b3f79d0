package audit

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *DecisionAudit) error
	FindByRequest(ctx context.Context, companyID, leaveRequestID string) ([]DecisionAudit, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, a *DecisionAudit) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByRequest(ctx context.Context, companyID, leaveRequestID string) ([]DecisionAudit, error) {
	var audits []DecisionAudit
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("leave_request_id = ?", leaveRequestID).
		Order("created_at ASC").
		Find(&audits).Error
	return audits, err
}
