package policy

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/jaytishah/AI-leave-approval-assistant/internal/tenant"
)

//go:generate mockgen -source=policy_repo.go -destination=mock/policy_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByCompany(ctx context.Context, companyID string) (*LeavePolicy, error)
	Upsert(ctx context.Context, p *LeavePolicy) error
	ListBlackouts(ctx context.Context, companyID string) ([]BlackoutPeriod, error)
	CreateBlackout(ctx context.Context, b *BlackoutPeriod) error
	DeleteBlackout(ctx context.Context, companyID, id string) (int64, error)
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

func (r *repository) FindByCompany(ctx context.Context, companyID string) (*LeavePolicy, error) {
	var p LeavePolicy
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&p).Error
	return &p, err
}

func (r *repository) Upsert(ctx context.Context, p *LeavePolicy) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) ListBlackouts(ctx context.Context, companyID string) ([]BlackoutPeriod, error) {
	var blackouts []BlackoutPeriod
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("start_date ASC").
		Find(&blackouts).Error
	return blackouts, err
}

func (r *repository) CreateBlackout(ctx context.Context, b *BlackoutPeriod) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) DeleteBlackout(ctx context.Context, companyID, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&BlackoutPeriod{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
