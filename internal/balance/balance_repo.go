package balance

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jaytishah/AI-leave-approval-assistant/internal/tenant"
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *LeaveBalance) error
	FindAllByEmployee(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error)
	FindForUpdate(ctx context.Context, companyID, employeeID, category string, year int) (*LeaveBalance, error)
	Update(ctx context.Context, b *LeaveBalance) error
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

func (r *repository) Create(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindAllByEmployee(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("year = ?", year).
		Order("category ASC").
		Find(&balances).Error
	return balances, err
}

// FindForUpdate locks the row so concurrent submissions against the same
// allocation serialize.
func (r *repository) FindForUpdate(ctx context.Context, companyID, employeeID, category string, year int) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("category = ?", category).
		Where("year = ?", year).
		First(&b).Error
	return &b, err
}

func (r *repository) Update(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Save(b).Error
}
