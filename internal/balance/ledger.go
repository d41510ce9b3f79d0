package balance

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	balanceerrors "github.com/jaytishah/AI-leave-approval-assistant/internal/balance/errors"
)

// Ledger moves days between the pending and used buckets inside a caller-owned
// transaction. The leave service drives it so request state and balance state
// commit atomically.
type Ledger struct {
	repo Repository
}

func NewLedger(repo Repository) *Ledger {
	return &Ledger{repo: repo}
}

// Hold reserves days as pending. With allowNegative the remaining check is
// skipped but the reservation is still recorded.
func (l *Ledger) Hold(ctx context.Context, tx *sql.Tx, companyID, employeeID, category string, year, days int, allowNegative bool) error {
	b, err := l.find(ctx, tx, companyID, employeeID, category, year)
	if err != nil {
		return err
	}
	if !allowNegative && days > b.Remaining() {
		return balanceerrors.ErrInsufficientBalance
	}
	b.PendingDays += days
	return l.repo.WithTx(tx).Update(ctx, b)
}

// Commit converts held days into used days on approval.
func (l *Ledger) Commit(ctx context.Context, tx *sql.Tx, companyID, employeeID, category string, year, days int) error {
	b, err := l.find(ctx, tx, companyID, employeeID, category, year)
	if err != nil {
		return err
	}
	b.PendingDays -= days
	if b.PendingDays < 0 {
		b.PendingDays = 0
	}
	b.UsedDays += days
	return l.repo.WithTx(tx).Update(ctx, b)
}

// Release frees held days on rejection or cancellation.
func (l *Ledger) Release(ctx context.Context, tx *sql.Tx, companyID, employeeID, category string, year, days int) error {
	b, err := l.find(ctx, tx, companyID, employeeID, category, year)
	if err != nil {
		return err
	}
	b.PendingDays -= days
	if b.PendingDays < 0 {
		b.PendingDays = 0
	}
	return l.repo.WithTx(tx).Update(ctx, b)
}

// Refund returns already-used days, for approved requests cancelled before
// their start date.
func (l *Ledger) Refund(ctx context.Context, tx *sql.Tx, companyID, employeeID, category string, year, days int) error {
	b, err := l.find(ctx, tx, companyID, employeeID, category, year)
	if err != nil {
		return err
	}
	b.UsedDays -= days
	if b.UsedDays < 0 {
		b.UsedDays = 0
	}
	return l.repo.WithTx(tx).Update(ctx, b)
}

func (l *Ledger) find(ctx context.Context, tx *sql.Tx, companyID, employeeID, category string, year int) (*LeaveBalance, error) {
	b, err := l.repo.WithTx(tx).FindForUpdate(ctx, companyID, employeeID, category, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, balanceerrors.ErrBalanceNotFound
		}
		return nil, err
	}
	return b, nil
}
