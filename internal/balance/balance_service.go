package balance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	balanceerrors "github.com/jaytishah/AI-leave-approval-assistant/internal/balance/errors"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/decision"
)

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	GetEmployeeBalances(ctx context.Context, companyID, employeeID string, year int) ([]BalanceResponse, error)
	Adjust(ctx context.Context, companyID string, req AdjustBalanceRequest) (BalanceResponse, error)
	SeedDefaults(ctx context.Context, companyID, employeeID string, year int) error
	// Snapshot feeds the decision pipeline's employee context.
	Snapshot(ctx context.Context, companyID, employeeID string, year int) (map[string]decision.CategoryBalance, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) GetEmployeeBalances(ctx context.Context, companyID, employeeID string, year int) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, balanceerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, balanceerrors.ErrInvalidEmployeeID
	}
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	balances, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID, year)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(balances), nil
}

func (s *service) Adjust(ctx context.Context, companyID string, req AdjustBalanceRequest) (BalanceResponse, error) {
	s.logger.Debug("adjust balance requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("category", req.Category),
		zap.Int("year", req.Year),
		zap.Int("total_days", req.TotalDays),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("adjust balance begin tx failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b, err := qtx.FindForUpdate(ctx, companyID, req.EmployeeID, req.Category, req.Year)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, err
		}
		b = &LeaveBalance{
			ID:         uuid.New(),
			CompanyID:  companyUUID,
			EmployeeID: employeeUUID,
			Category:   req.Category,
			Year:       req.Year,
			TotalDays:  req.TotalDays,
		}
		if err := qtx.Create(ctx, b); err != nil {
			return BalanceResponse{}, mapRepositoryError(err)
		}
	} else {
		if req.TotalDays < b.UsedDays+b.PendingDays {
			return BalanceResponse{}, balanceerrors.ErrAllocationBelowCommitted
		}
		b.TotalDays = req.TotalDays
		if err := qtx.Update(ctx, b); err != nil {
			return BalanceResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("adjust balance commit failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	s.logger.Info("adjust balance success",
		zap.String("employee_id", req.EmployeeID),
		zap.String("category", req.Category),
		zap.Int("total_days", b.TotalDays),
	)

	return mapToResponse(*b), nil
}

// SeedDefaults creates the default allocations for a new employee. Existing
// rows make it a no-op, so replayed events are safe.
func (s *service) SeedDefaults(ctx context.Context, companyID, employeeID string, year int) error {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return balanceerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return balanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	for category, total := range defaultAllocations {
		b := &LeaveBalance{
			ID:         uuid.New(),
			CompanyID:  companyUUID,
			EmployeeID: employeeUUID,
			Category:   category,
			Year:       year,
			TotalDays:  total,
		}
		if err := qtx.Create(ctx, b); err != nil {
			return mapRepositoryError(err)
		}
	}

	return tx.Commit()
}

func (s *service) Snapshot(ctx context.Context, companyID, employeeID string, year int) (map[string]decision.CategoryBalance, error) {
	balances, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID, year)
	if err != nil {
		return nil, err
	}

	out := make(map[string]decision.CategoryBalance, len(balances))
	for _, b := range balances {
		out[b.Category] = decision.CategoryBalance{
			Total:     b.TotalDays,
			Used:      b.UsedDays,
			Pending:   b.PendingDays,
			Remaining: b.Remaining(),
		}
	}
	return out, nil
}

func mapToResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		ID:          b.ID.String(),
		EmployeeID:  b.EmployeeID.String(),
		Category:    b.Category,
		Year:        b.Year,
		TotalDays:   b.TotalDays,
		UsedDays:    b.UsedDays,
		PendingDays: b.PendingDays,
		Remaining:   b.Remaining(),
	}
}

func mapToListResponse(balances []LeaveBalance) []BalanceResponse {
	res := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		res[i] = mapToResponse(b)
	}
	return res
}
