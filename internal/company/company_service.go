package company

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	companyerrors "github.com/jaytishah/AI-leave-approval-assistant/internal/company/errors"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/rbac"
)

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error)
	GetByID(ctx context.Context, id string) (CompanyResponse, error)
}

type service struct {
	repo   Repository
	rbac   rbac.Service
	logger *zap.Logger
}

func NewService(repo Repository, rbacService rbac.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{repo: repo, rbac: rbacService, logger: l}
}

// Create onboards a company and seeds its role catalog so the first
// registration can immediately receive the ADMIN assignment.
func (s *service) Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error) {
	if existing, err := s.repo.GetByEmail(ctx, req.Email); err == nil && existing.ID != uuid.Nil {
		return CompanyResponse{}, companyerrors.ErrCompanyAlreadyExists
	}

	c := &Company{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return CompanyResponse{}, companyerrors.ErrCompanyAlreadyExists
	}

	if err := s.rbac.EnsureCompanyDefaults(c.ID.String()); err != nil {
		return CompanyResponse{}, err
	}

	s.logger.Info("company created",
		zap.String("company_id", c.ID.String()),
		zap.String("name", c.Name),
	)

	return mapToResponse(c), nil
}

func (s *service) GetByID(ctx context.Context, id string) (CompanyResponse, error) {
	companyID, err := uuid.Parse(id)
	if err != nil {
		return CompanyResponse{}, companyerrors.ErrInvalidCompanyID
	}

	c, err := s.repo.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompanyResponse{}, companyerrors.ErrCompanyNotFound
		}
		return CompanyResponse{}, err
	}

	return mapToResponse(c), nil
}

func mapToResponse(c *Company) CompanyResponse {
	return CompanyResponse{
		ID:       c.ID.String(),
		Name:     c.Name,
		Email:    c.Email,
		IsActive: c.IsActive,
	}
}
