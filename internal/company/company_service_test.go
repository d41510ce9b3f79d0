package company_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jaytishah/AI-leave-approval-assistant/internal/company"
	companyerrors "github.com/jaytishah/AI-leave-approval-assistant/internal/company/errors"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/domain"
)

type fakeCompanyRepository struct {
	byEmail map[string]*company.Company
	byID    map[uuid.UUID]*company.Company
}

func newFakeCompanyRepository() *fakeCompanyRepository {
	return &fakeCompanyRepository{
		byEmail: map[string]*company.Company{},
		byID:    map[uuid.UUID]*company.Company{},
	}
}

func (f *fakeCompanyRepository) Create(ctx context.Context, c *company.Company) error {
	f.byEmail[c.Email] = c
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return &company.Company{}, gorm.ErrRecordNotFound
}

func (f *fakeCompanyRepository) GetByEmail(ctx context.Context, email string) (*company.Company, error) {
	if c, ok := f.byEmail[email]; ok {
		return c, nil
	}
	return &company.Company{}, gorm.ErrRecordNotFound
}

type fakeRBAC struct {
	ensured []string
}

func (f *fakeRBAC) LoadCompanyPolicy(companyID string) error { return nil }

func (f *fakeRBAC) Enforce(req domain.EnforceRequest) (bool, error) { return true, nil }

func (f *fakeRBAC) EnsureCompanyDefaults(companyID string) error {
	f.ensured = append(f.ensured, companyID)
	return nil
}

func (f *fakeRBAC) AssignDefaultRole(companyID, employeeID string) (string, error) {
	return "EMPLOYEE", nil
}

func (f *fakeRBAC) AssignRoleByName(companyID, employeeID, roleName string) error { return nil }

func (f *fakeRBAC) ListRoles(companyID string) ([]domain.RoleResponse, error) { return nil, nil }

func (f *fakeRBAC) GetRole(id string) (domain.RoleResponse, error) {
	return domain.RoleResponse{}, nil
}

func (f *fakeRBAC) CreateRole(companyID string, req domain.CreateRoleRequest) (domain.RoleResponse, error) {
	return domain.RoleResponse{}, nil
}

func (f *fakeRBAC) UpdateRole(id string, req domain.UpdateRoleRequest) (domain.RoleResponse, error) {
	return domain.RoleResponse{}, nil
}

func (f *fakeRBAC) DeleteRole(id string) error { return nil }

func (f *fakeRBAC) ListPermissions() ([]domain.PermissionResponse, error) { return nil, nil }

func TestCompanyService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates company and seeds role catalog", func(t *testing.T) {
		repo := newFakeCompanyRepository()
		rbacSvc := &fakeRBAC{}
		svc := company.NewService(repo, rbacSvc)

		res, err := svc.Create(ctx, company.CreateCompanyRequest{
			Name:  "Acme Corp",
			Email: "hr@acme.example",
		})

		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", res.Name)
		assert.True(t, res.IsActive)
		assert.Equal(t, []string{res.ID}, rbacSvc.ensured)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		repo := newFakeCompanyRepository()
		svc := company.NewService(repo, &fakeRBAC{})

		_, err := svc.Create(ctx, company.CreateCompanyRequest{Name: "Acme", Email: "hr@acme.example"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, company.CreateCompanyRequest{Name: "Acme Again", Email: "hr@acme.example"})
		assert.ErrorIs(t, err, companyerrors.ErrCompanyAlreadyExists)
	})
}

func TestCompanyService_GetByID(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCompanyRepository()
	svc := company.NewService(repo, &fakeRBAC{})

	created, err := svc.Create(ctx, company.CreateCompanyRequest{Name: "Acme", Email: "hr@acme.example"})
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		res, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Name, res.Name)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := svc.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, companyerrors.ErrInvalidCompanyID)
	})
}
