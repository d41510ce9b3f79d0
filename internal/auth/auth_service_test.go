package auth_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jaytishah/AI-leave-approval-assistant/internal/auth"
	autherrors "github.com/jaytishah/AI-leave-approval-assistant/internal/auth/errors"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/domain"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/employee"
	employeeerrors "github.com/jaytishah/AI-leave-approval-assistant/internal/employee/errors"
)

type fakeAuthRepository struct {
	users   map[string]*auth.User
	created []*auth.User
}

func newFakeAuthRepository() *fakeAuthRepository {
	return &fakeAuthRepository{users: map[string]*auth.User{}}
}

func (f *fakeAuthRepository) Create(ctx context.Context, user *auth.User) error {
	if _, exists := f.users[user.Email]; exists {
		return gorm.ErrDuplicatedKey
	}
	f.users[user.Email] = user
	f.created = append(f.created, user)
	return nil
}

func (f *fakeAuthRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeRBAC struct {
	ensured     []string
	assigned    []string
	defaultRole string
}

func (f *fakeRBAC) LoadCompanyPolicy(companyID string) error { return nil }

func (f *fakeRBAC) Enforce(req domain.EnforceRequest) (bool, error) { return true, nil }

func (f *fakeRBAC) EnsureCompanyDefaults(companyID string) error {
	f.ensured = append(f.ensured, companyID)
	return nil
}

func (f *fakeRBAC) AssignDefaultRole(companyID, employeeID string) (string, error) {
	f.assigned = append(f.assigned, employeeID)
	if f.defaultRole == "" {
		return "EMPLOYEE", nil
	}
	return f.defaultRole, nil
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

type fakeEmployeeRepo struct {
	employees map[string]*employee.Employee
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) FindOptionsByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	if e, ok := f.employees[id]; ok && e.CompanyID.String() == companyID {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) Delete(ctx context.Context, companyID, id string) error { return nil }

func TestAuthService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	ctx := context.Background()
	companyID := uuid.New()
	employeeID := uuid.New()

	hashed, err := bcrypt.GenerateFromPassword([]byte("correct horse battery"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := newFakeAuthRepository()
	repo.users["jane@example.com"] = &auth.User{
		ID:         uuid.New(),
		CompanyID:  companyID,
		EmployeeID: &employeeID,
		Email:      "jane@example.com",
		Name:       "Jane Smith",
		Password:   string(hashed),
		Role:       "HR",
	}

	svc := auth.NewService(repo, &fakeRBAC{}, &fakeEmployeeRepo{})

	t.Run("valid credentials", func(t *testing.T) {
		access, refresh, resp, err := svc.Login(ctx, "jane@example.com", "correct horse battery")

		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, "jane@example.com", resp.Email)
		assert.Equal(t, "HR", resp.Role)
		assert.Equal(t, employeeID.String(), resp.EmployeeID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, "jane@example.com", "wrong")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, _, err := svc.Login(ctx, "nobody@example.com", "whatever")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_Register(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	ctx := context.Background()
	companyID := uuid.New()
	employeeID := uuid.New()

	empRepo := &fakeEmployeeRepo{employees: map[string]*employee.Employee{
		employeeID.String(): {ID: employeeID, CompanyID: companyID},
	}}

	t.Run("first member becomes admin", func(t *testing.T) {
		repo := newFakeAuthRepository()
		rbacSvc := &fakeRBAC{defaultRole: "ADMIN"}
		svc := auth.NewService(repo, rbacSvc, empRepo)

		resp, err := svc.Register(ctx, auth.RegisterRequest{
			CompanyID:  companyID.String(),
			EmployeeID: employeeID.String(),
			Email:      "founder@example.com",
			Name:       "First Founder",
			Password:   "long enough password",
		})

		require.NoError(t, err)
		assert.Equal(t, "ADMIN", resp.Role)
		assert.Equal(t, []string{companyID.String()}, rbacSvc.ensured)
		assert.Equal(t, []string{employeeID.String()}, rbacSvc.assigned)
		require.Len(t, repo.created, 1)
		assert.NotEqual(t, "long enough password", repo.created[0].Password)
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc := auth.NewService(newFakeAuthRepository(), &fakeRBAC{}, empRepo)

		_, err := svc.Register(ctx, auth.RegisterRequest{
			CompanyID:  companyID.String(),
			EmployeeID: uuid.New().String(),
			Email:      "ghost@example.com",
			Name:       "No Employee",
			Password:   "long enough password",
		})
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := newFakeAuthRepository()
		svc := auth.NewService(repo, &fakeRBAC{}, empRepo)

		req := auth.RegisterRequest{
			CompanyID:  companyID.String(),
			EmployeeID: employeeID.String(),
			Email:      "dup@example.com",
			Name:       "Dup User",
			Password:   "long enough password",
		}
		_, err := svc.Register(ctx, req)
		require.NoError(t, err)

		_, err = svc.Register(ctx, req)
		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	ctx := context.Background()
	companyID := uuid.New()
	employeeID := uuid.New()

	repo := newFakeAuthRepository()
	user := &auth.User{
		ID:         uuid.New(),
		CompanyID:  companyID,
		EmployeeID: &employeeID,
		Email:      "jane@example.com",
		Name:       "Jane Smith",
		Password:   "irrelevant",
		Role:       "EMPLOYEE",
	}
	repo.users[user.Email] = user

	svc := auth.NewService(repo, &fakeRBAC{}, &fakeEmployeeRepo{})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, _, _, err := svc.RefreshToken(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("round trip through login", func(t *testing.T) {
		hashed, err := bcrypt.GenerateFromPassword([]byte("correct horse battery"), bcrypt.DefaultCost)
		require.NoError(t, err)
		user.Password = string(hashed)

		_, refresh, _, err := svc.Login(ctx, "jane@example.com", "correct horse battery")
		require.NoError(t, err)

		newAccess, newRefresh, resp, err := svc.RefreshToken(ctx, refresh)
		require.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, user.Email, resp.Email)
	})
}
