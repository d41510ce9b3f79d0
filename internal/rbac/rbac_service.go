package rbac

import (
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"

	"github.com/jaytishah/AI-leave-approval-assistant/internal/domain"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadCompanyPolicy(companyID string) error
	Enforce(req domain.EnforceRequest) (bool, error)

	// EnsureCompanyDefaults seeds the permission catalog and the EMPLOYEE, HR
	// and ADMIN roles for a company. Idempotent.
	EnsureCompanyDefaults(companyID string) error
	// AssignDefaultRole grants ADMIN to the company's first member and
	// EMPLOYEE to everyone after, returning the granted role name.
	AssignDefaultRole(companyID, employeeID string) (string, error)
	AssignRoleByName(companyID, employeeID, roleName string) error

	ListRoles(companyID string) ([]domain.RoleResponse, error)
	GetRole(id string) (domain.RoleResponse, error)
	CreateRole(companyID string, req domain.CreateRoleRequest) (domain.RoleResponse, error)
	UpdateRole(id string, req domain.UpdateRoleRequest) (domain.RoleResponse, error)
	DeleteRole(id string) error
	ListPermissions() ([]domain.PermissionResponse, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{repo: repo, enforcer: enforcer, logger: l}
}

func (s *service) LoadCompanyPolicy(companyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadCompanyPolicyUnlocked(companyID)
}

func (s *service) loadCompanyPolicyUnlocked(companyID string) error {
	s.enforcer.ClearPolicy()

	employeeRoles, err := s.repo.GetEmployeeRoles(companyID)
	if err != nil {
		return err
	}

	for _, er := range employeeRoles {
		if _, err := s.enforcer.AddGroupingPolicy(er.EmployeeID, er.RoleID, companyID); err != nil {
			return err
		}
	}

	rolePerms, err := s.repo.GetRolePermissions(companyID)
	if err != nil {
		return err
	}

	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(rp.RoleID, companyID, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	s.logger.Debug("company policy loaded",
		zap.String("company_id", companyID),
		zap.Int("employee_roles", len(employeeRoles)),
		zap.Int("role_permissions", len(rolePerms)),
	)
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Policies are reloaded per enforce so role changes apply immediately.
	if err := s.loadCompanyPolicyUnlocked(req.CompanyID); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(req.EmployeeID, req.CompanyID, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("enforce failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("enforce result",
		zap.String("employee_id", req.EmployeeID),
		zap.String("company_id", req.CompanyID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) EnsureCompanyDefaults(companyID string) error {
	permIDs := make(map[string]string, len(allPermissions))
	for _, spec := range allPermissions {
		perm := &PermissionRow{
			Resource: spec.Resource,
			Action:   spec.Action,
			Label:    spec.Label,
			Category: spec.Category,
		}
		if err := s.repo.FindOrCreatePermission(perm); err != nil {
			return err
		}
		permIDs[spec.Resource+":"+spec.Action] = perm.ID
	}

	for roleName, specs := range defaultRolePermissions {
		role, err := s.repo.GetRoleByName(companyID, roleName)
		if err != nil {
			role = &RoleRow{CompanyID: companyID, Name: roleName, Description: "Default " + roleName + " role"}
			if err := s.repo.CreateRole(role); err != nil {
				return err
			}
		}

		ids := make([]string, 0, len(specs))
		for _, spec := range specs {
			if id, ok := permIDs[spec.Resource+":"+spec.Action]; ok {
				ids = append(ids, id)
			}
		}
		if err := s.repo.UpdateRolePermissions(role.ID, ids); err != nil {
			return err
		}
	}

	s.logger.Info("company defaults ensured", zap.String("company_id", companyID))
	return nil
}

func (s *service) AssignDefaultRole(companyID, employeeID string) (string, error) {
	assigned, err := s.repo.CountAssignments(companyID)
	if err != nil {
		return "", err
	}

	roleName := RoleEmployee
	if assigned == 0 {
		roleName = RoleAdmin
	}
	if err := s.AssignRoleByName(companyID, employeeID, roleName); err != nil {
		return "", err
	}
	return roleName, nil
}

func (s *service) AssignRoleByName(companyID, employeeID, roleName string) error {
	role, err := s.repo.GetRoleByName(companyID, roleName)
	if err != nil {
		return err
	}
	return s.repo.AssignRole(employeeID, role.ID)
}

func (s *service) ListRoles(companyID string) ([]domain.RoleResponse, error) {
	roles, err := s.repo.ListRoles(companyID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.RoleResponse, 0, len(roles))
	for _, role := range roles {
		resp, err := s.toRoleResponse(role)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *service) GetRole(id string) (domain.RoleResponse, error) {
	role, err := s.repo.GetRoleByID(id)
	if err != nil {
		return domain.RoleResponse{}, err
	}
	return s.toRoleResponse(*role)
}

func (s *service) CreateRole(companyID string, req domain.CreateRoleRequest) (domain.RoleResponse, error) {
	role := &RoleRow{
		CompanyID:   companyID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.CreateRole(role); err != nil {
		return domain.RoleResponse{}, err
	}
	if len(req.Permissions) > 0 {
		if err := s.repo.UpdateRolePermissions(role.ID, req.Permissions); err != nil {
			return domain.RoleResponse{}, err
		}
	}
	return s.toRoleResponse(*role)
}

func (s *service) UpdateRole(id string, req domain.UpdateRoleRequest) (domain.RoleResponse, error) {
	role, err := s.repo.GetRoleByID(id)
	if err != nil {
		return domain.RoleResponse{}, err
	}

	if req.Name != "" {
		role.Name = req.Name
	}
	if req.Description != "" {
		role.Description = req.Description
	}
	if err := s.repo.UpdateRole(role); err != nil {
		return domain.RoleResponse{}, err
	}
	if req.Permissions != nil {
		if err := s.repo.UpdateRolePermissions(role.ID, req.Permissions); err != nil {
			return domain.RoleResponse{}, err
		}
	}
	return s.toRoleResponse(*role)
}

func (s *service) DeleteRole(id string) error {
	return s.repo.DeleteRole(id)
}

func (s *service) ListPermissions() ([]domain.PermissionResponse, error) {
	perms, err := s.repo.ListPermissions()
	if err != nil {
		return nil, err
	}

	out := make([]domain.PermissionResponse, 0, len(perms))
	for _, p := range perms {
		out = append(out, domain.PermissionResponse{
			ID:       p.ID,
			Resource: p.Resource,
			Action:   p.Action,
			Label:    p.Label,
			Category: p.Category,
		})
	}
	return out, nil
}

func (s *service) toRoleResponse(role RoleRow) (domain.RoleResponse, error) {
	perms, err := s.repo.GetPermissionsByRoleID(role.ID)
	if err != nil {
		return domain.RoleResponse{}, err
	}

	names := make([]string, 0, len(perms))
	for _, p := range perms {
		names = append(names, p.Resource+":"+p.Action)
	}
	return domain.RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		Permissions: names,
	}, nil
}
