package rbac

import (
	"fmt"
	"testing"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jaytishah/AI-leave-approval-assistant/internal/domain"
)

type memoryRepo struct {
	roles       map[string]*RoleRow
	permissions map[string]*PermissionRow
	rolePerms   map[string][]string
	assignments []EmployeeRoleRow
	nextID      int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		roles:       map[string]*RoleRow{},
		permissions: map[string]*PermissionRow{},
		rolePerms:   map[string][]string{},
	}
}

func (m *memoryRepo) id() string {
	m.nextID++
	return fmt.Sprintf("id-%d", m.nextID)
}

func (m *memoryRepo) GetEmployeeRoles(companyID string) ([]EmployeeRoleRow, error) {
	var out []EmployeeRoleRow
	for _, a := range m.assignments {
		if role, ok := m.roles[a.RoleID]; ok && role.CompanyID == companyID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memoryRepo) GetRolePermissions(companyID string) ([]RolePermissionRow, error) {
	var out []RolePermissionRow
	for roleID, permIDs := range m.rolePerms {
		role, ok := m.roles[roleID]
		if !ok || role.CompanyID != companyID {
			continue
		}
		for _, pid := range permIDs {
			if p, ok := m.permissions[pid]; ok {
				out = append(out, RolePermissionRow{RoleID: roleID, Resource: p.Resource, Action: p.Action})
			}
		}
	}
	return out, nil
}

func (m *memoryRepo) AssignRole(employeeID, roleID string) error {
	for _, a := range m.assignments {
		if a.EmployeeID == employeeID && a.RoleID == roleID {
			return nil
		}
	}
	m.assignments = append(m.assignments, EmployeeRoleRow{EmployeeID: employeeID, RoleID: roleID})
	return nil
}

func (m *memoryRepo) CountAssignments(companyID string) (int64, error) {
	var count int64
	for _, a := range m.assignments {
		if role, ok := m.roles[a.RoleID]; ok && role.CompanyID == companyID {
			count++
		}
	}
	return count, nil
}

func (m *memoryRepo) ListRoles(companyID string) ([]RoleRow, error) {
	var out []RoleRow
	for _, r := range m.roles {
		if r.CompanyID == companyID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memoryRepo) GetRoleByID(id string) (*RoleRow, error) {
	if r, ok := m.roles[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryRepo) GetRoleByName(companyID, name string) (*RoleRow, error) {
	for _, r := range m.roles {
		if r.CompanyID == companyID && r.Name == name {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryRepo) CreateRole(role *RoleRow) error {
	role.ID = m.id()
	m.roles[role.ID] = role
	return nil
}

func (m *memoryRepo) UpdateRole(role *RoleRow) error {
	m.roles[role.ID] = role
	return nil
}

func (m *memoryRepo) DeleteRole(id string) error {
	delete(m.roles, id)
	return nil
}

func (m *memoryRepo) ListPermissions() ([]PermissionRow, error) {
	var out []PermissionRow
	for _, p := range m.permissions {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memoryRepo) FindOrCreatePermission(perm *PermissionRow) error {
	for _, p := range m.permissions {
		if p.Resource == perm.Resource && p.Action == perm.Action {
			*perm = *p
			return nil
		}
	}
	perm.ID = m.id()
	m.permissions[perm.ID] = perm
	return nil
}

func (m *memoryRepo) GetPermissionsByRoleID(roleID string) ([]PermissionRow, error) {
	var out []PermissionRow
	for _, pid := range m.rolePerms[roleID] {
		if p, ok := m.permissions[pid]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memoryRepo) UpdateRolePermissions(roleID string, permIDs []string) error {
	m.rolePerms[roleID] = permIDs
	return nil
}

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	modelText := `[request_definition]
r = sub, dom, obj, act

[policy_definition]
p = sub, dom, obj, act

[role_definition]
g = _, _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub, r.dom) && r.dom == p.dom && r.obj == p.obj && r.act == p.act
`

	m, err := model.NewModelFromString(modelText)
	require.NoError(t, err)

	e, err := casbin.NewEnforcer(m)
	require.NoError(t, err)

	return e
}

func TestRBACService_Enforce(t *testing.T) {
	repo := newMemoryRepo()
	service := NewService(repo, newTestEnforcer(t))

	require.NoError(t, service.EnsureCompanyDefaults("company-1"))
	_, err := service.AssignDefaultRole("company-1", "emp-admin")
	require.NoError(t, err)
	_, err = service.AssignDefaultRole("company-1", "emp-rank")
	require.NoError(t, err)

	t.Run("admin can review leave", func(t *testing.T) {
		allowed, err := service.Enforce(domain.EnforceRequest{
			EmployeeID: "emp-admin",
			CompanyID:  "company-1",
			Resource:   "leave",
			Action:     "review",
		})
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("employee can submit leave", func(t *testing.T) {
		allowed, err := service.Enforce(domain.EnforceRequest{
			EmployeeID: "emp-rank",
			CompanyID:  "company-1",
			Resource:   "leave",
			Action:     "create",
		})
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("employee cannot review leave", func(t *testing.T) {
		allowed, err := service.Enforce(domain.EnforceRequest{
			EmployeeID: "emp-rank",
			CompanyID:  "company-1",
			Resource:   "leave",
			Action:     "review",
		})
		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("no cross-company leakage", func(t *testing.T) {
		allowed, err := service.Enforce(domain.EnforceRequest{
			EmployeeID: "emp-admin",
			CompanyID:  "company-2",
			Resource:   "leave",
			Action:     "review",
		})
		assert.NoError(t, err)
		assert.False(t, allowed)
	})
}

func TestRBACService_AssignDefaultRole(t *testing.T) {
	repo := newMemoryRepo()
	service := NewService(repo, newTestEnforcer(t))

	require.NoError(t, service.EnsureCompanyDefaults("company-1"))

	first, err := service.AssignDefaultRole("company-1", "emp-1")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, first)

	second, err := service.AssignDefaultRole("company-1", "emp-2")
	require.NoError(t, err)
	assert.Equal(t, RoleEmployee, second)
}

func TestRBACService_EnsureCompanyDefaults_Idempotent(t *testing.T) {
	repo := newMemoryRepo()
	service := NewService(repo, newTestEnforcer(t))

	require.NoError(t, service.EnsureCompanyDefaults("company-1"))
	require.NoError(t, service.EnsureCompanyDefaults("company-1"))

	roles, err := service.ListRoles("company-1")
	require.NoError(t, err)
	assert.Len(t, roles, 3)

	perms, err := service.ListPermissions()
	require.NoError(t, err)
	assert.Len(t, perms, len(allPermissions))
}

func TestRBACService_HRPermissions(t *testing.T) {
	repo := newMemoryRepo()
	service := NewService(repo, newTestEnforcer(t))

	require.NoError(t, service.EnsureCompanyDefaults("company-1"))
	require.NoError(t, service.AssignRoleByName("company-1", "emp-hr", RoleHR))

	cases := []struct {
		resource string
		action   string
		allowed  bool
	}{
		{"leave", "review", true},
		{"balance", "update", true},
		{"policy", "read", true},
		{"policy", "update", false},
		{"role", "manage", false},
		{"employee", "delete", false},
	}
	for _, tc := range cases {
		allowed, err := service.Enforce(domain.EnforceRequest{
			EmployeeID: "emp-hr",
			CompanyID:  "company-1",
			Resource:   tc.resource,
			Action:     tc.action,
		})
		assert.NoError(t, err)
		assert.Equal(t, tc.allowed, allowed, "%s:%s", tc.resource, tc.action)
	}
}
