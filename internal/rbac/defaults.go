package rbac

const (
	RoleEmployee = "EMPLOYEE"
	RoleHR       = "HR"
	RoleAdmin    = "ADMIN"
)

type permissionSpec struct {
	Resource string
	Action   string
	Label    string
	Category string
}

// allPermissions is the catalog seeded into the permissions table. The admin
// role gets every entry; the other defaults pick from it below.
var allPermissions = []permissionSpec{
	{"employee", "read", "View employees", "Employees"},
	{"employee", "create", "Create employees", "Employees"},
	{"employee", "update", "Update employees", "Employees"},
	{"employee", "delete", "Delete employees", "Employees"},

	{"leave", "create", "Submit leave requests", "Leave"},
	{"leave", "read", "View all leave requests", "Leave"},
	{"leave", "review", "Review parked leave requests", "Leave"},

	{"balance", "read", "View leave balances", "Leave"},
	{"balance", "update", "Adjust leave allocations", "Leave"},

	{"policy", "read", "View leave policy", "Policy"},
	{"policy", "update", "Update leave policy", "Policy"},

	{"role", "read", "View roles", "Access"},
	{"role", "manage", "Manage roles and permissions", "Access"},
}

var defaultRolePermissions = map[string][]permissionSpec{
	RoleEmployee: {
		{Resource: "leave", Action: "create"},
	},
	RoleHR: {
		{Resource: "employee", Action: "read"},
		{Resource: "employee", Action: "create"},
		{Resource: "employee", Action: "update"},
		{Resource: "leave", Action: "create"},
		{Resource: "leave", Action: "read"},
		{Resource: "leave", Action: "review"},
		{Resource: "balance", Action: "read"},
		{Resource: "balance", Action: "update"},
		{Resource: "policy", Action: "read"},
	},
	RoleAdmin: allPermissions,
}
