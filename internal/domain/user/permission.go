package user

type Permission string

const (
	PermissionDashboardView Permission = "dashboard.view"

	// Presence
	PermissionPresenceViewOwn     Permission = "presence.view_own"
	PermissionPresenceSelfService Permission = "presence.self_service"
	PermissionPresenceViewAll     Permission = "presence.view_all"
	PermissionPresenceManage      Permission = "presence.manage"

	// Employees
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"

	// Reports
	PermissionReportsView   Permission = "reports.view"
	PermissionReportsManage Permission = "reports.manage"
)

// RolePermissions maps roles to their permissions. It is the only place role
// sets are spelled out: navigation, the presence action authorizer and the
// API middleware all read it.
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionDashboardView,
		PermissionPresenceViewAll,
		PermissionPresenceManage,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionReportsView,
		PermissionReportsManage,
	},
	RoleRH: {
		PermissionDashboardView,
		PermissionPresenceViewAll,
		PermissionPresenceManage,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionReportsView,
		PermissionReportsManage,
	},
	RoleManager: {
		PermissionDashboardView,
		PermissionPresenceViewAll,
		PermissionPresenceManage,
		PermissionReportsView,
		PermissionReportsManage,
	},
	RoleStaff: {
		PermissionDashboardView,
		PermissionPresenceViewOwn,
		PermissionPresenceSelfService,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
