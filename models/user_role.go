package models

type UserRole string

const (
	TenantAdminRole    UserRole = "TENANT_ADMIN_ROLE"
	TenantManagerRole  UserRole = "TENANT_MANAGER_ROLE"
	TenantUserRole     UserRole = "TENANT_USER_ROLE"
	UserRoleSuperAdmin UserRole = "SUPER_ADMIN"
)

var roleHumanName = map[UserRole]string{
	TenantAdminRole:    "Administrator",
	TenantManagerRole:  "Manager",
	TenantUserRole:     "User",
	UserRoleSuperAdmin: "System super admin",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsSuperAdmin() bool {
	return r == UserRoleSuperAdmin
}

// CanManageTenant - manager, admin or super admin
func (r UserRole) CanManageTenant() bool {
	return r == TenantAdminRole || r == TenantManagerRole || r == UserRoleSuperAdmin
}

const SystemUser = "System"
