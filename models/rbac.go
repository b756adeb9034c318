package models

type RbacFunc func(tenantID, userID int64, role UserRole, path string) bool

type Module string

const (
	WorkflowModule      Module = "WORKFLOW"
	WorkflowRolesModule Module = "WORKFLOW_ROLES"
)

type Permission string

const (
	ViewPermission   Permission = "VIEW"
	ManagePermission Permission = "MANAGE"
	FlowPermission   Permission = "FLOW"
)
