package rbac

import (
	"docflow-backend/models"
)

var (
	AllRoles        = []models.UserRole{models.TenantAdminRole, models.TenantManagerRole, models.TenantUserRole, models.UserRoleSuperAdmin}
	ManagersRoleSet = []models.UserRole{models.TenantAdminRole, models.TenantManagerRole, models.UserRoleSuperAdmin}
)

func (i *impl) initRules() {
	i.addWorkflowRbac()
	i.addWorkflowRolesRbac()
}

func (i *impl) addWorkflowRbac() {
	// VIEW
	i.RegisterRule(models.WorkflowModule, models.ViewPermission, AllRoles, "/api/v1/space/workflow/dashboard [get]", nil)
	i.RegisterRule(models.WorkflowModule, models.ViewPermission, AllRoles, "/api/v1/space/workflow/{id} [get]", nil)
	i.RegisterRule(models.WorkflowModule, models.ViewPermission, AllRoles, "/api/v1/space/workflow/{id}/history [get]", nil)
	i.RegisterRule(models.WorkflowModule, models.ViewPermission, AllRoles, "/api/v1/space/workflow/{id}/history/export [get]", nil)
	// FLOW, who may act on the document is decided by the workflow engine
	i.RegisterRule(models.WorkflowModule, models.FlowPermission, AllRoles, "/api/v1/space/workflow/{id}/submit [put]", nil)
	i.RegisterRule(models.WorkflowModule, models.FlowPermission, AllRoles, "/api/v1/space/workflow/{id}/validate [put]", nil)
	i.RegisterRule(models.WorkflowModule, models.FlowPermission, AllRoles, "/api/v1/space/workflow/{id}/approve [put]", nil)
	i.RegisterRule(models.WorkflowModule, models.FlowPermission, AllRoles, "/api/v1/space/workflow/{id}/reject [put]", nil)
	i.RegisterRule(models.WorkflowModule, models.FlowPermission, AllRoles, "/api/v1/space/workflow/{id}/recall [put]", nil)
	// MANAGE
	i.RegisterRule(models.WorkflowModule, models.ManagePermission, ManagersRoleSet, "/api/v1/space/workflow/{id}/assignees [put]", nil)
}

func (i *impl) addWorkflowRolesRbac() {
	i.RegisterRule(models.WorkflowRolesModule, models.ViewPermission, AllRoles, "/api/v1/space/workflow_roles [get]", nil)
	i.RegisterRule(models.WorkflowRolesModule, models.ManagePermission, ManagersRoleSet, "/api/v1/space/workflow_roles [put]", nil)
	i.RegisterRule(models.WorkflowRolesModule, models.ManagePermission, ManagersRoleSet, "/api/v1/space/workflow_roles [delete]", nil)
}
