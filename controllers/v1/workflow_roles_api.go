package apiv1

import (
	"docflow-backend/controllers"
	"docflow-backend/lib/utils/helpers"
	workflowerrors "docflow-backend/lib/workflow-errors"
	workflowroleshandler "docflow-backend/lib/workflow-roles"
	"docflow-backend/middleware"
	apimodels "docflow-backend/models/api"
	workflowapimodels "docflow-backend/models/api/workflow"

	"github.com/gofiber/fiber/v2"
)

type workflowRolesApiController struct {
	controllers.BaseAPIController
}

func InitWorkflowRolesApiRouters(app *fiber.App) {
	controller := workflowRolesApiController{}
	app.Route("workflow_roles", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Put("", controller.assign)
		router.Delete("", controller.revoke)
	})
}

// @Summary Assign workflow role
// @Tags Workflow roles
// @Description Grants validator or approver role; repeating the call only refreshes the assignment
// @Param   Authorization		header		string							true	"Authorization token"
// @Param	body 				body		workflowapimodels.RoleData		true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow_roles [put]
func (c *workflowRolesApiController) assign(ctx *fiber.Ctx) error {
	var payload workflowapimodels.RoleData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), workflowerrors.ValidationFailed(err.Error()), "")
	}
	tenantID, err := c.targetTenant(ctx, payload.TenantID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "")
	}
	err = workflowroleshandler.Instance.AssignRole(ctx.UserContext(), tenantID, payload.UserID, payload.Role, middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to assign workflow role")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Revoke workflow role
// @Tags Workflow roles
// @Description Documents already assigned to the user keep the assignment
// @Param   Authorization		header		string							true	"Authorization token"
// @Param	body 				body		workflowapimodels.RoleData		true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow_roles [delete]
func (c *workflowRolesApiController) revoke(ctx *fiber.Ctx) error {
	var payload workflowapimodels.RoleData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), workflowerrors.ValidationFailed(err.Error()), "")
	}
	tenantID, err := c.targetTenant(ctx, payload.TenantID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "")
	}
	err = workflowroleshandler.Instance.RevokeRole(ctx.UserContext(), tenantID, payload.UserID, payload.Role)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to revoke workflow role")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Tenant users with workflow roles
// @Tags Workflow roles
// @Description Every tenant member, including users without a workflow role
// @Param   Authorization		header		string		true	"Authorization token"
// @Param   tenant_id			query		string		false	"tenant ID, super admin only"
// @Success 200 {object} apimodels.Response{data=[]workflowapimodels.TenantUserRolesView}
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow_roles [get]
func (c *workflowRolesApiController) list(ctx *fiber.Ctx) error {
	var requested *int64
	if value := ctx.Query("tenant_id"); value != "" {
		id := helpers.ParseID(value)
		if id == 0 {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("invalid tenant_id"))
		}
		requested = &id
	}
	tenantID, err := c.targetTenant(ctx, requested)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "")
	}
	result, err := workflowroleshandler.Instance.ListTenantUsersWithRoles(ctx.UserContext(), tenantID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to get workflow roles")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// targetTenant is the caller's tenant; only super admins may address another one.
func (c *workflowRolesApiController) targetTenant(ctx *fiber.Ctx, requested *int64) (int64, error) {
	tenantID := middleware.GetTenantID(ctx)
	if requested == nil || *requested == tenantID {
		return tenantID, nil
	}
	if !middleware.GetTenantRole(ctx).IsSuperAdmin() {
		return 0, workflowerrors.Unauthorized("only super admins can manage other tenants")
	}
	return *requested, nil
}
