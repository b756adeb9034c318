package apiv1

import (
	"docflow-backend/controllers"
	workflowhandler "docflow-backend/lib/workflow"
	workflowdashboardhandler "docflow-backend/lib/workflow-dashboard"
	workflowerrors "docflow-backend/lib/workflow-errors"
	workflowhistoryhandler "docflow-backend/lib/workflow-history"
	"docflow-backend/middleware"
	apimodels "docflow-backend/models/api"
	workflowapimodels "docflow-backend/models/api/workflow"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type workflowApiController struct {
	controllers.BaseAPIController
}

func InitWorkflowApiRouters(app *fiber.App) {
	controller := workflowApiController{}
	app.Route("workflow", func(router fiber.Router) {
		router.Get("dashboard", controller.dashboard)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.status)
			idRoute.Put("submit", controller.submit)
			idRoute.Put("validate", controller.validate) // validated, then pending approval
			idRoute.Put("approve", controller.approve)
			idRoute.Put("reject", controller.reject)
			idRoute.Put("recall", controller.recall)
			idRoute.Put("assignees", controller.reassign)
			idRoute.Get("history", controller.history)
			idRoute.Get("history/export", controller.exportHistory)
		})
	})
}

// @Summary Submit for validation
// @Tags Document workflow
// @Description Moves a draft to pending_validation. Assignees not given in the body are taken from the document.
// @Param   Authorization		header		string								true	"Authorization token"
// @Param   id          		path		string								true	"document ID"
// @Param	body 				body		workflowapimodels.SubmitData		false	"request body"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.StateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/{id}/submit [put]
func (c *workflowApiController) submit(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload workflowapimodels.SubmitData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), workflowerrors.ValidationFailed(err.Error()), "")
	}
	result, err := workflowhandler.Instance.Submit(ctx.UserContext(), middleware.GetActor(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to submit document")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Validate
// @Tags Document workflow
// @Description Validates the document and passes it on to the approver
// @Param   Authorization		header		string								true	"Authorization token"
// @Param   id          		path		string								true	"document ID"
// @Param	body 				body		workflowapimodels.CommentData		false	"request body"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.StateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/{id}/validate [put]
func (c *workflowApiController) validate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload workflowapimodels.CommentData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := workflowhandler.Instance.Validate(ctx.UserContext(), middleware.GetActor(ctx), id, payload.Comment)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to validate document")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Approve
// @Tags Document workflow
// @Description Approve
// @Param   Authorization		header		string								true	"Authorization token"
// @Param   id          		path		string								true	"document ID"
// @Param	body 				body		workflowapimodels.CommentData		false	"request body"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.StateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/{id}/approve [put]
func (c *workflowApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload workflowapimodels.CommentData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := workflowhandler.Instance.Approve(ctx.UserContext(), middleware.GetActor(ctx), id, payload.Comment)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to approve document")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Reject
// @Tags Document workflow
// @Description Rejects the document, the comment is required
// @Param   Authorization		header		string								true	"Authorization token"
// @Param   id          		path		string								true	"document ID"
// @Param	body 				body		workflowapimodels.RejectData		true	"request body"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.StateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/{id}/reject [put]
func (c *workflowApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload workflowapimodels.RejectData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := workflowhandler.Instance.Reject(ctx.UserContext(), middleware.GetActor(ctx), id, payload.Comment)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to reject document")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Recall
// @Tags Document workflow
// @Description Creator takes a pending document back to draft
// @Param   Authorization		header		string								true	"Authorization token"
// @Param   id          		path		string								true	"document ID"
// @Param	body 				body		workflowapimodels.RecallData		false	"request body"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.StateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/{id}/recall [put]
func (c *workflowApiController) recall(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload workflowapimodels.RecallData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := workflowhandler.Instance.Recall(ctx.UserContext(), middleware.GetActor(ctx), id, payload.Reason)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to recall document")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Change assignees
// @Tags Document workflow
// @Description Replaces the validator and/or approver of a non-terminal document
// @Param   Authorization		header		string								true	"Authorization token"
// @Param   id          		path		string								true	"document ID"
// @Param	body 				body		workflowapimodels.AssigneesData		true	"request body"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.StateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/{id}/assignees [put]
func (c *workflowApiController) reassign(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload workflowapimodels.AssigneesData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := workflowhandler.Instance.Reassign(ctx.UserContext(), middleware.GetActor(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to change document assignees")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Workflow status
// @Tags Document workflow
// @Description Current state, assignees and the actions available to the caller
// @Param   Authorization		header		string								true	"Authorization token"
// @Param   id          		path		string								true	"document ID"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.StatusView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/{id} [get]
func (c *workflowApiController) status(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := workflowhandler.Instance.Status(ctx.UserContext(), middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to get document status")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary History
// @Tags Document workflow
// @Description Transition history in chronological order
// @Param   Authorization		header		string								true	"Authorization token"
// @Param   id          		path		string								true	"document ID"
// @Success 200 {object} apimodels.Response{data=[]workflowapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/{id}/history [get]
func (c *workflowApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := workflowhistoryhandler.Instance.GetHistory(ctx.UserContext(), middleware.GetTenantID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to get document history")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary History export
// @Tags Document workflow
// @Description Transition history as xlsx or pdf file
// @Param   Authorization		header		string								true	"Authorization token"
// @Param   id          		path		string								true	"document ID"
// @Param   format          	query		string								false	"xlsx (default) | pdf"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/{id}/history/export [get]
func (c *workflowApiController) exportHistory(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	format := workflowapimodels.ExportFormat(ctx.Query("format", string(workflowapimodels.ExportFormatXLSX)))
	body, fileName, err := workflowhistoryhandler.Instance.Export(ctx.UserContext(), middleware.GetTenantID(ctx), id, format)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to export document history")
	}
	ctx.Set(fiber.HeaderContentType, format.ContentType())
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return ctx.Status(fiber.StatusOK).Send(body)
}

// @Summary Dashboard
// @Tags Document workflow
// @Description Documents per state in the tenant and documents waiting for the caller
// @Param   Authorization		header		string								true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=workflowapimodels.DashboardView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/workflow/dashboard [get]
func (c *workflowApiController) dashboard(ctx *fiber.Ctx) error {
	result, err := workflowdashboardhandler.Instance.GetDashboard(ctx.UserContext(), middleware.GetTenantID(ctx), middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Failed to get dashboard")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
