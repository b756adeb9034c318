package controllers

import (
	"docflow-backend/lib/utils/helpers"
	workflowerrors "docflow-backend/lib/workflow-errors"
	"docflow-backend/middleware"
	apimodels "docflow-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if len(ctx.Body()) == 0 {
		return nil
	}
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Warn("failed to parse request body")
		return errors.New("failed to read request data")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (int64, error) {
	return c.GetIDByKey(ctx, "id")
}

func (c *BaseAPIController) GetIDByKey(ctx *fiber.Ctx, key string) (int64, error) {
	id := helpers.ParseID(ctx.Params(key))
	if id == 0 {
		return 0, errors.Errorf("invalid %v", key)
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("tenant_id", middleware.GetTenantID(ctx)).
		WithField("user_id", middleware.GetUserID(ctx)).
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
}

var kindStatus = map[workflowerrors.Kind]int{
	workflowerrors.KindUnauthorized:     fiber.StatusForbidden,
	workflowerrors.KindInvalidState:     fiber.StatusConflict,
	workflowerrors.KindValidationFailed: fiber.StatusBadRequest,
	workflowerrors.KindConflict:         fiber.StatusConflict,
	workflowerrors.KindNotFound:         fiber.StatusNotFound,
}

// SendError maps workflow errors to their status; anything else is logged and answered with the generic message.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, message string) error {
	var wfErr *workflowerrors.Error
	if errors.As(err, &wfErr) {
		status, ok := kindStatus[wfErr.Kind]
		if ok {
			return ctx.Status(status).JSON(apimodels.NewKindError(string(wfErr.Kind), wfErr.Message, workflowerrors.IsRetryable(err)))
		}
	}
	logger.WithError(err).Error(message)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(message))
}
