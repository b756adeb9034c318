package middleware

import (
	"docflow-backend/lib/rbac"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

func RbacMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		actor := GetActor(ctx)
		if actor.UserID == 0 || actor.Role == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "RBAC_FORBIDDEN",
			})
		}

		handler, found := rbac.Instance.GetRuleFunc(ctx.Method(), ctx.Path())
		if !found {
			return ctx.Next()
		}

		if !handler(actor.TenantID, actor.UserID, actor.Role, ctx.Path()) {
			log.
				WithField("tenant_id", actor.TenantID).
				WithField("user_id", actor.UserID).
				WithField("role", actor.Role).
				WithField("path", ctx.Path()).
				Info("rbac: access denied")
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "RBAC_FORBIDDEN",
			})
		}

		return ctx.Next()
	}
}
