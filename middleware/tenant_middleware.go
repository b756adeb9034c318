package middleware

import (
	authutils "docflow-backend/lib/utils/auth-utils"
	"docflow-backend/models"
	apimodels "docflow-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

func GetTenantID(ctx *fiber.Ctx) int64 {
	return authutils.GetInt64Claim(authutils.GetClaims(ctx), "tenant")
}

func GetUserID(ctx *fiber.Ctx) int64 {
	return authutils.GetInt64Claim(authutils.GetClaims(ctx), "sub")
}

func GetTenantRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if stringRole, ok := role.(string); ok && stringRole != "" {
			return models.UserRole(stringRole)
		}
	}
	return ""
}

// GetActor is the request context handed to the workflow operations.
func GetActor(ctx *fiber.Ctx) models.Actor {
	return models.Actor{
		TenantID: GetTenantID(ctx),
		UserID:   GetUserID(ctx),
		Role:     GetTenantRole(ctx),
	}
}

// TenantRequired rejects tokens without a tenant, user or role.
func TenantRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		actor := GetActor(ctx)
		if actor.TenantID == 0 || actor.UserID == 0 || actor.Role == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation is not allowed"))
		}
		return ctx.Next()
	}
}
