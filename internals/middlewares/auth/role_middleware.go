package auth

import (
	"github.com/gofiber/fiber/v2"

	"maktabati_backend/internals/constants"
	helper "maktabati_backend/internals/helpers"
)

// RoleMiddlewareWithCustomError gates a route on the role stashed by
// AuthMiddleware. The actual decision lives in constants.HasAnyRole.
func RoleMiddlewareWithCustomError(allowedRoles []string, customForbiddenMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := helper.GetUserRole(c)
		if role == "" {
			return helper.Error(c, fiber.StatusUnauthorized, "Missing role information")
		}

		if constants.HasAnyRole(role, allowedRoles) {
			return c.Next()
		}

		if customForbiddenMessage == "" {
			customForbiddenMessage = "You are not authorized to access this resource"
		}
		return helper.Error(c, fiber.StatusForbidden, customForbiddenMessage)
	}
}

// OnlyRoles is the short form used by the route files.
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, customMessage)
}
