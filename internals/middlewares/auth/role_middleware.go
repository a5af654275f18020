package auth

import (
	"github.com/gofiber/fiber/v2"

	"pkp_monitor_backend/internals/constants"
	helper "pkp_monitor_backend/internals/helpers"
)

// OnlyRoles validasi role + custom error message
func OnlyRoles(message string, allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(constants.LocUserRole).(string)
		if !ok || role == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: role tidak ditemukan")
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		if message == "" {
			message = "Akses Ditolak"
		}
		return helper.JsonErrorCode(c, fiber.StatusForbidden, "ACCESS_DENIED", message)
	}
}

// OnlyRolesSlice: sama dengan OnlyRoles untuk role yang sudah dikelompokkan di constants.
func OnlyRolesSlice(message string, allowedRoles []string) fiber.Handler {
	return OnlyRoles(message, allowedRoles...)
}
