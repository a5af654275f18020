package details

import (
	"github.com/gofiber/fiber/v2"

	authRoute "pkp_monitor_backend/internals/features/users/auth/route"
)

// Base: /api/auth
func AuthRoutes(app *fiber.App, m *Modules, requireAuth fiber.Handler) {
	authRoute.AuthRoutes(app.Group("/api/auth"), m.Auth, requireAuth)
}
