package route

import (
	"github.com/gofiber/fiber/v2"

	"pkp_monitor_backend/internals/features/users/auth/controller"
	"pkp_monitor_backend/internals/middlewares"
)

// AuthRoutes dipasang di /api/auth. requireAuth hanya untuk /me.
func AuthRoutes(r fiber.Router, ctl *controller.AuthController, requireAuth fiber.Handler) {
	r.Post("/register", middlewares.RegisterRateLimiter(), ctl.Register)
	r.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	r.Post("/login-google", middlewares.LoginRateLimiter(), ctl.LoginGoogle)
	r.Post("/refresh-token", ctl.RefreshToken)
	r.Post("/logout", ctl.Logout)
	r.Get("/me", requireAuth, ctl.Me)
}
