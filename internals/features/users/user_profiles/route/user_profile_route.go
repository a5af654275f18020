package route

import (
	"github.com/gofiber/fiber/v2"

	"pkp_monitor_backend/internals/features/users/user_profiles/controller"
)

// Base: /api/u
func UserProfileUserRoutes(r fiber.Router, ctl *controller.UserProfileController) {
	me := r.Group("/me/profile")
	me.Get("/", ctl.GetMine)
	me.Put("/", ctl.SetupMine)
}

// Base: /api/a
func UserProfileAdminRoutes(r fiber.Router, ctl *controller.UserProfileController) {
	g := r.Group("/user-profiles")
	g.Get("/", ctl.List)
	g.Patch("/:id", ctl.AdminUpdate)
}
