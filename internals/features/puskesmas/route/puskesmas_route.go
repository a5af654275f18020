package route

import (
	"github.com/gofiber/fiber/v2"

	"pkp_monitor_backend/internals/features/puskesmas/controller"
)

// Base: /api/public
func PuskesmasPublicRoutes(r fiber.Router, ctl *controller.PuskesmasController) {
	r.Get("/puskesmas", ctl.ListActive)
}

// Base: /api/a (admin_dinkes)
func PuskesmasAdminRoutes(r fiber.Router, ctl *controller.PuskesmasController) {
	g := r.Group("/puskesmas")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Patch)
	g.Delete("/:id", ctl.Deactivate)
}
