package route

import (
	"github.com/gofiber/fiber/v2"

	"pkp_monitor_backend/internals/features/penilaian/bundles/controller"
)

func BundleUserRoutes(r fiber.Router, ctl *controller.BundleController) {
	g := r.Group("/bundles")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
}

func BundleAdminRoutes(r fiber.Router, ctl *controller.BundleController) {
	g := r.Group("/bundles")
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Patch)
}
