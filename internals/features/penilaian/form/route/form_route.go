package route

import (
	"github.com/gofiber/fiber/v2"

	"pkp_monitor_backend/internals/features/penilaian/form/controller"
	workspaceModel "pkp_monitor_backend/internals/features/users/workspace/model"
	wsMiddleware "pkp_monitor_backend/internals/middlewares/workspace"
)

// /api/u/penilaian
func FormUserRoutes(r fiber.Router, ctl *controller.FormController) {
	g := r.Group("/penilaian", wsMiddleware.RequireView(workspaceModel.ViewPenilaian))
	g.Get("/form", ctl.Snapshot)
}
