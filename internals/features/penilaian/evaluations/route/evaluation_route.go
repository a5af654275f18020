package route

import (
	"github.com/gofiber/fiber/v2"

	"pkp_monitor_backend/internals/features/penilaian/evaluations/controller"
	workspaceModel "pkp_monitor_backend/internals/features/users/workspace/model"
	wsMiddleware "pkp_monitor_backend/internals/middlewares/workspace"
)

// /api/u/evaluations
func EvaluationUserRoutes(r fiber.Router, ctl *controller.EvaluationController) {
	g := r.Group("/evaluations")
	g.Get("/", ctl.Get)
	g.Get("/quarters", ctl.Quarters)
	g.Put("/", wsMiddleware.RequireView(workspaceModel.ViewPenilaian), ctl.Save)
}

// /api/v/evaluations
func EvaluationReviewerRoutes(r fiber.Router, ctl *controller.EvaluationController) {
	r.Patch("/evaluations/:id/verification", wsMiddleware.RequireView(workspaceModel.ViewVerifikasi), ctl.Verify)
}
