package route

import (
	"github.com/gofiber/fiber/v2"

	"pkp_monitor_backend/internals/features/penilaian/assessments/controller"
	workspaceModel "pkp_monitor_backend/internals/features/users/workspace/model"
	wsMiddleware "pkp_monitor_backend/internals/middlewares/workspace"
)

// /api/u/assessments; baca terbuka untuk semua role (petugas dikunci ke puskesmasnya), tulis hanya view penilaian.
func AssessmentUserRoutes(r fiber.Router, ctl *controller.AssessmentController) {
	g := r.Group("/assessments")
	g.Get("/", ctl.List)
	g.Get("/one", ctl.FindOne)
	g.Put("/", wsMiddleware.RequireView(workspaceModel.ViewPenilaian), ctl.Save)
}

// /api/v/assessments
func AssessmentReviewerRoutes(r fiber.Router, ctl *controller.AssessmentController) {
	r.Patch("/assessments/:id/verification", wsMiddleware.RequireView(workspaceModel.ViewVerifikasi), ctl.Verify)
}

// /api/a/bundles/:id/recalculate
func AssessmentAdminRoutes(r fiber.Router, ctl *controller.AssessmentController) {
	r.Post("/bundles/:id/recalculate", ctl.Recalculate)
}
