package route

import (
	"github.com/gofiber/fiber/v2"

	"pkp_monitor_backend/internals/features/penilaian/indicators/controller"
)

func IndicatorUserRoutes(r fiber.Router, ctl *controller.IndicatorController) {
	r.Get("/bundles/:bundle_id/indicators", ctl.Catalog)
}

func IndicatorAdminRoutes(r fiber.Router, ctl *controller.IndicatorController) {
	r.Get("/bundles/:bundle_id/clusters", ctl.ListClusters)
	r.Post("/bundles/:bundle_id/clusters", ctl.CreateCluster)

	cl := r.Group("/clusters")
	cl.Patch("/:id", ctl.PatchCluster)
	cl.Delete("/:id", ctl.DeleteCluster)
	cl.Post("/:cluster_id/indicators", ctl.CreateIndicator)

	ind := r.Group("/indicators")
	ind.Patch("/:id", ctl.PatchIndicator)
	ind.Delete("/:id", ctl.DeleteIndicator)
}
