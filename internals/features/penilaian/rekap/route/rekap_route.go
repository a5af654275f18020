package route

import (
	"github.com/gofiber/fiber/v2"

	"pkp_monitor_backend/internals/features/penilaian/rekap/controller"
)

// /api/u/rekap
func RekapUserRoutes(r fiber.Router, ctl *controller.RekapController) {
	r.Get("/rekap", ctl.Clusters)
}

// /api/a/rekap
func RekapAdminRoutes(r fiber.Router, ctl *controller.RekapController) {
	r.Get("/rekap/puskesmas", ctl.Facilities)
}
