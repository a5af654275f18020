package details

import (
	"github.com/gofiber/fiber/v2"

	pkmRoute "pkp_monitor_backend/internals/features/puskesmas/route"
)

func PuskesmasPublicRoutes(r fiber.Router, m *Modules) {
	pkmRoute.PuskesmasPublicRoutes(r, m.Puskesmas)
}

func PuskesmasAdminRoutes(r fiber.Router, m *Modules) {
	pkmRoute.PuskesmasAdminRoutes(r, m.Puskesmas)
}
