package route

import (
	"github.com/gofiber/fiber/v2"

	"pkp_monitor_backend/internals/features/users/workspace/controller"
)

func WorkspaceUserRoutes(r fiber.Router, ctl *controller.WorkspaceController) {
	r.Get("/me/workspace", ctl.Mine)
}
