package workspace

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pkp_monitor_backend/internals/constants"
	workspaceModel "pkp_monitor_backend/internals/features/users/workspace/model"
	helper "pkp_monitor_backend/internals/helpers"
)

// RequireView menolak request ke view yang tidak ada di workspace pemanggil.
func RequireView(view workspaceModel.View) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ws, ok := FromCtx(c)
		if !ok {
			return helper.JsonError(c, fiber.StatusUnauthorized, "User belum login")
		}
		if !ws.Allows(view) {
			return helper.JsonErrorEx(c, fiber.StatusForbidden, "ACCESS_DENIED", "Akses Ditolak", fiber.Map{
				"view":      string(view),
				"home_path": ws.HomePath(),
			})
		}
		return c.Next()
	}
}

func FromCtx(c *fiber.Ctx) (workspaceModel.Workspace, bool) {
	ws, ok := c.Locals(constants.LocWorkspace).(workspaceModel.Workspace)
	return ws, ok && ws != nil
}

// ScopedFacility membaca ?puskesmas_id lalu menerapkan aturan workspace:
// role dinas boleh memilih (nil = semua), petugas selalu puskesmasnya sendiri.
func ScopedFacility(c *fiber.Ctx) (*uuid.UUID, error) {
	ws, ok := FromCtx(c)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}
	requested, err := helper.ParseUUIDQuery(c, "puskesmas_id")
	if err != nil {
		return nil, err
	}
	var req *uuid.UUID
	if requested != uuid.Nil {
		req = &requested
	}
	return workspaceModel.ScopeFacility(ws, req)
}
