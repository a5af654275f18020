package details

import (
	"github.com/gofiber/fiber/v2"

	profileRoute "pkp_monitor_backend/internals/features/users/user_profiles/route"
	workspaceRoute "pkp_monitor_backend/internals/features/users/workspace/route"
)

// 👤 /api/u: profil & workspace milik user login
func UserUserRoutes(r fiber.Router, m *Modules) {
	workspaceRoute.WorkspaceUserRoutes(r, m.Workspace)
	profileRoute.UserProfileUserRoutes(r, m.Profiles)
}

// 🔐 /api/a: kelola profil & penempatan petugas
func UserAdminRoutes(r fiber.Router, m *Modules) {
	profileRoute.UserProfileAdminRoutes(r, m.Profiles)
}
