package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"pkp_monitor_backend/internals/constants"
	authMiddleware "pkp_monitor_backend/internals/middlewares/auth"
	routeDetails "pkp_monitor_backend/internals/route/details"
)

var startTime time.Time

// SetupRoutes memasang seluruh grup API. gatherer dipakai untuk GET /metrics (boleh nil).
func SetupRoutes(app *fiber.App, deps routeDetails.Deps, gatherer prometheus.Gatherer) *routeDetails.Modules {
	startTime = time.Now()
	log := zap.S()

	modules := routeDetails.NewModules(deps)
	requireAuth := authMiddleware.AuthMiddleware(authMiddleware.NewGormSessionStore(deps.DB))

	log.Info("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, deps.DB, gatherer)

	// ===================== AUTH =====================
	log.Info("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, modules, requireAuth)

	// ===================== GROUPS =====================

	// PUBLIC → tanpa JWT
	log.Info("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// PRIVATE → JWT, semua role
	log.Info("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u", requireAuth)

	// REVIEWER → JWT + verifikator/admin
	log.Info("[INFO] Setting up REVIEWER group...")
	reviewer := app.Group("/api/v",
		requireAuth,
		authMiddleware.OnlyRolesSlice(constants.RoleErrorReviewer("verifikasi"), constants.ReviewerRoles),
	)

	// ADMIN → JWT + admin dinkes
	log.Info("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		requireAuth,
		authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("admin"), constants.AdminOnly),
	)

	// ===================== MOUNT ROUTES =====================

	log.Info("[INFO] Mounting Puskesmas routes...")
	routeDetails.PuskesmasPublicRoutes(public, modules)
	routeDetails.PuskesmasAdminRoutes(admin, modules)

	log.Info("[INFO] Mounting User routes...")
	routeDetails.UserUserRoutes(private, modules)
	routeDetails.UserAdminRoutes(admin, modules)

	log.Info("[INFO] Mounting Penilaian routes...")
	routeDetails.PenilaianUserRoutes(private, modules)
	routeDetails.PenilaianReviewerRoutes(reviewer, modules)
	routeDetails.PenilaianAdminRoutes(admin, modules)

	return modules
}
