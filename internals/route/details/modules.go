package details

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pkp_monitor_backend/internals/configs"

	pkmController "pkp_monitor_backend/internals/features/puskesmas/controller"
	pkmRepo "pkp_monitor_backend/internals/features/puskesmas/repository"
	pkmService "pkp_monitor_backend/internals/features/puskesmas/service"

	assessmentController "pkp_monitor_backend/internals/features/penilaian/assessments/controller"
	assessmentMetrics "pkp_monitor_backend/internals/features/penilaian/assessments/metrics"
	assessmentRepo "pkp_monitor_backend/internals/features/penilaian/assessments/repository"
	assessmentService "pkp_monitor_backend/internals/features/penilaian/assessments/service"
	bundleController "pkp_monitor_backend/internals/features/penilaian/bundles/controller"
	bundleRepo "pkp_monitor_backend/internals/features/penilaian/bundles/repository"
	bundleService "pkp_monitor_backend/internals/features/penilaian/bundles/service"
	evaluationController "pkp_monitor_backend/internals/features/penilaian/evaluations/controller"
	evaluationRepo "pkp_monitor_backend/internals/features/penilaian/evaluations/repository"
	evaluationService "pkp_monitor_backend/internals/features/penilaian/evaluations/service"
	formController "pkp_monitor_backend/internals/features/penilaian/form/controller"
	formService "pkp_monitor_backend/internals/features/penilaian/form/service"
	catalogCache "pkp_monitor_backend/internals/features/penilaian/indicators/cache"
	indicatorController "pkp_monitor_backend/internals/features/penilaian/indicators/controller"
	indicatorRepo "pkp_monitor_backend/internals/features/penilaian/indicators/repository"
	indicatorService "pkp_monitor_backend/internals/features/penilaian/indicators/service"
	rekapController "pkp_monitor_backend/internals/features/penilaian/rekap/controller"
	rekapRepo "pkp_monitor_backend/internals/features/penilaian/rekap/repository"
	rekapService "pkp_monitor_backend/internals/features/penilaian/rekap/service"

	authController "pkp_monitor_backend/internals/features/users/auth/controller"
	authRepo "pkp_monitor_backend/internals/features/users/auth/repository"
	authService "pkp_monitor_backend/internals/features/users/auth/service"
	profileController "pkp_monitor_backend/internals/features/users/user_profiles/controller"
	profileRepo "pkp_monitor_backend/internals/features/users/user_profiles/repository"
	profileService "pkp_monitor_backend/internals/features/users/user_profiles/service"
	workspaceController "pkp_monitor_backend/internals/features/users/workspace/controller"
)

// Deps: koneksi yang dibuat main. Redis boleh nil (cache katalog mati).
type Deps struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Registry prometheus.Registerer
}

// Modules: semua controller, dirakit sekali lalu dibagi ke tiap grup route.
type Modules struct {
	AuthStore *authRepo.GormStore

	Auth        *authController.AuthController
	Profiles    *profileController.UserProfileController
	Workspace   *workspaceController.WorkspaceController
	Puskesmas   *pkmController.PuskesmasController
	Bundles     *bundleController.BundleController
	Indicators  *indicatorController.IndicatorController
	Assessments *assessmentController.AssessmentController
	Evaluations *evaluationController.EvaluationController
	Form        *formController.FormController
	Rekap       *rekapController.RekapController
}

func NewModules(d Deps) *Modules {
	db := d.DB

	/* ==== master & akun ==== */
	pkmSvc := pkmService.New(pkmRepo.NewGormStore(db))

	profileStore := profileRepo.NewGormStore(db)
	profileSvc := profileService.New(profileStore, pkmSvc)

	authStore := authRepo.NewGormStore(db)
	tokens := authService.NewTokenIssuer(configs.JWTSecret, configs.JWTRefreshSecret)
	authSvc := authService.New(authStore, profileStore, pkmSvc, tokens, authService.NewGoogleVerifier(configs.GoogleClientID))

	/* ==== katalog ==== */
	bundleSvc := bundleService.New(bundleRepo.NewGormStore(db))
	indicatorSvc := indicatorService.New(indicatorRepo.NewGormStore(db), bundleSvc)
	if d.Redis != nil {
		ttl := configs.GetEnvDuration("CATALOG_CACHE_TTL", 10*time.Minute)
		indicatorSvc.UseCache(catalogCache.NewRedisCatalogCache(d.Redis, ttl))
		zap.S().Infof("[CATALOG] cache redis aktif ttl=%s", ttl)
	}

	/* ==== penilaian ==== */
	assessmentStore := assessmentRepo.NewGormStore(db)
	assessmentSvc := assessmentService.New(
		assessmentStore, profileSvc, bundleSvc, indicatorSvc,
		assessmentMetrics.NewAutosave(d.Registry),
	)
	evaluationSvc := evaluationService.New(evaluationRepo.NewGormStore(db), profileSvc, bundleSvc)
	formSvc := formService.New(indicatorSvc, assessmentSvc, evaluationSvc)
	rekapSvc := rekapService.New(rekapRepo.NewGormStore(db), indicatorSvc, assessmentSvc, bundleSvc)

	return &Modules{
		AuthStore: authStore,

		Auth:        authController.NewAuthController(authSvc),
		Profiles:    profileController.NewUserProfileController(profileSvc),
		Workspace:   workspaceController.NewWorkspaceController(profileSvc),
		Puskesmas:   pkmController.NewPuskesmasController(pkmSvc),
		Bundles:     bundleController.NewBundleController(bundleSvc),
		Indicators:  indicatorController.NewIndicatorController(indicatorSvc),
		Assessments: assessmentController.NewAssessmentController(assessmentSvc),
		Evaluations: evaluationController.NewEvaluationController(evaluationSvc),
		Form:        formController.NewFormController(formSvc),
		Rekap:       rekapController.NewRekapController(rekapSvc),
	}
}
