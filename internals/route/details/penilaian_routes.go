package details

import (
	"github.com/gofiber/fiber/v2"

	assessmentRoute "pkp_monitor_backend/internals/features/penilaian/assessments/route"
	bundleRoute "pkp_monitor_backend/internals/features/penilaian/bundles/route"
	evaluationRoute "pkp_monitor_backend/internals/features/penilaian/evaluations/route"
	formRoute "pkp_monitor_backend/internals/features/penilaian/form/route"
	indicatorRoute "pkp_monitor_backend/internals/features/penilaian/indicators/route"
	rekapRoute "pkp_monitor_backend/internals/features/penilaian/rekap/route"
)

// 👤 /api/u: input penilaian, evaluasi, form, rekap
func PenilaianUserRoutes(r fiber.Router, m *Modules) {
	bundleRoute.BundleUserRoutes(r, m.Bundles)
	indicatorRoute.IndicatorUserRoutes(r, m.Indicators)
	assessmentRoute.AssessmentUserRoutes(r, m.Assessments)
	evaluationRoute.EvaluationUserRoutes(r, m.Evaluations)
	formRoute.FormUserRoutes(r, m.Form)
	rekapRoute.RekapUserRoutes(r, m.Rekap)
}

// ✅ /api/v: verifikasi
func PenilaianReviewerRoutes(r fiber.Router, m *Modules) {
	assessmentRoute.AssessmentReviewerRoutes(r, m.Assessments)
	evaluationRoute.EvaluationReviewerRoutes(r, m.Evaluations)
}

// 🔐 /api/a: bundle, klaster, indikator, backfill, rekap per puskesmas
func PenilaianAdminRoutes(r fiber.Router, m *Modules) {
	bundleRoute.BundleAdminRoutes(r, m.Bundles)
	indicatorRoute.IndicatorAdminRoutes(r, m.Indicators)
	assessmentRoute.AssessmentAdminRoutes(r, m.Assessments)
	rekapRoute.RekapAdminRoutes(r, m.Rekap)
}
