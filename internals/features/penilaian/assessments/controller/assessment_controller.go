package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"pkp_monitor_backend/internals/features/penilaian/assessments/dto"
	"pkp_monitor_backend/internals/features/penilaian/assessments/model"
	"pkp_monitor_backend/internals/features/penilaian/assessments/repository"
	"pkp_monitor_backend/internals/features/penilaian/assessments/service"
	bundleRepo "pkp_monitor_backend/internals/features/penilaian/bundles/repository"
	bundleService "pkp_monitor_backend/internals/features/penilaian/bundles/service"
	indicatorService "pkp_monitor_backend/internals/features/penilaian/indicators/service"
	"pkp_monitor_backend/internals/features/penilaian/verification"
	profileService "pkp_monitor_backend/internals/features/users/user_profiles/service"
	workspaceModel "pkp_monitor_backend/internals/features/users/workspace/model"
	helper "pkp_monitor_backend/internals/helpers"
	wsMiddleware "pkp_monitor_backend/internals/middlewares/workspace"
)

type AssessmentController struct {
	svc *service.Service
}

func NewAssessmentController(svc *service.Service) *AssessmentController {
	return &AssessmentController{svc: svc}
}

/* ===========================================================
 * PUT /api/u/assessments  (auto-save per field)
 * =========================================================== */
func (ctl *AssessmentController) Save(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.SaveAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	res, err := ctl.svc.Save(c.UserContext(), service.CommandFromRequest(userID, req))
	if err != nil {
		return ctl.fail(c, err)
	}

	msg := "Tersimpan"
	if res.Status == service.StatusStale {
		msg = "Perubahan lebih baru sudah tersimpan"
	}
	return helper.JsonOK(c, msg, dto.SaveResponse{
		Status:       res.Status,
		Assessment:   dto.NewAssessmentResponse(res.Assessment),
		PeriodTarget: res.PeriodTarget,
	})
}

/* ===========================================================
 * GET /api/u/assessments?bundle_id=&tahun=&triwulan=&puskesmas_id=&verification_status=
 * =========================================================== */
func (ctl *AssessmentController) List(c *fiber.Ctx) error {
	bundleID, err := helper.ParseUUIDQuery(c, "bundle_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if bundleID == uuid.Nil {
		return helper.JsonValidationError(c, map[string][]string{"bundle_id": {"wajib diisi"}})
	}
	pid, err := wsMiddleware.ScopedFacility(c)
	if err != nil {
		return ctl.fail(c, err)
	}

	paging := helper.ResolvePaging(c, 100, 500)
	rows, err := ctl.svc.List(c.UserContext(), repository.Filter{
		BundleID:           bundleID,
		PuskesmasID:        pid,
		Tahun:              c.QueryInt("tahun", 0),
		Triwulan:           c.QueryInt("triwulan", 0),
		VerificationStatus: strings.ToLower(strings.TrimSpace(c.Query("verification_status"))),
		Limit:              paging.Limit,
		Offset:             paging.Offset,
	})
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "Daftar penilaian", dto.NewAssessmentResponses(rows))
}

/* ===========================================================
 * GET /api/u/assessments/one?indicator_id=&tahun=&triwulan=&puskesmas_id=
 * data null kalau belum pernah diisi
 * =========================================================== */
func (ctl *AssessmentController) FindOne(c *fiber.Ctx) error {
	indicatorID, err := helper.ParseUUIDQuery(c, "indicator_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	tahun := c.QueryInt("tahun", 0)
	triwulan := c.QueryInt("triwulan", 0)
	fields := map[string][]string{}
	if indicatorID == uuid.Nil {
		fields["indicator_id"] = []string{"wajib diisi"}
	}
	if tahun <= 0 {
		fields["tahun"] = []string{"wajib diisi"}
	}
	if triwulan < 1 || triwulan > 4 {
		fields["triwulan"] = []string{"harus 1-4"}
	}
	if len(fields) > 0 {
		return helper.JsonValidationError(c, fields)
	}

	pid, err := wsMiddleware.ScopedFacility(c)
	if err != nil {
		return ctl.fail(c, err)
	}
	if pid == nil {
		return helper.JsonValidationError(c, map[string][]string{"puskesmas_id": {"wajib diisi"}})
	}

	m, err := ctl.svc.FindOne(c.UserContext(), model.Key{
		IndicatorID: indicatorID, PuskesmasID: *pid, Triwulan: triwulan, Tahun: tahun,
	})
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "Penilaian indikator", dto.NewAssessmentResponse(m))
}

/* ===========================================================
 * Verifikator: PATCH /api/v/assessments/:id/verification
 * =========================================================== */
func (ctl *AssessmentController) Verify(c *fiber.Ctx) error {
	verifier, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req verification.Request
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	m, err := ctl.svc.Verify(c.UserContext(), id, verifier, req)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonUpdated(c, "Status verifikasi diperbarui", dto.NewAssessmentResponse(m))
}

/* ===========================================================
 * Admin: POST /api/a/bundles/:id/recalculate
 * =========================================================== */
func (ctl *AssessmentController) Recalculate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	out, err := ctl.svc.Recalculate(c.UserContext(), id)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "Persentase dihitung ulang", out)
}

func (ctl *AssessmentController) fail(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	var se *service.StorageError
	switch {
	case errors.As(err, &fe):
		return helper.FromFiberError(c, fe)
	case errors.Is(err, profileService.ErrProfileIncomplete), errors.Is(err, workspaceModel.ErrNoFacility):
		return helper.JsonProfileIncomplete(c)
	case errors.Is(err, service.ErrInvalidTriwulan):
		return helper.JsonValidationError(c, map[string][]string{"periode_triwulan": {"harus 1-4"}})
	case errors.Is(err, service.ErrInvalidValue):
		return helper.JsonErrorCode(c, fiber.StatusUnprocessableEntity, "INVALID_VALUE", err.Error())
	case errors.Is(err, bundleRepo.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Bundle tidak ditemukan")
	case errors.Is(err, bundleService.ErrBundleNotActive):
		return helper.JsonErrorCode(c, fiber.StatusConflict, "BUNDLE_NOT_ACTIVE", "Bundle tidak aktif, penilaian tidak bisa diubah")
	case errors.Is(err, bundleService.ErrYearMismatch):
		return helper.JsonValidationError(c, map[string][]string{"tahun": {"tidak sesuai dengan tahun bundle"}})
	case errors.Is(err, indicatorService.ErrIndicatorNotInBundle):
		return helper.JsonError(c, fiber.StatusNotFound, "Indikator tidak ada di bundle ini")
	case errors.Is(err, repository.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Penilaian tidak ditemukan")
	case errors.Is(err, verification.ErrCommentRequired):
		return helper.JsonValidationError(c, map[string][]string{"verification_comment": {"wajib diisi untuk status revision"}})
	case errors.As(err, &se):
		return helper.JsonErrorEx(c, fiber.StatusInternalServerError, "AUTOSAVE_FAILED", "Gagal menyimpan, silakan coba lagi", fiber.Map{
			"unsaved":   true,
			"retryable": true,
		})
	default:
		zap.L().Error("[ASSESSMENT] error", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses penilaian")
	}
}
