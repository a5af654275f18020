package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	bundleRepo "pkp_monitor_backend/internals/features/penilaian/bundles/repository"
	bundleService "pkp_monitor_backend/internals/features/penilaian/bundles/service"
	"pkp_monitor_backend/internals/features/penilaian/evaluations/dto"
	"pkp_monitor_backend/internals/features/penilaian/evaluations/model"
	"pkp_monitor_backend/internals/features/penilaian/evaluations/repository"
	"pkp_monitor_backend/internals/features/penilaian/evaluations/service"
	"pkp_monitor_backend/internals/features/penilaian/verification"
	profileService "pkp_monitor_backend/internals/features/users/user_profiles/service"
	workspaceModel "pkp_monitor_backend/internals/features/users/workspace/model"
	helper "pkp_monitor_backend/internals/helpers"
	"pkp_monitor_backend/internals/helpers/dbtime"
	wsMiddleware "pkp_monitor_backend/internals/middlewares/workspace"
)

type EvaluationController struct {
	svc *service.Service
}

func NewEvaluationController(svc *service.Service) *EvaluationController {
	return &EvaluationController{svc: svc}
}

// scope: bundle_id wajib, puskesmas harus konkret (role dinas wajib mengirim puskesmas_id).
func scope(c *fiber.Ctx) (bundleID, puskesmasID uuid.UUID, err error) {
	bundleID, err = helper.ParseUUIDQuery(c, "bundle_id")
	if err != nil {
		return
	}
	if bundleID == uuid.Nil {
		err = fiber.NewError(fiber.StatusBadRequest, "bundle_id wajib diisi")
		return
	}
	pid, err := wsMiddleware.ScopedFacility(c)
	if err != nil {
		return
	}
	if pid == nil {
		err = fiber.NewError(fiber.StatusBadRequest, "puskesmas_id wajib diisi")
		return
	}
	return bundleID, *pid, nil
}

/* ===========================================================
 * GET /api/u/evaluations?bundle_id=&tahun=&triwulan=&puskesmas_id=
 * =========================================================== */
func (ctl *EvaluationController) Get(c *fiber.Ctx) error {
	bundleID, pid, err := scope(c)
	if err != nil {
		return ctl.fail(c, err)
	}
	q := c.QueryInt("triwulan", 0)
	if q < 1 || q > model.Quarters {
		return helper.JsonValidationError(c, map[string][]string{"triwulan": {"harus 1-4"}})
	}
	m, err := ctl.svc.Get(c.UserContext(), bundleID, pid, c.QueryInt("tahun", 0), q)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "Evaluasi triwulan", dto.NewEvaluationResponse(m))
}

// GET /api/u/evaluations/quarters?bundle_id=&tahun=&selected=
func (ctl *EvaluationController) Quarters(c *fiber.Ctx) error {
	bundleID, pid, err := scope(c)
	if err != nil {
		return ctl.fail(c, err)
	}
	_, current := dbtime.CurrentPeriod()
	d, tahun, err := ctl.svc.Quarters(c.UserContext(), bundleID, pid, c.QueryInt("tahun", 0), c.QueryInt("selected", current))
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "Evaluasi per triwulan", dto.NewQuartersResponse(bundleID, pid, tahun, d))
}

/* ===========================================================
 * PUT /api/u/evaluations (simpan eksplisit)
 * =========================================================== */
func (ctl *EvaluationController) Save(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.SaveEvaluationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	m, err := ctl.svc.Save(c.UserContext(), service.SaveCommand{
		UserID:   userID,
		BundleID: req.BundleID,
		Tahun:    req.Tahun,
		Triwulan: req.PeriodeTriwulan,
		Narrative: model.Narrative{
			AnalisisPencapaian:  req.AnalisisPencapaian,
			HambatanKendala:     req.HambatanKendala,
			RencanaTindakLanjut: req.RencanaTindakLanjut,
		},
	})
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonUpdated(c, "Evaluasi berhasil disimpan", dto.NewEvaluationResponse(m))
}

// PATCH /api/v/evaluations/:id/verification
func (ctl *EvaluationController) Verify(c *fiber.Ctx) error {
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
	return helper.JsonUpdated(c, "Status verifikasi diperbarui", dto.NewEvaluationResponse(m))
}

func (ctl *EvaluationController) fail(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	var ie *service.IncompleteError
	switch {
	case errors.As(err, &fe):
		return helper.FromFiberError(c, fe)
	case errors.As(err, &ie):
		fields := make([]string, 0, len(ie.Missing))
		for _, f := range ie.Missing {
			fields = append(fields, string(f))
		}
		return helper.JsonErrorEx(c, fiber.StatusBadRequest, "INCOMPLETE_NARRATIVE", "Data evaluasi belum lengkap", fiber.Map{
			"missing": fields,
		})
	case errors.Is(err, service.ErrInvalidTriwulan):
		return helper.JsonValidationError(c, map[string][]string{"periode_triwulan": {"harus 1-4"}})
	case errors.Is(err, profileService.ErrProfileIncomplete), errors.Is(err, workspaceModel.ErrNoFacility):
		return helper.JsonProfileIncomplete(c)
	case errors.Is(err, bundleRepo.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Bundle tidak ditemukan")
	case errors.Is(err, bundleService.ErrBundleNotActive):
		return helper.JsonErrorCode(c, fiber.StatusConflict, "BUNDLE_NOT_ACTIVE", "Bundle tidak aktif, evaluasi tidak bisa diubah")
	case errors.Is(err, bundleService.ErrYearMismatch):
		return helper.JsonValidationError(c, map[string][]string{"tahun": {"tidak sesuai dengan tahun bundle"}})
	case errors.Is(err, repository.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Evaluasi tidak ditemukan")
	case errors.Is(err, verification.ErrCommentRequired):
		return helper.JsonValidationError(c, map[string][]string{"verification_comment": {"wajib diisi untuk status revision"}})
	default:
		zap.L().Error("[EVALUASI] error", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses evaluasi")
	}
}
