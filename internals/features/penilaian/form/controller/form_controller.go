package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	bundleRepo "pkp_monitor_backend/internals/features/penilaian/bundles/repository"
	"pkp_monitor_backend/internals/features/penilaian/form/service"
	workspaceModel "pkp_monitor_backend/internals/features/users/workspace/model"
	helper "pkp_monitor_backend/internals/helpers"
	"pkp_monitor_backend/internals/helpers/dbtime"
	wsMiddleware "pkp_monitor_backend/internals/middlewares/workspace"
)

type FormController struct {
	svc *service.Service
}

func NewFormController(svc *service.Service) *FormController {
	return &FormController{svc: svc}
}

// GET /api/u/penilaian/form?bundle_id=&tahun=&triwulan=&index=&puskesmas_id=
// triwulan default: triwulan berjalan (WIB).
func (ctl *FormController) Snapshot(c *fiber.Ctx) error {
	bundleID, err := helper.ParseUUIDQuery(c, "bundle_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	_, current := dbtime.CurrentPeriod()
	triwulan := c.QueryInt("triwulan", current)
	fields := map[string][]string{}
	if bundleID == uuid.Nil {
		fields["bundle_id"] = []string{"wajib diisi"}
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

	snap, err := ctl.svc.Snapshot(c.UserContext(), service.Query{
		BundleID:    bundleID,
		PuskesmasID: *pid,
		Tahun:       c.QueryInt("tahun", 0),
		Triwulan:    triwulan,
		Index:       c.QueryInt("index", 0),
	})
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "Form penilaian", snap)
}

func (ctl *FormController) fail(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return helper.FromFiberError(c, fe)
	case errors.Is(err, workspaceModel.ErrNoFacility):
		return helper.JsonProfileIncomplete(c)
	case errors.Is(err, bundleRepo.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Bundle tidak ditemukan")
	default:
		zap.L().Error("[FORM] load gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat form penilaian")
	}
}
