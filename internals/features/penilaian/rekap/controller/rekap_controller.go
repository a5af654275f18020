package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	bundleRepo "pkp_monitor_backend/internals/features/penilaian/bundles/repository"
	"pkp_monitor_backend/internals/features/penilaian/rekap/repository"
	"pkp_monitor_backend/internals/features/penilaian/rekap/service"
	workspaceModel "pkp_monitor_backend/internals/features/users/workspace/model"
	helper "pkp_monitor_backend/internals/helpers"
	wsMiddleware "pkp_monitor_backend/internals/middlewares/workspace"
)

type RekapController struct {
	svc *service.Service
}

func NewRekapController(svc *service.Service) *RekapController {
	return &RekapController{svc: svc}
}

func queryFilter(c *fiber.Ctx) (uuid.UUID, int, int, error) {
	bundleID, err := helper.ParseUUIDQuery(c, "bundle_id")
	if err != nil {
		return uuid.Nil, 0, 0, err
	}
	if bundleID == uuid.Nil {
		return uuid.Nil, 0, 0, fiber.NewError(fiber.StatusBadRequest, "bundle_id wajib diisi")
	}
	q := c.QueryInt("triwulan", 0)
	if q < 0 || q > 4 {
		return uuid.Nil, 0, 0, fiber.NewError(fiber.StatusBadRequest, "triwulan harus 0-4")
	}
	return bundleID, c.QueryInt("tahun", 0), q, nil
}

// GET /api/u/rekap?bundle_id=&tahun=&triwulan=&puskesmas_id=
func (ctl *RekapController) Clusters(c *fiber.Ctx) error {
	bundleID, tahun, q, err := queryFilter(c)
	if err != nil {
		return ctl.fail(c, err)
	}
	pid, err := wsMiddleware.ScopedFacility(c)
	if err != nil {
		return ctl.fail(c, err)
	}
	if pid == nil {
		return helper.JsonValidationError(c, map[string][]string{"puskesmas_id": {"wajib diisi"}})
	}
	out, err := ctl.svc.Clusters(c.UserContext(), service.Query{
		BundleID: bundleID, PuskesmasID: *pid, Tahun: tahun, Triwulan: q,
	})
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "Rekap skor per klaster", out)
}

// GET /api/a/rekap/puskesmas?bundle_id=&tahun=&triwulan=&puskesmas_ids=a,b
func (ctl *RekapController) Facilities(c *fiber.Ctx) error {
	bundleID, tahun, q, err := queryFilter(c)
	if err != nil {
		return ctl.fail(c, err)
	}
	ids, err := helper.ParseUUIDList(c.Query("puskesmas_ids"))
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"puskesmas_ids": {"berisi UUID yang tidak valid"}})
	}
	rows, tahun, err := ctl.svc.Facilities(c.UserContext(), repository.Filter{
		BundleID: bundleID, Tahun: tahun, Triwulan: q, PuskesmasIDs: ids,
	})
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "Rekap per puskesmas", fiber.Map{
		"bundle_id": bundleID,
		"tahun":     tahun,
		"triwulan":  q,
		"items":     rows,
	})
}

func (ctl *RekapController) fail(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return helper.FromFiberError(c, fe)
	case errors.Is(err, workspaceModel.ErrNoFacility):
		return helper.JsonProfileIncomplete(c)
	case errors.Is(err, bundleRepo.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Bundle tidak ditemukan")
	default:
		zap.L().Error("[REKAP] error", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat rekap")
	}
}
