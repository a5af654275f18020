package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"pkp_monitor_backend/internals/features/penilaian/bundles/dto"
	"pkp_monitor_backend/internals/features/penilaian/bundles/repository"
	"pkp_monitor_backend/internals/features/penilaian/bundles/service"
	helper "pkp_monitor_backend/internals/helpers"
)

type BundleController struct {
	svc *service.Service
}

func NewBundleController(svc *service.Service) *BundleController {
	return &BundleController{svc: svc}
}

/* ===========================================================
 * Auth: GET /api/u/bundles?tahun=&status=
 * =========================================================== */
func (ctl *BundleController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)
	f := repository.ListFilter{
		Tahun:  c.QueryInt("tahun", 0),
		Status: c.Query("status"),
		Limit:  paging.Limit,
		Offset: paging.Offset,
	}
	list, total, err := ctl.svc.List(c.UserContext(), f)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonList(c, "Daftar bundle penilaian", dto.NewBundleResponses(list),
		helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

// GET /api/u/bundles/:id
func (ctl *BundleController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	b, err := ctl.svc.Get(c.UserContext(), id)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "Detail bundle", dto.NewBundleResponse(b))
}

/* ===========================================================
 * Admin: POST /api/a/bundles
 * =========================================================== */
func (ctl *BundleController) Create(c *fiber.Ctx) error {
	var req dto.CreateBundleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	b, err := ctl.svc.Create(c.UserContext(), req)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonCreated(c, "Bundle berhasil dibuat", dto.NewBundleResponse(b))
}

// PATCH /api/a/bundles/:id
func (ctl *BundleController) Patch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateBundleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	b, err := ctl.svc.Patch(c.UserContext(), id, req)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonUpdated(c, "Bundle diperbarui", dto.NewBundleResponse(b))
}

func (ctl *BundleController) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Bundle tidak ditemukan")
	default:
		zap.L().Error("[BUNDLE] storage error", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses bundle")
	}
}
