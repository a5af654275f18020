package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"pkp_monitor_backend/internals/features/puskesmas/dto"
	"pkp_monitor_backend/internals/features/puskesmas/repository"
	"pkp_monitor_backend/internals/features/puskesmas/service"
	helper "pkp_monitor_backend/internals/helpers"
)

type PuskesmasController struct {
	svc *service.Service
}

func NewPuskesmasController(svc *service.Service) *PuskesmasController {
	return &PuskesmasController{svc: svc}
}

/* ===========================================================
 * Public: GET /api/public/puskesmas (aktif saja, untuk signup)
 * =========================================================== */
func (ctl *PuskesmasController) ListActive(c *fiber.Ctx) error {
	list, err := ctl.svc.ListActive(c.UserContext())
	if err != nil {
		zap.L().Error("[PUSKESMAS] list active", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat daftar puskesmas")
	}
	return helper.JsonOK(c, "Daftar puskesmas aktif", dto.NewPuskesmasOptions(list))
}

/* ===========================================================
 * Admin: GET /api/a/puskesmas?status=&q=&page=&per_page=
 * =========================================================== */
func (ctl *PuskesmasController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 200)
	list, total, err := ctl.svc.List(c.UserContext(), repository.ListFilter{
		Status: c.Query("status"),
		Q:      c.Query("q"),
		Limit:  paging.Limit,
		Offset: paging.Offset,
	})
	if err != nil {
		zap.L().Error("[PUSKESMAS] list", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat daftar puskesmas")
	}
	return helper.JsonList(c, "Daftar puskesmas", dto.NewPuskesmasResponses(list),
		helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

func (ctl *PuskesmasController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := ctl.svc.Get(c.UserContext(), id)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "Detail puskesmas", dto.NewPuskesmasResponse(m))
}

func (ctl *PuskesmasController) Create(c *fiber.Ctx) error {
	var req dto.CreatePuskesmasRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	m, err := ctl.svc.Create(c.UserContext(), req)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonCreated(c, "Puskesmas berhasil ditambahkan", dto.NewPuskesmasResponse(m))
}

func (ctl *PuskesmasController) Patch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdatePuskesmasRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	m, err := ctl.svc.Patch(c.UserContext(), id, req)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonUpdated(c, "Puskesmas berhasil diperbarui", dto.NewPuskesmasResponse(m))
}

func (ctl *PuskesmasController) Deactivate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := ctl.svc.Deactivate(c.UserContext(), id)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonUpdated(c, "Puskesmas dinonaktifkan", dto.NewPuskesmasResponse(m))
}

func (ctl *PuskesmasController) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Puskesmas tidak ditemukan")
	case errors.Is(err, repository.ErrDuplicateKode):
		return helper.JsonError(c, fiber.StatusConflict, "Kode puskesmas sudah dipakai")
	default:
		zap.L().Error("[PUSKESMAS] storage error", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan data puskesmas")
	}
}
