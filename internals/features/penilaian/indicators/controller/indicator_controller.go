package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	bundleRepo "pkp_monitor_backend/internals/features/penilaian/bundles/repository"
	"pkp_monitor_backend/internals/features/penilaian/indicators/dto"
	"pkp_monitor_backend/internals/features/penilaian/indicators/repository"
	"pkp_monitor_backend/internals/features/penilaian/indicators/service"
	helper "pkp_monitor_backend/internals/helpers"
)

type IndicatorController struct {
	svc *service.Service
}

func NewIndicatorController(svc *service.Service) *IndicatorController {
	return &IndicatorController{svc: svc}
}

/* ===========================================================
 * Auth: GET /api/u/bundles/:bundle_id/indicators
 * =========================================================== */
func (ctl *IndicatorController) Catalog(c *fiber.Ctx) error {
	bundleID, err := helper.ParseUUIDParam(c, "bundle_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	_, items, err := ctl.svc.BundleCatalog(c.UserContext(), bundleID)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "Katalog indikator", dto.GroupCatalog(items))
}

/* ===========================================================
 * Admin: klaster
 * =========================================================== */

// GET /api/a/bundles/:bundle_id/clusters
func (ctl *IndicatorController) ListClusters(c *fiber.Ctx) error {
	bundleID, err := helper.ParseUUIDParam(c, "bundle_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	list, err := ctl.svc.ListClusters(c.UserContext(), bundleID)
	if err != nil {
		return ctl.fail(c, err)
	}
	out := make([]dto.ClusterResponse, 0, len(list))
	for i := range list {
		out = append(out, dto.NewClusterResponse(&list[i]))
	}
	return helper.JsonOK(c, "Daftar klaster", out)
}

// POST /api/a/bundles/:bundle_id/clusters
func (ctl *IndicatorController) CreateCluster(c *fiber.Ctx) error {
	bundleID, err := helper.ParseUUIDParam(c, "bundle_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreateClusterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	m, err := ctl.svc.CreateCluster(c.UserContext(), bundleID, req)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonCreated(c, "Klaster berhasil dibuat", dto.NewClusterResponse(m))
}

// PATCH /api/a/clusters/:id
func (ctl *IndicatorController) PatchCluster(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateClusterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	m, err := ctl.svc.PatchCluster(c.UserContext(), id, req)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonUpdated(c, "Klaster diperbarui", dto.NewClusterResponse(m))
}

// DELETE /api/a/clusters/:id
func (ctl *IndicatorController) DeleteCluster(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.svc.DeleteCluster(c.UserContext(), id); err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonDeleted(c, "Klaster dihapus", fiber.Map{"id": id})
}

/* ===========================================================
 * Admin: indikator
 * =========================================================== */

// POST /api/a/clusters/:cluster_id/indicators
func (ctl *IndicatorController) CreateIndicator(c *fiber.Ctx) error {
	clusterID, err := helper.ParseUUIDParam(c, "cluster_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreateIndicatorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	m, err := ctl.svc.CreateIndicator(c.UserContext(), clusterID, req)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonCreated(c, "Indikator berhasil dibuat", dto.NewIndicatorResponse(m))
}

// PATCH /api/a/indicators/:id
func (ctl *IndicatorController) PatchIndicator(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateIndicatorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	m, err := ctl.svc.PatchIndicator(c.UserContext(), id, req)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonUpdated(c, "Indikator diperbarui", dto.NewIndicatorResponse(m))
}

// DELETE /api/a/indicators/:id
func (ctl *IndicatorController) DeleteIndicator(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ctl.svc.DeleteIndicator(c.UserContext(), id); err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonDeleted(c, "Indikator dihapus", fiber.Map{"id": id})
}

func (ctl *IndicatorController) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, bundleRepo.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Bundle tidak ditemukan")
	case errors.Is(err, repository.ErrClusterNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Klaster tidak ditemukan")
	case errors.Is(err, repository.ErrIndicatorNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Indikator tidak ditemukan")
	case errors.Is(err, repository.ErrInUse):
		return helper.JsonError(c, fiber.StatusConflict, "Data masih dipakai penilaian, tidak bisa dihapus")
	case errors.Is(err, service.ErrInvalidRule):
		return helper.JsonErrorCode(c, fiber.StatusUnprocessableEntity, "INVALID_INDICATOR_RULE", err.Error())
	default:
		zap.L().Error("[CATALOG] storage error", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses indikator")
	}
}
