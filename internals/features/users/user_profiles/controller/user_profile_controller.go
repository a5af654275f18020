package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	pkmRepo "pkp_monitor_backend/internals/features/puskesmas/repository"
	pkmService "pkp_monitor_backend/internals/features/puskesmas/service"
	"pkp_monitor_backend/internals/features/users/user_profiles/dto"
	"pkp_monitor_backend/internals/features/users/user_profiles/repository"
	"pkp_monitor_backend/internals/features/users/user_profiles/service"
	helper "pkp_monitor_backend/internals/helpers"
)

type UserProfileController struct {
	svc *service.Service
}

func NewUserProfileController(svc *service.Service) *UserProfileController {
	return &UserProfileController{svc: svc}
}

/* ===========================================================
 * Auth: GET /api/u/me/profile
 * =========================================================== */
func (ctl *UserProfileController) GetMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p, err := ctl.svc.Get(c.UserContext(), userID)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "Profil pengguna", dto.NewUserProfileResponse(p, ctl.svc.FacilityName(c.UserContext(), p)))
}

/* ===========================================================
 * Auth: PUT /api/u/me/profile (setup profil)
 * =========================================================== */
func (ctl *UserProfileController) SetupMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.SetupProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	p, err := ctl.svc.SetupMine(c.UserContext(), userID, req)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonUpdated(c, "Profil berhasil disimpan", dto.NewUserProfileResponse(p, ctl.svc.FacilityName(c.UserContext(), p)))
}

/* ===========================================================
 * Admin: GET /api/a/user-profiles?role=&puskesmas_id=&q=
 * =========================================================== */
func (ctl *UserProfileController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 200)
	f := repository.ListFilter{
		Role:   c.Query("role"),
		Q:      c.Query("q"),
		Limit:  paging.Limit,
		Offset: paging.Offset,
	}
	pid, err := helper.ParseUUIDQuery(c, "puskesmas_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if pid != uuid.Nil {
		f.PuskesmasID = &pid
	}

	list, total, err := ctl.svc.List(c.UserContext(), f)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonList(c, "Daftar profil pengguna", dto.NewUserProfileResponses(list),
		helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

/* ===========================================================
 * Admin: PATCH /api/a/user-profiles/:id
 * =========================================================== */
func (ctl *UserProfileController) AdminUpdate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.AdminUpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	p, err := ctl.svc.AdminUpdate(c.UserContext(), id, req)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonUpdated(c, "Profil pengguna diperbarui", dto.NewUserProfileResponse(p, nil))
}

func (ctl *UserProfileController) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Profil tidak ditemukan")
	case errors.Is(err, service.ErrFacilityRequired):
		return helper.JsonValidationError(c, map[string][]string{"puskesmas_id": {"wajib diisi"}})
	case errors.Is(err, pkmRepo.ErrNotFound):
		return helper.JsonError(c, fiber.StatusBadRequest, "Puskesmas tidak ditemukan")
	case errors.Is(err, pkmService.ErrNotActive):
		return helper.JsonError(c, fiber.StatusBadRequest, "Puskesmas tidak aktif")
	default:
		zap.L().Error("[PROFILE] storage error", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses profil")
	}
}
