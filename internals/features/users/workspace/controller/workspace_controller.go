package controller

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	profileModel "pkp_monitor_backend/internals/features/users/user_profiles/model"
	profileRepo "pkp_monitor_backend/internals/features/users/user_profiles/repository"
	"pkp_monitor_backend/internals/features/users/workspace/dto"
	helper "pkp_monitor_backend/internals/helpers"
	wsMiddleware "pkp_monitor_backend/internals/middlewares/workspace"
)

type ProfileReader interface {
	Get(ctx context.Context, id uuid.UUID) (*profileModel.UserProfileModel, error)
}

type WorkspaceController struct {
	profiles ProfileReader
}

func NewWorkspaceController(profiles ProfileReader) *WorkspaceController {
	return &WorkspaceController{profiles: profiles}
}

// GET /api/u/me/workspace
func (ctl *WorkspaceController) Mine(c *fiber.Ctx) error {
	ws, ok := wsMiddleware.FromCtx(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User belum login")
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	complete := false
	p, err := ctl.profiles.Get(c.UserContext(), userID)
	switch {
	case err == nil:
		complete = p.IsComplete()
	case errors.Is(err, profileRepo.ErrNotFound):
	default:
		zap.L().Error("[WORKSPACE] load profil gagal", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memuat workspace")
	}

	return helper.JsonOK(c, "Workspace pengguna", dto.NewWorkspaceResponse(ws, complete))
}
