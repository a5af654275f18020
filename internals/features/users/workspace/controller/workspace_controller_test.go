package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkp_monitor_backend/internals/constants"
	profileModel "pkp_monitor_backend/internals/features/users/user_profiles/model"
	profileRepo "pkp_monitor_backend/internals/features/users/user_profiles/repository"
	"pkp_monitor_backend/internals/features/users/workspace/dto"
	"pkp_monitor_backend/internals/features/users/workspace/model"
)

type storeReader struct {
	*profileRepo.MemoryStore
}

func (s storeReader) Get(ctx context.Context, id uuid.UUID) (*profileModel.UserProfileModel, error) {
	return s.FindByID(ctx, id)
}

func TestMineReportsWorkspaceAndCompleteness(t *testing.T) {
	petugas, pid := uuid.New(), uuid.New()
	ctl := NewWorkspaceController(storeReader{profileRepo.NewMemoryStore(
		profileModel.UserProfileModel{ID: petugas, NamaLengkap: "Siti", Role: constants.RolePetugasPuskesmas},
	)})

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(constants.LocUserID, petugas.String())
		c.Locals(constants.LocWorkspace, model.Workspace(model.FacilityWorkspace{Puskesmas: &pid}))
		return c.Next()
	})
	app.Get("/api/u/me/workspace", ctl.Mine)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/u/me/workspace", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var env struct {
		Data dto.WorkspaceResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, "/puskesmas", env.Data.HomePath)
	assert.Equal(t, []model.View{model.ViewDashboard, model.ViewPenilaian, model.ViewRekap}, env.Data.Views)
	assert.False(t, env.Data.CanChooseFacility)
	assert.False(t, env.Data.ProfileComplete)
}

func TestMineWithoutWorkspace(t *testing.T) {
	app := fiber.New()
	app.Get("/api/u/me/workspace", NewWorkspaceController(storeReader{profileRepo.NewMemoryStore()}).Mine)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/u/me/workspace", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
