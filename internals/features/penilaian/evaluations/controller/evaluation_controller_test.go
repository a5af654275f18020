package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkp_monitor_backend/internals/constants"
	bundleModel "pkp_monitor_backend/internals/features/penilaian/bundles/model"
	bundleRepo "pkp_monitor_backend/internals/features/penilaian/bundles/repository"
	bundleService "pkp_monitor_backend/internals/features/penilaian/bundles/service"
	"pkp_monitor_backend/internals/features/penilaian/evaluations/repository"
	"pkp_monitor_backend/internals/features/penilaian/evaluations/service"
	pkmRepo "pkp_monitor_backend/internals/features/puskesmas/repository"
	pkmService "pkp_monitor_backend/internals/features/puskesmas/service"
	profileModel "pkp_monitor_backend/internals/features/users/user_profiles/model"
	profileRepo "pkp_monitor_backend/internals/features/users/user_profiles/repository"
	profileService "pkp_monitor_backend/internals/features/users/user_profiles/service"
	workspaceModel "pkp_monitor_backend/internals/features/users/workspace/model"
)

func newApp(t *testing.T) (*fiber.App, uuid.UUID) {
	t.Helper()
	bundle, user, facility := uuid.New(), uuid.New(), uuid.New()
	profiles := profileService.New(profileRepo.NewMemoryStore(
		profileModel.UserProfileModel{ID: user, NamaLengkap: "Siti", Role: constants.RolePetugasPuskesmas, PuskesmasID: &facility},
	), pkmService.New(pkmRepo.NewMemoryStore()))
	bundles := bundleService.New(bundleRepo.NewMemoryStore(
		bundleModel.BundleModel{ID: bundle, Judul: "PKP 2024", Tahun: 2024, Status: constants.BundleAktif},
	))
	ctl := NewEvaluationController(service.New(repository.NewMemoryStore(), profiles, bundles))

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(constants.LocUserID, user.String())
		c.Locals(constants.LocWorkspace, workspaceModel.Workspace(workspaceModel.FacilityWorkspace{Puskesmas: &facility}))
		return c.Next()
	})
	app.Get("/api/u/evaluations", ctl.Get)
	app.Get("/api/u/evaluations/quarters", ctl.Quarters)
	app.Put("/api/u/evaluations", ctl.Save)
	return app, bundle
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestSaveIncompleteReturns400(t *testing.T) {
	app, bundle := newApp(t)
	code, body := call(t, app, http.MethodPut, "/api/u/evaluations",
		`{"bundle_id":"`+bundle.String()+`","periode_triwulan":1,"analisis_pencapaian":"ok","hambatan_kendala":"","rencana_tindak_lanjut":"ok"}`)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Data evaluasi belum lengkap", body["message"])
	assert.Equal(t, []any{"hambatan_kendala"}, body["missing"])
}

func TestSaveThenReadQuarters(t *testing.T) {
	app, bundle := newApp(t)
	code, _ := call(t, app, http.MethodPut, "/api/u/evaluations",
		`{"bundle_id":"`+bundle.String()+`","periode_triwulan":2,"analisis_pencapaian":"a","hambatan_kendala":"h","rencana_tindak_lanjut":"r"}`)
	require.Equal(t, http.StatusOK, code)

	code, body := call(t, app, http.MethodGet, "/api/u/evaluations?bundle_id="+bundle.String()+"&triwulan=2", "")
	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["complete"])

	code, body = call(t, app, http.MethodGet, "/api/u/evaluations?bundle_id="+bundle.String()+"&triwulan=4", "")
	require.Equal(t, http.StatusOK, code)
	assert.Nil(t, body["data"])

	code, body = call(t, app, http.MethodGet, "/api/u/evaluations/quarters?bundle_id="+bundle.String(), "")
	require.Equal(t, http.StatusOK, code)
	quarters := body["data"].(map[string]any)["quarters"].([]any)
	require.Len(t, quarters, 4)
	q2 := quarters[1].(map[string]any)
	assert.Equal(t, "Q2 (Apr-Jun)", q2["label"])
	assert.Equal(t, true, q2["complete"])
	assert.Equal(t, false, quarters[0].(map[string]any)["saved"])
}
