package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkp_monitor_backend/internals/constants"
	authModel "pkp_monitor_backend/internals/features/users/auth/model"
	workspaceModel "pkp_monitor_backend/internals/features/users/workspace/model"
	"pkp_monitor_backend/internals/middlewares/workspace"
)

const testSecret = "test-secret"

type fakeSessions struct {
	blacklist  map[string]bool
	principals map[uuid.UUID]*Principal
}

func (f *fakeSessions) IsBlacklisted(_ context.Context, raw string) (bool, error) {
	return f.blacklist[authModel.HashToken(raw)], nil
}

func (f *fakeSessions) LoadPrincipal(_ context.Context, id uuid.UUID) (*Principal, error) {
	p, ok := f.principals[id]
	if !ok {
		return nil, ErrPrincipalNotFound
	}
	return p, nil
}

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

func accessClaims(id uuid.UUID, exp time.Time) jwt.MapClaims {
	return jwt.MapClaims{"typ": "access", "id": id.String(), "role": "ignored", "exp": exp.Unix()}
}

func newApp(store SessionStore) *fiber.App {
	app := fiber.New()
	mw := AuthMiddlewareWith(Options{Store: store, Secret: func() string { return testSecret }})
	app.Get("/penilaian", mw, workspace.RequireView(workspaceModel.ViewPenilaian), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"role":         c.Locals(constants.LocUserRole),
			"puskesmas_id": c.Locals(constants.LocPuskesmasID),
		})
	})
	app.Get("/admin", mw, OnlyRolesSlice("", constants.AdminOnly), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusNoContent)
	})
	return app
}

func do(t *testing.T, app *fiber.App, path, token string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	_ = json.Unmarshal(body, &out)
	return resp, out
}

func TestAuthMiddlewareResolvesWorkspaceFromProfile(t *testing.T) {
	petugas, admin := uuid.New(), uuid.New()
	pid := uuid.New()
	store := &fakeSessions{
		blacklist: map[string]bool{},
		principals: map[uuid.UUID]*Principal{
			petugas: {UserID: petugas, IsActive: true, Role: constants.RolePetugasPuskesmas, PuskesmasID: &pid},
			admin:   {UserID: admin, IsActive: true, Role: constants.RoleAdminDinkes},
		},
	}
	app := newApp(store)
	exp := time.Now().Add(time.Hour)

	resp, body := do(t, app, "/penilaian", sign(t, accessClaims(petugas, exp)))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, constants.RolePetugasPuskesmas, body["role"])
	assert.Equal(t, pid.String(), body["puskesmas_id"])

	resp, body = do(t, app, "/penilaian", sign(t, accessClaims(admin, exp)))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "ACCESS_DENIED", body["error_code"])
	assert.Equal(t, "Akses Ditolak", body["message"])
	assert.Equal(t, "/admin", body["home_path"])

	resp, _ = do(t, app, "/admin", sign(t, accessClaims(admin, exp)))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = do(t, app, "/admin", sign(t, accessClaims(petugas, exp)))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "ACCESS_DENIED", body["error_code"])
}

func TestAuthMiddlewareRejections(t *testing.T) {
	user, inactive := uuid.New(), uuid.New()
	store := &fakeSessions{
		blacklist: map[string]bool{},
		principals: map[uuid.UUID]*Principal{
			user:     {UserID: user, IsActive: true, Role: constants.RoleVerifikator},
			inactive: {UserID: inactive, IsActive: false, Role: constants.RoleVerifikator},
		},
	}
	app := newApp(store)

	resp, _ := do(t, app, "/penilaian", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	expired := sign(t, accessClaims(user, time.Now().Add(-time.Hour)))
	resp, _ = do(t, app, "/penilaian", expired)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	refresh := sign(t, jwt.MapClaims{"typ": "refresh", "id": user.String(), "exp": time.Now().Add(time.Hour).Unix()})
	resp, _ = do(t, app, "/penilaian", refresh)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	wrongKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims(user, time.Now().Add(time.Hour))).SignedString([]byte("other"))
	require.NoError(t, err)
	resp, _ = do(t, app, "/penilaian", wrongKey)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	good := sign(t, accessClaims(user, time.Now().Add(time.Hour)))
	store.blacklist[authModel.HashToken(good)] = true
	resp, _ = do(t, app, "/penilaian", good)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = do(t, app, "/penilaian", sign(t, accessClaims(inactive, time.Now().Add(time.Hour))))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = do(t, app, "/penilaian", sign(t, accessClaims(uuid.New(), time.Now().Add(time.Hour))))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
