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
	pkmModel "pkp_monitor_backend/internals/features/puskesmas/model"
	pkmRepo "pkp_monitor_backend/internals/features/puskesmas/repository"
	pkmService "pkp_monitor_backend/internals/features/puskesmas/service"
	"pkp_monitor_backend/internals/features/users/auth/repository"
	"pkp_monitor_backend/internals/features/users/auth/service"
	profileRepo "pkp_monitor_backend/internals/features/users/user_profiles/repository"
)

type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

func newApp(t *testing.T) (*fiber.App, uuid.UUID) {
	t.Helper()
	pid := uuid.New()
	facilities := pkmService.New(pkmRepo.NewMemoryStore(
		pkmModel.PuskesmasModel{ID: pid, KodePuskesmas: "P01", NamaPuskesmas: "Puskesmas Antapani", Status: constants.PuskesmasAktif},
	))
	profiles := profileRepo.NewMemoryStore()
	svc := service.New(repository.NewMemoryStore(profiles), profiles, facilities,
		service.NewTokenIssuer("access-secret", "refresh-secret"), nil)
	ctl := NewAuthController(svc)

	app := fiber.New()
	app.Post("/api/auth/register", ctl.Register)
	app.Post("/api/auth/login", ctl.Login)
	app.Post("/api/auth/logout", ctl.Logout)
	return app, pid
}

func post(t *testing.T, app *fiber.App, path, body string) (*http.Response, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp, env
}

func TestRegisterValidation(t *testing.T) {
	app, pid := newApp(t)

	cases := []struct {
		name   string
		body   string
		status int
		field  string
	}{
		{
			name:   "password terlalu pendek",
			body:   `{"email":"a@b.id","password":"123","confirm_password":"123","nama_lengkap":"A","role":"admin_dinkes"}`,
			status: fiber.StatusUnprocessableEntity,
			field:  "password",
		},
		{
			name:   "konfirmasi beda",
			body:   `{"email":"a@b.id","password":"123456","confirm_password":"654321","nama_lengkap":"A","role":"admin_dinkes"}`,
			status: fiber.StatusUnprocessableEntity,
			field:  "confirm_password",
		},
		{
			name:   "role tidak dikenal",
			body:   `{"email":"a@b.id","password":"123456","confirm_password":"123456","nama_lengkap":"A","role":"superuser"}`,
			status: fiber.StatusUnprocessableEntity,
			field:  "role",
		},
		{
			name:   "petugas tanpa puskesmas",
			body:   `{"email":"a@b.id","password":"123456","confirm_password":"123456","nama_lengkap":"A","role":"petugas_puskesmas"}`,
			status: fiber.StatusUnprocessableEntity,
			field:  "puskesmas_id",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, env := post(t, app, "/api/auth/register", tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.False(t, env.Success)
			assert.Contains(t, env.Errors, tc.field)
		})
	}

	ok := `{"email":"siti@b.id","password":"123456","confirm_password":"123456","nama_lengkap":"Siti","role":"petugas_puskesmas","puskesmas_id":"` + pid.String() + `"}`
	resp, _ := post(t, app, "/api/auth/register", ok)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, env := post(t, app, "/api/auth/register", ok)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email sudah terdaftar", env.Message)
}

func TestLoginAndLogout(t *testing.T) {
	app, _ := newApp(t)
	resp, _ := post(t, app, "/api/auth/register",
		`{"email":"budi@b.id","password":"123456","confirm_password":"123456","nama_lengkap":"Budi","role":"admin_dinkes"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, env := post(t, app, "/api/auth/login", `{"email":"budi@b.id","password":"salah"}`)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Email atau password salah", env.Message)

	resp, env = post(t, app, "/api/auth/login", `{"email":"BUDI@b.id","password":"123456"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var data struct {
		AccessToken string `json:"access_token"`
		Profile     struct {
			Role string `json:"role"`
		} `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.AccessToken)
	assert.Equal(t, constants.RoleAdminDinkes, data.Profile.Role)

	var cookies []string
	for _, c := range resp.Cookies() {
		cookies = append(cookies, c.Name)
	}
	assert.ElementsMatch(t, []string{"access_token", "refresh_token"}, cookies)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+data.AccessToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
