package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkp_monitor_backend/internals/constants"
	"pkp_monitor_backend/internals/features/puskesmas/model"
	"pkp_monitor_backend/internals/features/puskesmas/repository"
	"pkp_monitor_backend/internals/features/puskesmas/service"
)

type envelope struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	ErrorCode string              `json:"error_code"`
	Data      json.RawMessage     `json:"data"`
	Errors    map[string][]string `json:"errors"`
}

func newApp(store repository.Store) *fiber.App {
	ctl := NewPuskesmasController(service.New(store))
	app := fiber.New()
	app.Get("/api/public/puskesmas", ctl.ListActive)
	app.Post("/api/a/puskesmas", ctl.Create)
	app.Delete("/api/a/puskesmas/:id", ctl.Deactivate)
	return app
}

func decode(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return env
}

func TestListActiveFiltersAndOrders(t *testing.T) {
	store := repository.NewMemoryStore(
		model.PuskesmasModel{KodePuskesmas: "P03", NamaPuskesmas: "Puskesmas Sukamaju", Status: constants.PuskesmasAktif},
		model.PuskesmasModel{KodePuskesmas: "P01", NamaPuskesmas: "Puskesmas Antapani", Status: constants.PuskesmasAktif},
		model.PuskesmasModel{KodePuskesmas: "P02", NamaPuskesmas: "Puskesmas Babakan", Status: constants.PuskesmasNonaktif},
	)
	app := newApp(store)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/public/puskesmas", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	env := decode(t, resp)
	var opts []struct {
		NamaPuskesmas string `json:"nama_puskesmas"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &opts))
	require.Len(t, opts, 2)
	assert.Equal(t, "Puskesmas Antapani", opts[0].NamaPuskesmas)
	assert.Equal(t, "Puskesmas Sukamaju", opts[1].NamaPuskesmas)
}

func TestCreateValidatesAndRejectsDuplicateKode(t *testing.T) {
	app := newApp(repository.NewMemoryStore())

	req := httptest.NewRequest(http.MethodPost, "/api/a/puskesmas", strings.NewReader(`{"nama_puskesmas":"X"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, decode(t, resp).Errors, "kode_puskesmas")

	body := `{"kode_puskesmas":"p10","nama_puskesmas":"Puskesmas Cibiru"}`
	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		req = httptest.NewRequest(http.MethodPost, "/api/a/puskesmas", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err = app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, "attempt %d", i)
	}
}

func TestDeactivateUnknownIsNotFound(t *testing.T) {
	app := newApp(repository.NewMemoryStore())
	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/a/puskesmas/5f0c3f55-8a0d-4bb6-9a5e-08d1c1c4f6a1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
