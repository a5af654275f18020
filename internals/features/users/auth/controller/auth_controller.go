package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	pkmRepo "pkp_monitor_backend/internals/features/puskesmas/repository"
	pkmService "pkp_monitor_backend/internals/features/puskesmas/service"
	"pkp_monitor_backend/internals/features/users/auth/dto"
	"pkp_monitor_backend/internals/features/users/auth/repository"
	"pkp_monitor_backend/internals/features/users/auth/service"
	helper "pkp_monitor_backend/internals/helpers"
)

type AuthController struct {
	svc *service.Service
}

func NewAuthController(svc *service.Service) *AuthController {
	return &AuthController{svc: svc}
}

/* ==========================
   POST /api/auth/register
========================== */
func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	req.Normalize()
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	user, profile, err := ctl.svc.Register(c.UserContext(), req)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonCreated(c, "Registrasi berhasil, silakan login", dto.NewSessionResponse(user, profile))
}

/* ==========================
   POST /api/auth/login
========================== */
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	req.Email = dto.NormalizeEmail(req.Email)
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	sess, err := ctl.svc.Login(c.UserContext(), req, clientMeta(c))
	if err != nil {
		return ctl.fail(c, err)
	}
	return ctl.respondSession(c, "Login berhasil", sess)
}

/* ==========================
   POST /api/auth/login-google
========================== */
func (ctl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := helper.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	sess, err := ctl.svc.LoginGoogle(c.UserContext(), req.IDToken, clientMeta(c))
	if err != nil {
		return ctl.fail(c, err)
	}
	return ctl.respondSession(c, "Login Google berhasil", sess)
}

/* ==========================
   POST /api/auth/refresh-token
========================== */
func (ctl *AuthController) RefreshToken(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Cookies("refresh_token"))
	if token == "" {
		var req dto.RefreshRequest
		_ = c.BodyParser(&req)
		token = strings.TrimSpace(req.RefreshToken)
	}
	if token == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak ada")
	}

	sess, err := ctl.svc.Refresh(c.UserContext(), token, clientMeta(c))
	if err != nil {
		return ctl.fail(c, err)
	}
	return ctl.respondSession(c, "Token diperbarui", sess)
}

/* ==========================
   POST /api/auth/logout
========================== */
func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	access := helper.GetRawAccessToken(c)
	refresh := strings.TrimSpace(c.Cookies("refresh_token"))

	if err := ctl.svc.Logout(c.UserContext(), access, refresh); err != nil {
		// logout tetap idempotent: cookie dihapus walau blacklist gagal
		zap.L().Warn("[AUTH] logout tidak tuntas", zap.Error(err))
	}
	clearAuthCookies(c)
	return helper.JsonOK(c, "Logout berhasil", nil)
}

/* ==========================
   GET /api/auth/me
========================== */
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	user, profile, err := ctl.svc.Me(c.UserContext(), userID)
	if err != nil {
		return ctl.fail(c, err)
	}
	return helper.JsonOK(c, "Sesi aktif", dto.NewSessionResponse(user, profile))
}

/* ==========================
   Helpers
========================== */

func (ctl *AuthController) respondSession(c *fiber.Ctx, msg string, sess *service.Session) error {
	setAuthCookies(c, sess.Tokens)
	resp := dto.NewSessionResponse(sess.User, sess.Profile)
	resp.AccessToken = sess.Tokens.AccessToken
	exp := sess.Tokens.AccessExpiresAt
	resp.ExpiresAt = &exp
	return helper.JsonOK(c, msg, resp)
}

func clientMeta(c *fiber.Ctx) service.ClientMeta {
	return service.ClientMeta{UserAgent: c.Get(fiber.HeaderUserAgent), IP: c.IP()}
}

func setAuthCookies(c *fiber.Ctx, t *service.IssuedTokens) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    t.AccessToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  t.AccessExpiresAt,
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    t.RefreshToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  t.RefreshExpiresAt,
	})
}

func clearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().UTC().Add(-time.Hour)
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: true,
			Secure:   true,
			SameSite: "None",
			Path:     "/",
			Expires:  expired,
			MaxAge:   -1,
		})
	}
}

func (ctl *AuthController) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	case errors.Is(err, service.ErrAccountInactive):
		return helper.JsonError(c, fiber.StatusForbidden, "Akun dinonaktifkan")
	case errors.Is(err, repository.ErrEmailTaken):
		return helper.JsonError(c, fiber.StatusBadRequest, "Email sudah terdaftar")
	case errors.Is(err, service.ErrPasswordMismatch):
		return helper.JsonValidationError(c, map[string][]string{"confirm_password": {"Password tidak cocok"}})
	case errors.Is(err, service.ErrInvalidRole):
		return helper.JsonValidationError(c, map[string][]string{"role": {"role tidak valid"}})
	case errors.Is(err, service.ErrFacilityRequired):
		return helper.JsonValidationError(c, map[string][]string{"puskesmas_id": {"wajib diisi untuk petugas puskesmas"}})
	case errors.Is(err, pkmRepo.ErrNotFound):
		return helper.JsonError(c, fiber.StatusBadRequest, "Puskesmas tidak ditemukan")
	case errors.Is(err, pkmService.ErrNotActive):
		return helper.JsonError(c, fiber.StatusBadRequest, "Puskesmas tidak aktif")
	case errors.Is(err, service.ErrInvalidRefreshToken):
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak valid")
	case errors.Is(err, service.ErrGoogleDisabled):
		return helper.JsonError(c, fiber.StatusNotImplemented, "Login Google tidak tersedia")
	case errors.Is(err, service.ErrGoogleTokenInvalid):
		return helper.JsonError(c, fiber.StatusUnauthorized, "Google ID token tidak valid")
	case errors.Is(err, service.ErrGoogleNotRegistered):
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email belum terdaftar, silakan registrasi")
	case errors.Is(err, repository.ErrUserNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	case errors.Is(err, service.ErrSecretMissing):
		zap.L().Error("[AUTH] JWT_SECRET belum diset")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Konfigurasi server belum lengkap")
	default:
		zap.L().Error("[AUTH] storage error", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
}
