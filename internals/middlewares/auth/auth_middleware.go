package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"pkp_monitor_backend/internals/configs"
	"pkp_monitor_backend/internals/constants"
	workspaceModel "pkp_monitor_backend/internals/features/users/workspace/model"
	helper "pkp_monitor_backend/internals/helpers"
)

type Options struct {
	Store  SessionStore
	Secret func() string
}

func AuthMiddleware(store SessionStore) fiber.Handler {
	return AuthMiddlewareWith(Options{Store: store})
}

// AuthMiddlewareWith: varian yang secret-nya bisa diganti (dipakai test).
func AuthMiddlewareWith(opts Options) fiber.Handler {
	secretFn := opts.Secret
	if secretFn == nil {
		secretFn = func() string { return configs.JWTSecret }
	}

	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		// 1) Ambil Authorization (atau cookie)
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		// 2) Cek blacklist
		blacklisted, err := opts.Store.IsBlacklisted(ctx, tokenString)
		if err != nil {
			zap.L().Error("[AUTH] cek blacklist gagal", zap.Error(err))
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memverifikasi sesi")
		}
		if blacklisted {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Sesi sudah berakhir, silakan login kembali")
		}

		// 3) Parse & verifikasi JWT
		secret := secretFn()
		if secret == "" {
			zap.L().Error("[AUTH] JWT_SECRET kosong")
			return helper.JsonError(c, fiber.StatusInternalServerError, "Missing JWT Secret")
		}
		claims, err := parseAccessToken(tokenString, secret)
		if err != nil {
			zap.L().Debug("[AUTH] token ditolak", zap.Error(err))
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak valid atau kedaluwarsa")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak memuat user id")
		}

		// 4) Role & penempatan dibaca dari DB supaya perubahan profil langsung berlaku
		principal, err := opts.Store.LoadPrincipal(ctx, userID)
		if err != nil {
			if errors.Is(err, ErrPrincipalNotFound) {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Akun tidak ditemukan")
			}
			zap.L().Error("[AUTH] load principal", zap.Error(err))
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memverifikasi sesi")
		}
		if !principal.IsActive {
			return helper.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
		}
		if principal.Role == "" {
			principal.Role = claimString(claims, "role")
		}

		// 5) Workspace dipilih sekali di sini
		ws, err := workspaceModel.Resolve(principal.Role, principal.PuskesmasID)
		if err != nil {
			return helper.JsonErrorCode(c, fiber.StatusForbidden, "ACCESS_DENIED", "Akses Ditolak")
		}

		helper.SetRawAccessToken(c, tokenString)
		c.Locals(constants.LocUserID, userID.String())
		c.Locals(constants.LocUserRole, principal.Role)
		if principal.PuskesmasID != nil {
			c.Locals(constants.LocPuskesmasID, principal.PuskesmasID.String())
		}
		c.Locals(constants.LocWorkspace, ws)

		return c.Next()
	}
}
