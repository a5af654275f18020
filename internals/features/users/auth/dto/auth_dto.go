package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"pkp_monitor_backend/internals/constants"
	authModel "pkp_monitor_backend/internals/features/users/auth/model"
	profileDTO "pkp_monitor_backend/internals/features/users/user_profiles/dto"
	profileModel "pkp_monitor_backend/internals/features/users/user_profiles/model"
)

/* =========================
 * Request DTO
 * ========================= */

type RegisterRequest struct {
	Email           string     `json:"email" validate:"required,email,max=255"`
	Password        string     `json:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string     `json:"confirm_password" validate:"required,eqfield=Password"`
	NamaLengkap     string     `json:"nama_lengkap" validate:"required,max=150"`
	Role            string     `json:"role" validate:"required,oneof=admin_dinkes petugas_puskesmas verifikator"`
	NIP             *string    `json:"nip" validate:"omitempty,max=30"`
	Jabatan         *string    `json:"jabatan" validate:"omitempty,max=100"`
	PuskesmasID     *uuid.UUID `json:"puskesmas_id"`
}

func (r *RegisterRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
	r.NamaLengkap = strings.TrimSpace(r.NamaLengkap)
	r.Role = strings.TrimSpace(r.Role)
	// puskesmas hanya relevan untuk petugas
	if r.Role != constants.RolePetugasPuskesmas {
		r.PuskesmasID = nil
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

/* =========================
 * Response DTO
 * ========================= */

type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func NewUserResponse(u *authModel.UserModel) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, IsActive: u.IsActive, LastLoginAt: u.LastLoginAt}
}

// SessionResponse: bentuk {user, profile} yang dipakai front-end sebagai session provider.
type SessionResponse struct {
	User        UserResponse                    `json:"user"`
	Profile     *profileDTO.UserProfileResponse `json:"profile"`
	AccessToken string                          `json:"access_token,omitempty"`
	ExpiresAt   *time.Time                      `json:"expires_at,omitempty"`
}

func NewSessionResponse(u *authModel.UserModel, p *profileModel.UserProfileModel) SessionResponse {
	resp := SessionResponse{User: NewUserResponse(u)}
	if p != nil {
		pr := profileDTO.NewUserProfileResponse(p, nil)
		resp.Profile = &pr
	}
	return resp
}
