package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"pkp_monitor_backend/internals/features/users/user_profiles/model"
)

/* =========================
 * Request DTO
 * ========================= */

// PUT /api/u/me/profile (setup / lengkapi profil)
type SetupProfileRequest struct {
	NamaLengkap string     `json:"nama_lengkap" validate:"required,max=150"`
	NIP         *string    `json:"nip" validate:"omitempty,max=30"`
	Jabatan     *string    `json:"jabatan" validate:"omitempty,max=100"`
	PuskesmasID *uuid.UUID `json:"puskesmas_id"`
}

func (r *SetupProfileRequest) Normalize() {
	r.NamaLengkap = strings.TrimSpace(r.NamaLengkap)
	r.NIP = trimPtr(r.NIP)
	r.Jabatan = trimPtr(r.Jabatan)
}

// PATCH /api/a/user-profiles/:id (admin: ubah role / penempatan)
type AdminUpdateProfileRequest struct {
	NamaLengkap    *string    `json:"nama_lengkap" validate:"omitempty,max=150"`
	Role           *string    `json:"role" validate:"omitempty,oneof=admin_dinkes petugas_puskesmas verifikator"`
	PuskesmasID    *uuid.UUID `json:"puskesmas_id"`
	ClearPuskesmas bool       `json:"clear_puskesmas"`
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

/* =========================
 * Response DTO
 * ========================= */

type UserProfileResponse struct {
	ID            uuid.UUID  `json:"id"`
	NamaLengkap   string     `json:"nama_lengkap"`
	NIP           *string    `json:"nip"`
	Jabatan       *string    `json:"jabatan"`
	Role          string     `json:"role"`
	PuskesmasID   *uuid.UUID `json:"puskesmas_id"`
	NamaPuskesmas *string    `json:"nama_puskesmas,omitempty"`
	IsComplete    bool       `json:"is_complete"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func NewUserProfileResponse(m *model.UserProfileModel, namaPuskesmas *string) UserProfileResponse {
	return UserProfileResponse{
		ID:            m.ID,
		NamaLengkap:   m.NamaLengkap,
		NIP:           m.NIP,
		Jabatan:       m.Jabatan,
		Role:          m.Role,
		PuskesmasID:   m.PuskesmasID,
		NamaPuskesmas: namaPuskesmas,
		IsComplete:    m.IsComplete(),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func NewUserProfileResponses(list []model.UserProfileModel) []UserProfileResponse {
	out := make([]UserProfileResponse, 0, len(list))
	for i := range list {
		out = append(out, NewUserProfileResponse(&list[i], nil))
	}
	return out
}
