package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"pkp_monitor_backend/internals/constants"
	"pkp_monitor_backend/internals/features/puskesmas/model"
)

/* =========================
 * Request DTO
 * ========================= */

type CreatePuskesmasRequest struct {
	KodePuskesmas string  `json:"kode_puskesmas" validate:"required,max=30"`
	NamaPuskesmas string  `json:"nama_puskesmas" validate:"required,max=150"`
	Alamat        *string `json:"alamat" validate:"omitempty"`
	Kecamatan     *string `json:"kecamatan" validate:"omitempty,max=100"`
	Kabupaten     *string `json:"kabupaten" validate:"omitempty,max=100"`
	Telepon       *string `json:"telepon" validate:"omitempty,max=30"`
	Status        string  `json:"status" validate:"omitempty,oneof=aktif nonaktif"`
}

func (r *CreatePuskesmasRequest) Normalize() {
	r.KodePuskesmas = strings.ToUpper(strings.TrimSpace(r.KodePuskesmas))
	r.NamaPuskesmas = strings.TrimSpace(r.NamaPuskesmas)
	if r.Status == "" {
		r.Status = constants.PuskesmasAktif
	}
}

func (r *CreatePuskesmasRequest) ToModel() *model.PuskesmasModel {
	return &model.PuskesmasModel{
		KodePuskesmas: r.KodePuskesmas,
		NamaPuskesmas: r.NamaPuskesmas,
		Alamat:        r.Alamat,
		Kecamatan:     r.Kecamatan,
		Kabupaten:     r.Kabupaten,
		Telepon:       r.Telepon,
		Status:        r.Status,
	}
}

// PATCH (partial update)
type UpdatePuskesmasRequest struct {
	NamaPuskesmas *string `json:"nama_puskesmas" validate:"omitempty,max=150"`
	Alamat        *string `json:"alamat" validate:"omitempty"`
	Kecamatan     *string `json:"kecamatan" validate:"omitempty,max=100"`
	Kabupaten     *string `json:"kabupaten" validate:"omitempty,max=100"`
	Telepon       *string `json:"telepon" validate:"omitempty,max=30"`
	Status        *string `json:"status" validate:"omitempty,oneof=aktif nonaktif"`
}

// ApplyToModel: hanya timpa field yang != nil
func (r *UpdatePuskesmasRequest) ApplyToModel(m *model.PuskesmasModel) {
	if r.NamaPuskesmas != nil {
		m.NamaPuskesmas = strings.TrimSpace(*r.NamaPuskesmas)
	}
	if r.Alamat != nil {
		m.Alamat = r.Alamat
	}
	if r.Kecamatan != nil {
		m.Kecamatan = r.Kecamatan
	}
	if r.Kabupaten != nil {
		m.Kabupaten = r.Kabupaten
	}
	if r.Telepon != nil {
		m.Telepon = r.Telepon
	}
	if r.Status != nil {
		m.Status = *r.Status
	}
}

/* =========================
 * Response DTO
 * ========================= */

// Versi ringkas untuk dropdown signup / setup profil
type PuskesmasOption struct {
	ID            uuid.UUID `json:"id"`
	KodePuskesmas string    `json:"kode_puskesmas"`
	NamaPuskesmas string    `json:"nama_puskesmas"`
}

type PuskesmasResponse struct {
	ID            uuid.UUID `json:"id"`
	KodePuskesmas string    `json:"kode_puskesmas"`
	NamaPuskesmas string    `json:"nama_puskesmas"`
	Alamat        *string   `json:"alamat"`
	Kecamatan     *string   `json:"kecamatan"`
	Kabupaten     *string   `json:"kabupaten"`
	Telepon       *string   `json:"telepon"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewPuskesmasResponse(m *model.PuskesmasModel) PuskesmasResponse {
	return PuskesmasResponse{
		ID:            m.ID,
		KodePuskesmas: m.KodePuskesmas,
		NamaPuskesmas: m.NamaPuskesmas,
		Alamat:        m.Alamat,
		Kecamatan:     m.Kecamatan,
		Kabupaten:     m.Kabupaten,
		Telepon:       m.Telepon,
		Status:        m.Status,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func NewPuskesmasOptions(list []model.PuskesmasModel) []PuskesmasOption {
	out := make([]PuskesmasOption, 0, len(list))
	for _, m := range list {
		out = append(out, PuskesmasOption{
			ID:            m.ID,
			KodePuskesmas: m.KodePuskesmas,
			NamaPuskesmas: m.NamaPuskesmas,
		})
	}
	return out
}

func NewPuskesmasResponses(list []model.PuskesmasModel) []PuskesmasResponse {
	out := make([]PuskesmasResponse, 0, len(list))
	for i := range list {
		out = append(out, NewPuskesmasResponse(&list[i]))
	}
	return out
}
