package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"pkp_monitor_backend/internals/constants"
	"pkp_monitor_backend/internals/features/penilaian/bundles/model"
)

type CreateBundleRequest struct {
	Judul  string `json:"judul" validate:"required,max=200"`
	Tahun  int    `json:"tahun" validate:"required,gte=2000,lte=2100"`
	Status string `json:"status" validate:"omitempty,oneof=draft aktif selesai"`
}

func (r *CreateBundleRequest) Normalize() {
	r.Judul = strings.TrimSpace(r.Judul)
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	if r.Status == "" {
		r.Status = constants.BundleDraft
	}
}

func (r CreateBundleRequest) ToModel() *model.BundleModel {
	return &model.BundleModel{Judul: r.Judul, Tahun: r.Tahun, Status: r.Status}
}

// UpdateBundleRequest: tahun tidak bisa diubah setelah bundle dibuat.
type UpdateBundleRequest struct {
	Judul  *string `json:"judul" validate:"omitempty,min=1,max=200"`
	Status *string `json:"status" validate:"omitempty,oneof=draft aktif selesai"`
}

func (r UpdateBundleRequest) ApplyToModel(m *model.BundleModel) {
	if r.Judul != nil {
		m.Judul = strings.TrimSpace(*r.Judul)
	}
	if r.Status != nil {
		m.Status = strings.ToLower(strings.TrimSpace(*r.Status))
	}
}

type BundleResponse struct {
	ID        uuid.UUID `json:"id"`
	Judul     string    `json:"judul"`
	Tahun     int       `json:"tahun"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewBundleResponse(m *model.BundleModel) BundleResponse {
	return BundleResponse{
		ID:        m.ID,
		Judul:     m.Judul,
		Tahun:     m.Tahun,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func NewBundleResponses(list []model.BundleModel) []BundleResponse {
	out := make([]BundleResponse, 0, len(list))
	for i := range list {
		out = append(out, NewBundleResponse(&list[i]))
	}
	return out
}
