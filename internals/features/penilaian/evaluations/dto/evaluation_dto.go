package dto

import (
	"time"

	"github.com/google/uuid"

	"pkp_monitor_backend/internals/features/penilaian/evaluations/model"
)

// SaveEvaluationRequest: PUT /api/u/evaluations. Kelengkapan narasi dicek di service.
type SaveEvaluationRequest struct {
	BundleID            uuid.UUID `json:"bundle_id" validate:"required"`
	Tahun               int       `json:"tahun" validate:"omitempty,min=2000,max=2100"`
	PeriodeTriwulan     int       `json:"periode_triwulan" validate:"required,min=1,max=4"`
	AnalisisPencapaian  string    `json:"analisis_pencapaian" validate:"max=10000"`
	HambatanKendala     string    `json:"hambatan_kendala" validate:"max=10000"`
	RencanaTindakLanjut string    `json:"rencana_tindak_lanjut" validate:"max=10000"`
}

type EvaluationResponse struct {
	ID                  uuid.UUID  `json:"id"`
	BundleID            uuid.UUID  `json:"bundle_id"`
	PuskesmasID         uuid.UUID  `json:"puskesmas_id"`
	UserID              uuid.UUID  `json:"user_id"`
	Tahun               int        `json:"tahun"`
	PeriodeTriwulan     int        `json:"periode_triwulan"`
	AnalisisPencapaian  string     `json:"analisis_pencapaian"`
	HambatanKendala     string     `json:"hambatan_kendala"`
	RencanaTindakLanjut string     `json:"rencana_tindak_lanjut"`
	Complete            bool       `json:"complete"`
	VerificationStatus  string     `json:"verification_status"`
	VerifiedBy          *uuid.UUID `json:"verified_by"`
	VerifiedAt          *time.Time `json:"verified_at"`
	VerificationComment *string    `json:"verification_comment"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func NewEvaluationResponse(m *model.EvaluationModel) *EvaluationResponse {
	if m == nil {
		return nil
	}
	return &EvaluationResponse{
		ID:                  m.ID,
		BundleID:            m.BundleID,
		PuskesmasID:         m.PuskesmasID,
		UserID:              m.UserID,
		Tahun:               m.Tahun,
		PeriodeTriwulan:     m.PeriodeTriwulan,
		AnalisisPencapaian:  m.AnalisisPencapaian,
		HambatanKendala:     m.HambatanKendala,
		RencanaTindakLanjut: m.RencanaTindakLanjut,
		Complete:            m.Narrative().Complete(),
		VerificationStatus:  m.VerificationStatus,
		VerifiedBy:          m.VerifiedBy,
		VerifiedAt:          m.VerifiedAt,
		VerificationComment: m.VerificationComment,
		UpdatedAt:           m.UpdatedAt,
	}
}

// QuarterDraftResponse: satu tab triwulan di form evaluasi.
type QuarterDraftResponse struct {
	Triwulan           int             `json:"triwulan"`
	Label              string          `json:"label"`
	Narrative          model.Narrative `json:"narrative"`
	Complete           bool            `json:"complete"`
	Saved              bool            `json:"saved"`
	ID                 *uuid.UUID      `json:"id"`
	VerificationStatus *string         `json:"verification_status"`
}

type QuartersResponse struct {
	BundleID    uuid.UUID              `json:"bundle_id"`
	PuskesmasID uuid.UUID              `json:"puskesmas_id"`
	Tahun       int                    `json:"tahun"`
	Selected    int                    `json:"selected"`
	Quarters    []QuarterDraftResponse `json:"quarters"`
}

func NewQuartersResponse(bundleID, puskesmasID uuid.UUID, tahun int, d *model.Drafts) QuartersResponse {
	out := QuartersResponse{
		BundleID:    bundleID,
		PuskesmasID: puskesmasID,
		Tahun:       tahun,
		Selected:    d.Quarter(),
		Quarters:    make([]QuarterDraftResponse, 0, model.Quarters),
	}
	for q := 1; q <= model.Quarters; q++ {
		item := QuarterDraftResponse{
			Triwulan:  q,
			Label:     model.QuarterLabel(q),
			Narrative: d.Draft(q),
			Complete:  d.Complete(q),
		}
		if s := d.Saved(q); s != nil {
			id, status := s.ID, s.VerificationStatus
			item.Saved = true
			item.ID = &id
			item.VerificationStatus = &status
		}
		out.Quarters = append(out.Quarters, item)
	}
	return out
}
