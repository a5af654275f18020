package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"pkp_monitor_backend/internals/features/penilaian/assessments/model"
)

/* =========================================================
 * Request: PUT /api/u/assessments (auto-save satu field)
 * ========================================================= */

// SaveAssessmentRequest: calculated_percentage tidak pernah dikirim client.
type SaveAssessmentRequest struct {
	BundleID          uuid.UUID `json:"bundle_id" validate:"required"`
	IndicatorID       uuid.UUID `json:"indicator_id" validate:"required"`
	Tahun             int       `json:"tahun" validate:"omitempty,min=2000,max=2100"`
	PeriodeTriwulan   int       `json:"periode_triwulan" validate:"required,min=1,max=4"`
	SelectedScore     *int      `json:"selected_score" validate:"omitempty,min=0,max=10"`
	ActualAchievement *int      `json:"actual_achievement" validate:"omitempty,min=0"`
	Keterangan        *string   `json:"keterangan" validate:"omitempty,max=5000"`
	BuktiDukung       *string   `json:"bukti_dukung" validate:"omitempty,max=2000"`
	// unix ms saat field diubah di client
	ClientVersion *int64 `json:"client_version" validate:"omitempty,min=0"`
}

func (r *SaveAssessmentRequest) Normalize() {
	r.Keterangan = trimPtr(r.Keterangan)
	r.BuktiDukung = trimPtr(r.BuktiDukung)
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	if s == "" {
		return nil
	}
	return &s
}

/* =========================================================
 * Response
 * ========================================================= */

type AssessmentResponse struct {
	ID                   uuid.UUID  `json:"id"`
	BundleID             uuid.UUID  `json:"bundle_id"`
	IndicatorID          uuid.UUID  `json:"indicator_id"`
	PuskesmasID          uuid.UUID  `json:"puskesmas_id"`
	UserID               uuid.UUID  `json:"user_id"`
	Tahun                int        `json:"tahun"`
	PeriodeTriwulan      int        `json:"periode_triwulan"`
	SelectedScore        *int       `json:"selected_score"`
	ActualAchievement    *int       `json:"actual_achievement"`
	CalculatedPercentage float64    `json:"calculated_percentage"`
	Keterangan           *string    `json:"keterangan"`
	BuktiDukung          *string    `json:"bukti_dukung"`
	ClientVersion        int64      `json:"client_version"`
	VerificationStatus   string     `json:"verification_status"`
	VerifiedBy           *uuid.UUID `json:"verified_by"`
	VerifiedAt           *time.Time `json:"verified_at"`
	VerificationComment  *string    `json:"verification_comment"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func NewAssessmentResponse(m *model.AssessmentModel) *AssessmentResponse {
	if m == nil {
		return nil
	}
	return &AssessmentResponse{
		ID:                   m.ID,
		BundleID:             m.BundleID,
		IndicatorID:          m.IndicatorID,
		PuskesmasID:          m.PuskesmasID,
		UserID:               m.UserID,
		Tahun:                m.Tahun,
		PeriodeTriwulan:      m.PeriodeTriwulan,
		SelectedScore:        m.SelectedScore,
		ActualAchievement:    m.ActualAchievement,
		CalculatedPercentage: m.CalculatedPercentage,
		Keterangan:           m.Keterangan,
		BuktiDukung:          m.BuktiDukung,
		ClientVersion:        m.ClientVersion,
		VerificationStatus:   m.VerificationStatus,
		VerifiedBy:           m.VerifiedBy,
		VerifiedAt:           m.VerifiedAt,
		VerificationComment:  m.VerificationComment,
		UpdatedAt:            m.UpdatedAt,
	}
}

func NewAssessmentResponses(list []model.AssessmentModel) []AssessmentResponse {
	out := make([]AssessmentResponse, 0, len(list))
	for i := range list {
		out = append(out, *NewAssessmentResponse(&list[i]))
	}
	return out
}

// SaveResponse: status "saved" atau "stale" (versi client lebih lama, nilai tersimpan dikembalikan).
type SaveResponse struct {
	Status       string              `json:"status"`
	Assessment   *AssessmentResponse `json:"assessment"`
	PeriodTarget *int                `json:"period_target,omitempty"`
}

type RecalculateResponse struct {
	BundleID uuid.UUID `json:"bundle_id"`
	Scanned  int       `json:"scanned"`
	Updated  int       `json:"updated"`
	Skipped  int       `json:"skipped"`
}
