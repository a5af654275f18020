package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AssessmentModel: satu nilai indikator per (indikator, puskesmas, triwulan, tahun).
type AssessmentModel struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BundleID    uuid.UUID `gorm:"column:bundle_id;type:uuid;not null;index:idx_assessments_scope,priority:1" json:"bundle_id"`
	IndicatorID uuid.UUID `gorm:"column:indicator_id;type:uuid;not null;uniqueIndex:uq_assessments_key,priority:1" json:"indicator_id"`
	PuskesmasID uuid.UUID `gorm:"column:puskesmas_id;type:uuid;not null;uniqueIndex:uq_assessments_key,priority:2;index:idx_assessments_scope,priority:2" json:"puskesmas_id"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null" json:"user_id"`

	Tahun           int `gorm:"column:tahun;not null;uniqueIndex:uq_assessments_key,priority:4;index:idx_assessments_scope,priority:3" json:"tahun"`
	PeriodeTriwulan int `gorm:"column:periode_triwulan;not null;check:periode_triwulan BETWEEN 1 AND 4;uniqueIndex:uq_assessments_key,priority:3;index:idx_assessments_scope,priority:4" json:"periode_triwulan"`

	SelectedScore        *int    `gorm:"column:selected_score" json:"selected_score"`
	ActualAchievement    *int    `gorm:"column:actual_achievement" json:"actual_achievement"`
	CalculatedPercentage float64 `gorm:"column:calculated_percentage;type:numeric(5,2);not null;default:0" json:"calculated_percentage"`
	Keterangan           *string `gorm:"column:keterangan;type:text" json:"keterangan"`
	BuktiDukung          *string `gorm:"column:bukti_dukung;type:text" json:"bukti_dukung"`

	// client_version: unix ms saat user mengubah field; versi lebih tua tidak menimpa.
	ClientVersion int64 `gorm:"column:client_version;not null;default:0" json:"client_version"`

	VerificationStatus  string     `gorm:"column:verification_status;type:varchar(10);not null;default:'pending'" json:"verification_status"`
	VerifiedBy          *uuid.UUID `gorm:"column:verified_by;type:uuid" json:"verified_by"`
	VerifiedAt          *time.Time `gorm:"column:verified_at;type:timestamptz" json:"verified_at"`
	VerificationComment *string    `gorm:"column:verification_comment;type:text" json:"verification_comment"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (AssessmentModel) TableName() string {
	return "assessments"
}

// Key: kunci konflik upsert.
type Key struct {
	IndicatorID uuid.UUID
	PuskesmasID uuid.UUID
	Triwulan    int
	Tahun       int
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%s:%d:%d", k.IndicatorID, k.PuskesmasID, k.Tahun, k.Triwulan)
}

func (m *AssessmentModel) Key() Key {
	return Key{IndicatorID: m.IndicatorID, PuskesmasID: m.PuskesmasID, Triwulan: m.PeriodeTriwulan, Tahun: m.Tahun}
}

// HasValue: sudah ada input mentah (skor atau capaian).
func (m *AssessmentModel) HasValue() bool {
	return m != nil && (m.SelectedScore != nil || m.ActualAchievement != nil)
}
