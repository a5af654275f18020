package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EvaluationModel: narasi evaluasi per (bundle, puskesmas, triwulan, tahun).
type EvaluationModel struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BundleID    uuid.UUID `gorm:"column:bundle_id;type:uuid;not null;uniqueIndex:uq_quarterly_evaluations_key,priority:1" json:"bundle_id"`
	PuskesmasID uuid.UUID `gorm:"column:puskesmas_id;type:uuid;not null;uniqueIndex:uq_quarterly_evaluations_key,priority:2" json:"puskesmas_id"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null" json:"user_id"`

	Tahun           int `gorm:"column:tahun;not null;uniqueIndex:uq_quarterly_evaluations_key,priority:4" json:"tahun"`
	PeriodeTriwulan int `gorm:"column:periode_triwulan;not null;check:periode_triwulan BETWEEN 1 AND 4;uniqueIndex:uq_quarterly_evaluations_key,priority:3" json:"periode_triwulan"`

	AnalisisPencapaian  string `gorm:"column:analisis_pencapaian;type:text;not null" json:"analisis_pencapaian"`
	HambatanKendala     string `gorm:"column:hambatan_kendala;type:text;not null" json:"hambatan_kendala"`
	RencanaTindakLanjut string `gorm:"column:rencana_tindak_lanjut;type:text;not null" json:"rencana_tindak_lanjut"`

	VerificationStatus  string     `gorm:"column:verification_status;type:varchar(10);not null;default:'pending'" json:"verification_status"`
	VerifiedBy          *uuid.UUID `gorm:"column:verified_by;type:uuid" json:"verified_by"`
	VerifiedAt          *time.Time `gorm:"column:verified_at;type:timestamptz" json:"verified_at"`
	VerificationComment *string    `gorm:"column:verification_comment;type:text" json:"verification_comment"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (EvaluationModel) TableName() string {
	return "quarterly_evaluations"
}

type Key struct {
	BundleID    uuid.UUID
	PuskesmasID uuid.UUID
	Triwulan    int
	Tahun       int
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%s:%d:%d", k.BundleID, k.PuskesmasID, k.Tahun, k.Triwulan)
}

func (m *EvaluationModel) Key() Key {
	return Key{BundleID: m.BundleID, PuskesmasID: m.PuskesmasID, Triwulan: m.PeriodeTriwulan, Tahun: m.Tahun}
}

func (m *EvaluationModel) Narrative() Narrative {
	return Narrative{
		AnalisisPencapaian:  m.AnalisisPencapaian,
		HambatanKendala:     m.HambatanKendala,
		RencanaTindakLanjut: m.RencanaTindakLanjut,
	}
}
