package model

import (
	"time"

	"github.com/google/uuid"

	"pkp_monitor_backend/internals/constants"
)

// BundleModel: satu paket penilaian tahunan (tabel bundles).
type BundleModel struct {
	ID     uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Judul  string    `gorm:"column:judul;type:varchar(200);not null" json:"judul"`
	Tahun  int       `gorm:"column:tahun;not null;index:idx_bundles_tahun" json:"tahun"`
	Status string    `gorm:"column:status;type:varchar(10);not null;default:'draft';check:status IN ('draft','aktif','selesai')" json:"status"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (BundleModel) TableName() string {
	return "bundles"
}

func (m *BundleModel) IsActive() bool {
	return m != nil && m.Status == constants.BundleAktif
}

func IsValidStatus(s string) bool {
	switch s {
	case constants.BundleDraft, constants.BundleAktif, constants.BundleSelesai:
		return true
	}
	return false
}
