package model

import (
	"time"

	"github.com/google/uuid"
)

// ClusterModel: kelompok indikator di dalam bundle (tabel clusters).
type ClusterModel struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BundleID    uuid.UUID `gorm:"column:bundle_id;type:uuid;not null;index:idx_clusters_bundle_urutan,priority:1" json:"bundle_id"`
	NamaKlaster string    `gorm:"column:nama_klaster;type:varchar(200);not null" json:"nama_klaster"`
	Urutan      int       `gorm:"column:urutan;not null;default:0;index:idx_clusters_bundle_urutan,priority:2" json:"urutan"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (ClusterModel) TableName() string {
	return "clusters"
}
