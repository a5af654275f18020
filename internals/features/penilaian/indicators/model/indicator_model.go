package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"pkp_monitor_backend/internals/features/penilaian/scoring"
)

// IndicatorModel (tabel indicators). scoring_criteria: map kunci skala ("0".."10") → deskripsi.
type IndicatorModel struct {
	ID                  uuid.UUID                             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClusterID           uuid.UUID                             `gorm:"column:cluster_id;type:uuid;not null;index:idx_indicators_cluster_urutan,priority:1" json:"cluster_id"`
	Urutan              int                                   `gorm:"column:urutan;not null;default:0;index:idx_indicators_cluster_urutan,priority:2" json:"urutan"`
	NamaIndikator       string                                `gorm:"column:nama_indikator;type:text;not null" json:"nama_indikator"`
	DefinisiOperasional *string                               `gorm:"column:definisi_operasional;type:text" json:"definisi_operasional"`
	Type                string                                `gorm:"column:type;type:varchar(20);not null;check:type IN ('scoring','target_achievement')" json:"type"`
	ScoringCriteria     datatypes.JSONType[map[string]string] `gorm:"column:scoring_criteria;type:jsonb" json:"scoring_criteria"`
	TargetPercentage    *float64                              `gorm:"column:target_percentage;type:numeric(5,2)" json:"target_percentage"`
	TotalSasaran        *int                                  `gorm:"column:total_sasaran" json:"total_sasaran"`
	Satuan              *string                               `gorm:"column:satuan;type:varchar(50)" json:"satuan"`
	Periodicity         string                                `gorm:"column:periodicity;type:varchar(10);not null;default:'annual'" json:"periodicity"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (IndicatorModel) TableName() string {
	return "indicators"
}

func (m *IndicatorModel) Rule() scoring.IndicatorRule {
	return scoring.IndicatorRule{
		Type:             m.Type,
		ScoringCriteria:  m.ScoringCriteria.Data(),
		TargetPercentage: m.TargetPercentage,
		TotalSasaran:     m.TotalSasaran,
		Periodicity:      m.Periodicity,
	}
}

// CatalogItem: satu indikator beserta klasternya, urut klaster.urutan lalu indikator.urutan.
type CatalogItem struct {
	ClusterID     uuid.UUID      `json:"cluster_id"`
	BundleID      uuid.UUID      `json:"bundle_id"`
	NamaKlaster   string         `json:"nama_klaster"`
	ClusterUrutan int            `json:"cluster_urutan"`
	Indicator     IndicatorModel `json:"indicator"`
}
