package model

import (
	"time"

	"github.com/google/uuid"
)

// PuskesmasModel merepresentasikan tabel puskesmas
type PuskesmasModel struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	KodePuskesmas string    `gorm:"column:kode_puskesmas;type:varchar(30);not null;uniqueIndex:uq_puskesmas_kode" json:"kode_puskesmas"`
	NamaPuskesmas string    `gorm:"column:nama_puskesmas;type:varchar(150);not null" json:"nama_puskesmas"`
	Alamat        *string   `gorm:"column:alamat;type:text" json:"alamat"`
	Kecamatan     *string   `gorm:"column:kecamatan;type:varchar(100)" json:"kecamatan"`
	Kabupaten     *string   `gorm:"column:kabupaten;type:varchar(100)" json:"kabupaten"`
	Telepon       *string   `gorm:"column:telepon;type:varchar(30)" json:"telepon"`

	// aktif | nonaktif
	Status string `gorm:"column:status;type:varchar(20);not null;default:aktif;index" json:"status"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (PuskesmasModel) TableName() string {
	return "puskesmas"
}
