package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"pkp_monitor_backend/internals/constants"
)

// UserProfileModel merepresentasikan tabel user_profiles.
// ID sama dengan users.id (1:1).
type UserProfileModel struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	NamaLengkap string     `gorm:"column:nama_lengkap;type:varchar(150);not null" json:"nama_lengkap"`
	NIP         *string    `gorm:"column:nip;type:varchar(30)" json:"nip"`
	Jabatan     *string    `gorm:"column:jabatan;type:varchar(100)" json:"jabatan"`
	Role        string     `gorm:"column:role;type:varchar(30);not null;index" json:"role"`
	PuskesmasID *uuid.UUID `gorm:"column:puskesmas_id;type:uuid;index" json:"puskesmas_id"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (UserProfileModel) TableName() string {
	return "user_profiles"
}

// HasFacility: profil tanpa puskesmas dianggap belum lengkap untuk input penilaian.
func (m *UserProfileModel) HasFacility() bool {
	return m != nil && m.PuskesmasID != nil && *m.PuskesmasID != uuid.Nil
}

// IsComplete: petugas puskesmas wajib punya penempatan, role lain cukup nama lengkap.
func (m *UserProfileModel) IsComplete() bool {
	if m == nil || strings.TrimSpace(m.NamaLengkap) == "" {
		return false
	}
	if m.Role == constants.RolePetugasPuskesmas {
		return m.HasFacility()
	}
	return true
}
