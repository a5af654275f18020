package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel: kredensial akun (tabel users). Data profil ada di user_profiles.
type UserModel struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email       string     `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_users_email" json:"email"`
	Password    string     `gorm:"column:password;type:varchar(255);not null" json:"-"`
	GoogleID    *string    `gorm:"column:google_id;type:varchar(255);uniqueIndex:uq_users_google_id" json:"google_id,omitempty"`
	IsActive    bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
	LastLoginAt *time.Time `gorm:"column:last_login_at;type:timestamptz" json:"last_login_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}
