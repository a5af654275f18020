package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"gorm.io/gorm"
)

// TokenBlacklist menyimpan hash access token yang sudah logout.
type TokenBlacklist struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	TokenHash string         `gorm:"column:token_hash;type:char(64);not null;uniqueIndex" json:"-"`
	ExpiredAt time.Time      `gorm:"column:expired_at;type:timestamptz;not null;index" json:"expired_at"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}

// HashToken: sha256 hex dari raw JWT, supaya token asli tidak tersimpan di DB.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
