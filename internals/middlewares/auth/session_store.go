package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authModel "pkp_monitor_backend/internals/features/users/auth/model"
)

var ErrPrincipalNotFound = errors.New("principal not found")

// Principal: identitas yang dipakai middleware untuk membangun workspace.
type Principal struct {
	UserID      uuid.UUID
	IsActive    bool
	Role        string
	PuskesmasID *uuid.UUID
}

type SessionStore interface {
	IsBlacklisted(ctx context.Context, rawToken string) (bool, error)
	LoadPrincipal(ctx context.Context, userID uuid.UUID) (*Principal, error)
}

type GormSessionStore struct {
	db *gorm.DB
}

func NewGormSessionStore(db *gorm.DB) *GormSessionStore {
	return &GormSessionStore{db: db}
}

func (s *GormSessionStore) IsBlacklisted(ctx context.Context, rawToken string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&authModel.TokenBlacklist{}).
		Where("token_hash = ?", authModel.HashToken(rawToken)).
		Count(&n).Error
	return n > 0, err
}

func (s *GormSessionStore) LoadPrincipal(ctx context.Context, userID uuid.UUID) (*Principal, error) {
	var row struct {
		ID          uuid.UUID
		IsActive    bool
		Role        *string
		PuskesmasID *uuid.UUID
	}
	res := s.db.WithContext(ctx).
		Table("users u").
		Select("u.id, u.is_active, p.role, p.puskesmas_id").
		Joins("LEFT JOIN user_profiles p ON p.id = u.id").
		Where("u.id = ?", userID).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrPrincipalNotFound
	}

	p := &Principal{UserID: row.ID, IsActive: row.IsActive, PuskesmasID: row.PuskesmasID}
	if row.Role != nil {
		p.Role = *row.Role
	}
	return p, nil
}
