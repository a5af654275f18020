package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "pkp_monitor_backend/internals/features/users/auth/model"
	profileModel "pkp_monitor_backend/internals/features/users/user_profiles/model"
	profileRepo "pkp_monitor_backend/internals/features/users/user_profiles/repository"
	helper "pkp_monitor_backend/internals/helpers"
)

var (
	ErrUserNotFound         = errors.New("user tidak ditemukan")
	ErrEmailTaken           = errors.New("email sudah terdaftar")
	ErrRefreshTokenNotFound = errors.New("refresh token tidak ditemukan")
)

type Store interface {
	CreateUserWithProfile(ctx context.Context, u *authModel.UserModel, p *profileModel.UserProfileModel) error
	FindUserByEmail(ctx context.Context, email string) (*authModel.UserModel, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*authModel.UserModel, error)
	LinkGoogleID(ctx context.Context, id uuid.UUID, googleID string) error
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error

	BlacklistToken(ctx context.Context, tokenHash string, expiredAt time.Time) error
	PurgeBlacklist(ctx context.Context, before time.Time, limit int) (int64, error)

	SaveRefreshToken(ctx context.Context, rt *authModel.RefreshToken) error
	FindRefreshToken(ctx context.Context, hash []byte) (*authModel.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id uuid.UUID, at time.Time) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

/* ====================== USER ====================== */

// CreateUserWithProfile: akun + profil dalam satu transaksi.
func (s *GormStore) CreateUserWithProfile(ctx context.Context, u *authModel.UserModel, p *profileModel.UserProfileModel) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return ErrEmailTaken
			}
			return err
		}
		p.ID = u.ID
		return profileRepo.UpsertTx(tx, p)
	})
}

func (s *GormStore) FindUserByEmail(ctx context.Context, email string) (*authModel.UserModel, error) {
	var u authModel.UserModel
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *GormStore) FindUserByID(ctx context.Context, id uuid.UUID) (*authModel.UserModel, error) {
	var u authModel.UserModel
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *GormStore) LinkGoogleID(ctx context.Context, id uuid.UUID, googleID string) error {
	return s.db.WithContext(ctx).Model(&authModel.UserModel{}).
		Where("id = ? AND google_id IS NULL", id).
		Update("google_id", googleID).Error
}

func (s *GormStore) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return s.db.WithContext(ctx).Model(&authModel.UserModel{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}

/* ====================== BLACKLIST ====================== */

func (s *GormStore) BlacklistToken(ctx context.Context, tokenHash string, expiredAt time.Time) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token_hash"}}, DoNothing: true}).
		Create(&authModel.TokenBlacklist{TokenHash: tokenHash, ExpiredAt: expiredAt}).Error
}

// PurgeBlacklist menghapus permanen baris yang expired_at < before, maksimal limit baris per panggilan.
func (s *GormStore) PurgeBlacklist(ctx context.Context, before time.Time, limit int) (int64, error) {
	sub := s.db.Model(&authModel.TokenBlacklist{}).Unscoped().
		Select("id").
		Where("expired_at < ?", before).
		Limit(limit)
	res := s.db.WithContext(ctx).Unscoped().
		Where("id IN (?)", sub).
		Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}

/* ====================== REFRESH TOKEN ====================== */

// SaveRefreshToken: insert dengan synchronous_commit OFF (hanya untuk transaksi ini).
func (s *GormStore) SaveRefreshToken(ctx context.Context, rt *authModel.RefreshToken) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`SET LOCAL synchronous_commit = OFF`).Error; err != nil {
			zap.L().Warn("[AUTH] set synchronous_commit=OFF gagal", zap.Error(err))
		}
		return tx.Create(rt).Error
	})
}

func (s *GormStore) FindRefreshToken(ctx context.Context, hash []byte) (*authModel.RefreshToken, error) {
	var rt authModel.RefreshToken
	if err := s.db.WithContext(ctx).Where("token_hash = ?", hash).First(&rt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenNotFound
		}
		return nil, err
	}
	return &rt, nil
}

func (s *GormStore) RevokeRefreshToken(ctx context.Context, id uuid.UUID, at time.Time) error {
	return s.db.WithContext(ctx).Model(&authModel.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", at).Error
}
