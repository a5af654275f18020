package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pkp_monitor_backend/internals/features/users/user_profiles/model"
)

var ErrNotFound = errors.New("profil tidak ditemukan")

type ListFilter struct {
	Role        string
	PuskesmasID *uuid.UUID
	Q           string
	Limit       int
	Offset      int
}

type Store interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.UserProfileModel, error)
	// Upsert dengan konflik pada id (1 profil per akun).
	Upsert(ctx context.Context, m *model.UserProfileModel) error
	Update(ctx context.Context, m *model.UserProfileModel) error
	List(ctx context.Context, f ListFilter) ([]model.UserProfileModel, int64, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindByID(ctx context.Context, id uuid.UUID) (*model.UserProfileModel, error) {
	var m model.UserProfileModel
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) Upsert(ctx context.Context, m *model.UserProfileModel) error {
	return UpsertTx(s.db.WithContext(ctx), m)
}

// UpsertTx dipakai juga oleh registrasi di dalam transaksi.
func UpsertTx(tx *gorm.DB, m *model.UserProfileModel) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"nama_lengkap", "nip", "jabatan", "role", "puskesmas_id", "updated_at"}),
	}).Create(m).Error
}

func (s *GormStore) Update(ctx context.Context, m *model.UserProfileModel) error {
	res := s.db.WithContext(ctx).Save(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) List(ctx context.Context, f ListFilter) ([]model.UserProfileModel, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.UserProfileModel{})
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.PuskesmasID != nil {
		q = q.Where("puskesmas_id = ?", *f.PuskesmasID)
	}
	if kw := strings.TrimSpace(f.Q); kw != "" {
		q = q.Where("nama_lengkap ILIKE ?", "%"+kw+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	var out []model.UserProfileModel
	if err := q.Order("nama_lengkap ASC").Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
