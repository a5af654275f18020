package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pkp_monitor_backend/internals/features/penilaian/bundles/model"
)

var ErrNotFound = errors.New("bundle tidak ditemukan")

type ListFilter struct {
	Tahun  int
	Status string
	Limit  int
	Offset int
}

type Store interface {
	List(ctx context.Context, f ListFilter) ([]model.BundleModel, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.BundleModel, error)
	Create(ctx context.Context, m *model.BundleModel) error
	Update(ctx context.Context, m *model.BundleModel) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) List(ctx context.Context, f ListFilter) ([]model.BundleModel, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.BundleModel{})
	if f.Tahun > 0 {
		q = q.Where("tahun = ?", f.Tahun)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	var out []model.BundleModel
	if err := q.Order("tahun DESC, created_at DESC").Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *GormStore) FindByID(ctx context.Context, id uuid.UUID) (*model.BundleModel, error) {
	var m model.BundleModel
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) Create(ctx context.Context, m *model.BundleModel) error {
	return s.db.WithContext(ctx).Create(m).Error
}

func (s *GormStore) Update(ctx context.Context, m *model.BundleModel) error {
	res := s.db.WithContext(ctx).Model(m).Select("judul", "status", "updated_at").Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
