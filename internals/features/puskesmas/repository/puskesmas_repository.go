package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pkp_monitor_backend/internals/constants"
	"pkp_monitor_backend/internals/features/puskesmas/model"
	helper "pkp_monitor_backend/internals/helpers"
)

var (
	ErrNotFound      = errors.New("puskesmas tidak ditemukan")
	ErrDuplicateKode = errors.New("kode puskesmas sudah dipakai")
)

type ListFilter struct {
	Status string
	Q      string
	Limit  int
	Offset int
}

type Store interface {
	ListActive(ctx context.Context) ([]model.PuskesmasModel, error)
	List(ctx context.Context, f ListFilter) ([]model.PuskesmasModel, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.PuskesmasModel, error)
	Create(ctx context.Context, m *model.PuskesmasModel) error
	Update(ctx context.Context, m *model.PuskesmasModel) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ListActive(ctx context.Context) ([]model.PuskesmasModel, error) {
	var out []model.PuskesmasModel
	err := s.db.WithContext(ctx).
		Where("status = ?", constants.PuskesmasAktif).
		Order("nama_puskesmas ASC").
		Find(&out).Error
	return out, err
}

func (s *GormStore) List(ctx context.Context, f ListFilter) ([]model.PuskesmasModel, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.PuskesmasModel{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if kw := strings.TrimSpace(f.Q); kw != "" {
		like := "%" + kw + "%"
		q = q.Where("nama_puskesmas ILIKE ? OR kode_puskesmas ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []model.PuskesmasModel
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Order("nama_puskesmas ASC").Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *GormStore) FindByID(ctx context.Context, id uuid.UUID) (*model.PuskesmasModel, error) {
	var m model.PuskesmasModel
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) Create(ctx context.Context, m *model.PuskesmasModel) error {
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return ErrDuplicateKode
		}
		return err
	}
	return nil
}

func (s *GormStore) Update(ctx context.Context, m *model.PuskesmasModel) error {
	res := s.db.WithContext(ctx).Save(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
