package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pkp_monitor_backend/internals/features/penilaian/indicators/model"
	helper "pkp_monitor_backend/internals/helpers"
)

var (
	ErrClusterNotFound   = errors.New("klaster tidak ditemukan")
	ErrIndicatorNotFound = errors.New("indikator tidak ditemukan")
	ErrInUse             = errors.New("data masih dipakai penilaian")
)

type Store interface {
	Catalog(ctx context.Context, bundleID uuid.UUID) ([]model.CatalogItem, error)

	ListClusters(ctx context.Context, bundleID uuid.UUID) ([]model.ClusterModel, error)
	FindCluster(ctx context.Context, id uuid.UUID) (*model.ClusterModel, error)
	CreateCluster(ctx context.Context, m *model.ClusterModel) error
	UpdateCluster(ctx context.Context, m *model.ClusterModel) error
	DeleteCluster(ctx context.Context, id uuid.UUID) error

	FindIndicator(ctx context.Context, id uuid.UUID) (*model.IndicatorModel, error)
	CreateIndicator(ctx context.Context, m *model.IndicatorModel) error
	UpdateIndicator(ctx context.Context, m *model.IndicatorModel) error
	DeleteIndicator(ctx context.Context, id uuid.UUID) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

/* ====================== CATALOG ====================== */

func (s *GormStore) Catalog(ctx context.Context, bundleID uuid.UUID) ([]model.CatalogItem, error) {
	db := s.db.WithContext(ctx)

	var clusters []model.ClusterModel
	if err := db.Where("bundle_id = ?", bundleID).
		Order("urutan ASC, created_at ASC").
		Find(&clusters).Error; err != nil {
		return nil, err
	}
	if len(clusters) == 0 {
		return []model.CatalogItem{}, nil
	}

	ids := make([]uuid.UUID, 0, len(clusters))
	for _, c := range clusters {
		ids = append(ids, c.ID)
	}
	var indicators []model.IndicatorModel
	if err := db.Where("cluster_id IN ?", ids).
		Order("urutan ASC, created_at ASC").
		Find(&indicators).Error; err != nil {
		return nil, err
	}

	return assemble(clusters, indicators), nil
}

// assemble menjaga urutan klaster, lalu urutan indikator di dalam klaster.
func assemble(clusters []model.ClusterModel, indicators []model.IndicatorModel) []model.CatalogItem {
	byCluster := make(map[uuid.UUID][]model.IndicatorModel, len(clusters))
	for _, ind := range indicators {
		byCluster[ind.ClusterID] = append(byCluster[ind.ClusterID], ind)
	}
	out := make([]model.CatalogItem, 0, len(indicators))
	for _, c := range clusters {
		for _, ind := range byCluster[c.ID] {
			out = append(out, model.CatalogItem{
				ClusterID:     c.ID,
				BundleID:      c.BundleID,
				NamaKlaster:   c.NamaKlaster,
				ClusterUrutan: c.Urutan,
				Indicator:     ind,
			})
		}
	}
	return out
}

/* ====================== CLUSTER ====================== */

func (s *GormStore) ListClusters(ctx context.Context, bundleID uuid.UUID) ([]model.ClusterModel, error) {
	var out []model.ClusterModel
	err := s.db.WithContext(ctx).
		Where("bundle_id = ?", bundleID).
		Order("urutan ASC, created_at ASC").
		Find(&out).Error
	return out, err
}

func (s *GormStore) FindCluster(ctx context.Context, id uuid.UUID) (*model.ClusterModel, error) {
	var m model.ClusterModel
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClusterNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) CreateCluster(ctx context.Context, m *model.ClusterModel) error {
	return s.db.WithContext(ctx).Create(m).Error
}

func (s *GormStore) UpdateCluster(ctx context.Context, m *model.ClusterModel) error {
	res := s.db.WithContext(ctx).Model(m).Select("nama_klaster", "urutan", "updated_at").Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrClusterNotFound
	}
	return nil
}

// DeleteCluster ikut menghapus indikator di dalamnya (satu transaksi).
func (s *GormStore) DeleteCluster(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cluster_id = ?", id).Delete(&model.IndicatorModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.ClusterModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrClusterNotFound
		}
		return nil
	})
	if helper.IsForeignKeyViolation(err) {
		return ErrInUse
	}
	return err
}

/* ====================== INDICATOR ====================== */

func (s *GormStore) FindIndicator(ctx context.Context, id uuid.UUID) (*model.IndicatorModel, error) {
	var m model.IndicatorModel
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIndicatorNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) CreateIndicator(ctx context.Context, m *model.IndicatorModel) error {
	return s.db.WithContext(ctx).Create(m).Error
}

func (s *GormStore) UpdateIndicator(ctx context.Context, m *model.IndicatorModel) error {
	res := s.db.WithContext(ctx).Save(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrIndicatorNotFound
	}
	return nil
}

func (s *GormStore) DeleteIndicator(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&model.IndicatorModel{}, "id = ?", id)
	if res.Error != nil {
		if helper.IsForeignKeyViolation(res.Error) {
			return ErrInUse
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrIndicatorNotFound
	}
	return nil
}
