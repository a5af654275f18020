package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	bundleModel "pkp_monitor_backend/internals/features/penilaian/bundles/model"
	"pkp_monitor_backend/internals/features/penilaian/indicators/dto"
	"pkp_monitor_backend/internals/features/penilaian/indicators/model"
	"pkp_monitor_backend/internals/features/penilaian/indicators/repository"
	"pkp_monitor_backend/internals/features/penilaian/scoring"
)

var (
	ErrIndicatorNotInBundle = errors.New("indikator bukan bagian dari bundle")
	ErrInvalidRule          = errors.New("konfigurasi indikator tidak valid")
)

type BundleReader interface {
	Get(ctx context.Context, id uuid.UUID) (*bundleModel.BundleModel, error)
}

type CatalogCache interface {
	Get(ctx context.Context, bundleID uuid.UUID) ([]model.CatalogItem, bool, error)
	Set(ctx context.Context, bundleID uuid.UUID, items []model.CatalogItem) error
	Invalidate(ctx context.Context, bundleID uuid.UUID) error
}

// Batas waktu load katalog bersama, lepas dari context request pemicunya.
const catalogLoadTimeout = 10 * time.Second

type Service struct {
	store   repository.Store
	bundles BundleReader
	cache   CatalogCache
	group   singleflight.Group

	// generasi katalog per bundle, naik setiap kali katalog berubah
	genMu sync.Mutex
	gens  map[uuid.UUID]uint64
}

func New(store repository.Store, bundles BundleReader) *Service {
	return &Service{store: store, bundles: bundles, gens: make(map[uuid.UUID]uint64)}
}

// UseCache memasang cache katalog (opsional).
func (s *Service) UseCache(c CatalogCache) {
	s.cache = c
}

/* ===========================================================
 * Katalog
 * =========================================================== */

// Catalog: cache dulu, kalau miss query ke DB; miss bersamaan untuk bundle yang sama digabung.
// Hasil load hanya ditulis ke cache kalau katalog tidak berubah selama load berjalan.
func (s *Service) Catalog(ctx context.Context, bundleID uuid.UUID) ([]model.CatalogItem, error) {
	if s.cache != nil {
		items, ok, err := s.cache.Get(ctx, bundleID)
		switch {
		case err != nil:
			zap.L().Warn("[CATALOG] cache get gagal", zap.String("bundle_id", bundleID.String()), zap.Error(err))
		case ok:
			return items, nil
		}
	}

	ch := s.group.DoChan(bundleID.String(), func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), catalogLoadTimeout)
		defer cancel()
		return s.load(loadCtx, bundleID)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("load katalog: %w", res.Err)
		}
		return res.Val.([]model.CatalogItem), nil
	}
}

func (s *Service) load(ctx context.Context, bundleID uuid.UUID) ([]model.CatalogItem, error) {
	gen := s.generation(bundleID)
	items, err := s.store.Catalog(ctx, bundleID)
	if err != nil {
		return nil, err
	}
	if s.cache == nil {
		return items, nil
	}

	s.genMu.Lock()
	defer s.genMu.Unlock()
	if s.gens[bundleID] != gen {
		zap.L().Debug("[CATALOG] katalog berubah selama load, cache tidak ditulis", zap.String("bundle_id", bundleID.String()))
		return items, nil
	}
	if err := s.cache.Set(ctx, bundleID, items); err != nil {
		zap.L().Warn("[CATALOG] cache set gagal", zap.String("bundle_id", bundleID.String()), zap.Error(err))
	}
	return items, nil
}

func (s *Service) generation(bundleID uuid.UUID) uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.gens[bundleID]
}

// BundleCatalog memastikan bundle ada lalu mengembalikan katalognya.
func (s *Service) BundleCatalog(ctx context.Context, bundleID uuid.UUID) (*bundleModel.BundleModel, []model.CatalogItem, error) {
	b, err := s.bundles.Get(ctx, bundleID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.Catalog(ctx, bundleID)
	if err != nil {
		return nil, nil, err
	}
	return b, items, nil
}

// FindInBundle: indikator harus ada di katalog bundle tersebut.
func (s *Service) FindInBundle(ctx context.Context, bundleID, indicatorID uuid.UUID) (*model.CatalogItem, error) {
	items, err := s.Catalog(ctx, bundleID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Indicator.ID == indicatorID {
			return &items[i], nil
		}
	}
	return nil, ErrIndicatorNotInBundle
}

func (s *Service) invalidate(ctx context.Context, bundleID uuid.UUID) {
	s.genMu.Lock()
	s.gens[bundleID]++
	s.genMu.Unlock()

	s.group.Forget(bundleID.String())
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(context.WithoutCancel(ctx), bundleID); err != nil {
		zap.L().Warn("[CATALOG] invalidate gagal", zap.String("bundle_id", bundleID.String()), zap.Error(err))
	}
}

/* ===========================================================
 * Admin: klaster
 * =========================================================== */

func (s *Service) ListClusters(ctx context.Context, bundleID uuid.UUID) ([]model.ClusterModel, error) {
	if _, err := s.bundles.Get(ctx, bundleID); err != nil {
		return nil, err
	}
	return s.store.ListClusters(ctx, bundleID)
}

func (s *Service) CreateCluster(ctx context.Context, bundleID uuid.UUID, req dto.CreateClusterRequest) (*model.ClusterModel, error) {
	if _, err := s.bundles.Get(ctx, bundleID); err != nil {
		return nil, err
	}
	m := &model.ClusterModel{BundleID: bundleID, NamaKlaster: strings.TrimSpace(req.NamaKlaster), Urutan: req.Urutan}
	if err := s.store.CreateCluster(ctx, m); err != nil {
		return nil, fmt.Errorf("create klaster: %w", err)
	}
	s.invalidate(ctx, bundleID)
	return m, nil
}

func (s *Service) PatchCluster(ctx context.Context, id uuid.UUID, req dto.UpdateClusterRequest) (*model.ClusterModel, error) {
	m, err := s.store.FindCluster(ctx, id)
	if err != nil {
		return nil, err
	}
	req.ApplyToModel(m)
	if err := s.store.UpdateCluster(ctx, m); err != nil {
		return nil, err
	}
	s.invalidate(ctx, m.BundleID)
	return m, nil
}

func (s *Service) DeleteCluster(ctx context.Context, id uuid.UUID) error {
	m, err := s.store.FindCluster(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteCluster(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, m.BundleID)
	return nil
}

/* ===========================================================
 * Admin: indikator
 * =========================================================== */

func validateRule(m *model.IndicatorModel) error {
	if err := scoring.ValidateRule(m.Rule()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRule, err)
	}
	return nil
}

func (s *Service) CreateIndicator(ctx context.Context, clusterID uuid.UUID, req dto.CreateIndicatorRequest) (*model.IndicatorModel, error) {
	cl, err := s.store.FindCluster(ctx, clusterID)
	if err != nil {
		return nil, err
	}
	m := req.ToModel(clusterID)
	if err := validateRule(m); err != nil {
		return nil, err
	}
	if err := s.store.CreateIndicator(ctx, m); err != nil {
		return nil, fmt.Errorf("create indikator: %w", err)
	}
	s.invalidate(ctx, cl.BundleID)
	return m, nil
}

func (s *Service) PatchIndicator(ctx context.Context, id uuid.UUID, req dto.UpdateIndicatorRequest) (*model.IndicatorModel, error) {
	m, err := s.store.FindIndicator(ctx, id)
	if err != nil {
		return nil, err
	}
	cl, err := s.store.FindCluster(ctx, m.ClusterID)
	if err != nil {
		return nil, err
	}
	req.ApplyToModel(m)
	if err := validateRule(m); err != nil {
		return nil, err
	}
	if err := s.store.UpdateIndicator(ctx, m); err != nil {
		return nil, err
	}
	s.invalidate(ctx, cl.BundleID)
	return m, nil
}

func (s *Service) DeleteIndicator(ctx context.Context, id uuid.UUID) error {
	m, err := s.store.FindIndicator(ctx, id)
	if err != nil {
		return err
	}
	cl, err := s.store.FindCluster(ctx, m.ClusterID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteIndicator(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cl.BundleID)
	return nil
}
