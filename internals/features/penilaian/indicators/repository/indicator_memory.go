package repository

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"pkp_monitor_backend/internals/features/penilaian/indicators/model"
)

type MemoryStore struct {
	mu         sync.RWMutex
	clusters   map[uuid.UUID]model.ClusterModel
	indicators map[uuid.UUID]model.IndicatorModel

	// CatalogCalls menghitung query katalog (dipakai test cache).
	CatalogCalls atomic.Int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		clusters:   make(map[uuid.UUID]model.ClusterModel),
		indicators: make(map[uuid.UUID]model.IndicatorModel),
	}
}

func (s *MemoryStore) Catalog(_ context.Context, bundleID uuid.UUID) ([]model.CatalogItem, error) {
	s.CatalogCalls.Add(1)
	s.mu.RLock()
	defer s.mu.RUnlock()

	clusters := make([]model.ClusterModel, 0)
	for _, c := range s.clusters {
		if c.BundleID == bundleID {
			clusters = append(clusters, c)
		}
	}
	sort.SliceStable(clusters, func(i, j int) bool {
		if clusters[i].Urutan != clusters[j].Urutan {
			return clusters[i].Urutan < clusters[j].Urutan
		}
		return clusters[i].CreatedAt.Before(clusters[j].CreatedAt)
	})

	indicators := make([]model.IndicatorModel, 0, len(s.indicators))
	for _, ind := range s.indicators {
		indicators = append(indicators, ind)
	}
	sort.SliceStable(indicators, func(i, j int) bool {
		if indicators[i].Urutan != indicators[j].Urutan {
			return indicators[i].Urutan < indicators[j].Urutan
		}
		return indicators[i].CreatedAt.Before(indicators[j].CreatedAt)
	})
	return assemble(clusters, indicators), nil
}

func (s *MemoryStore) ListClusters(_ context.Context, bundleID uuid.UUID) ([]model.ClusterModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ClusterModel, 0)
	for _, c := range s.clusters {
		if c.BundleID == bundleID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Urutan != out[j].Urutan {
			return out[i].Urutan < out[j].Urutan
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) FindCluster(_ context.Context, id uuid.UUID) (*model.ClusterModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.clusters[id]
	if !ok {
		return nil, ErrClusterNotFound
	}
	return &m, nil
}

func (s *MemoryStore) CreateCluster(_ context.Context, m *model.ClusterModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := time.Now()
	m.CreatedAt, m.UpdatedAt = now, now
	s.clusters[m.ID] = *m
	return nil
}

func (s *MemoryStore) UpdateCluster(_ context.Context, m *model.ClusterModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clusters[m.ID]; !ok {
		return ErrClusterNotFound
	}
	m.UpdatedAt = time.Now()
	s.clusters[m.ID] = *m
	return nil
}

func (s *MemoryStore) DeleteCluster(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clusters[id]; !ok {
		return ErrClusterNotFound
	}
	for iid, ind := range s.indicators {
		if ind.ClusterID == id {
			delete(s.indicators, iid)
		}
	}
	delete(s.clusters, id)
	return nil
}

func (s *MemoryStore) FindIndicator(_ context.Context, id uuid.UUID) (*model.IndicatorModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.indicators[id]
	if !ok {
		return nil, ErrIndicatorNotFound
	}
	return &m, nil
}

func (s *MemoryStore) CreateIndicator(_ context.Context, m *model.IndicatorModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clusters[m.ClusterID]; !ok {
		return ErrClusterNotFound
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := time.Now()
	m.CreatedAt, m.UpdatedAt = now, now
	s.indicators[m.ID] = *m
	return nil
}

func (s *MemoryStore) UpdateIndicator(_ context.Context, m *model.IndicatorModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.indicators[m.ID]; !ok {
		return ErrIndicatorNotFound
	}
	m.UpdatedAt = time.Now()
	s.indicators[m.ID] = *m
	return nil
}

func (s *MemoryStore) DeleteIndicator(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.indicators[id]; !ok {
		return ErrIndicatorNotFound
	}
	delete(s.indicators, id)
	return nil
}
