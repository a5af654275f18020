package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"pkp_monitor_backend/internals/features/penilaian/bundles/model"
)

type MemoryStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]model.BundleModel
}

func NewMemoryStore(seed ...model.BundleModel) *MemoryStore {
	s := &MemoryStore{items: make(map[uuid.UUID]model.BundleModel)}
	for _, m := range seed {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		s.items[m.ID] = m
	}
	return s
}

func (s *MemoryStore) List(_ context.Context, f ListFilter) ([]model.BundleModel, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.BundleModel, 0, len(s.items))
	for _, m := range s.items {
		if f.Tahun > 0 && m.Tahun != f.Tahun {
			continue
		}
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Tahun != out[j].Tahun {
			return out[i].Tahun > out[j].Tahun
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	total := int64(len(out))
	if f.Limit > 0 {
		start := min(f.Offset, len(out))
		end := min(start+f.Limit, len(out))
		out = out[start:end]
	}
	return out, total, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (*model.BundleModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &m, nil
}

func (s *MemoryStore) Create(_ context.Context, m *model.BundleModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := time.Now()
	m.CreatedAt, m.UpdatedAt = now, now
	s.items[m.ID] = *m
	return nil
}

func (s *MemoryStore) Update(_ context.Context, m *model.BundleModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[m.ID]; !ok {
		return ErrNotFound
	}
	m.UpdatedAt = time.Now()
	s.items[m.ID] = *m
	return nil
}
