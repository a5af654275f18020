package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"pkp_monitor_backend/internals/constants"
	"pkp_monitor_backend/internals/features/puskesmas/model"
)

// MemoryStore dipakai di test service/controller.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]model.PuskesmasModel
}

func NewMemoryStore(seed ...model.PuskesmasModel) *MemoryStore {
	s := &MemoryStore{items: make(map[uuid.UUID]model.PuskesmasModel)}
	for _, m := range seed {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		s.items[m.ID] = m
	}
	return s
}

func (s *MemoryStore) ListActive(ctx context.Context) ([]model.PuskesmasModel, error) {
	list, _, err := s.List(ctx, ListFilter{Status: constants.PuskesmasAktif})
	return list, err
}

func (s *MemoryStore) List(_ context.Context, f ListFilter) ([]model.PuskesmasModel, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	kw := strings.ToLower(strings.TrimSpace(f.Q))
	out := make([]model.PuskesmasModel, 0, len(s.items))
	for _, m := range s.items {
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		if kw != "" && !strings.Contains(strings.ToLower(m.NamaPuskesmas), kw) &&
			!strings.Contains(strings.ToLower(m.KodePuskesmas), kw) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NamaPuskesmas < out[j].NamaPuskesmas })

	total := int64(len(out))
	if f.Limit > 0 {
		start := min(f.Offset, len(out))
		end := min(start+f.Limit, len(out))
		out = out[start:end]
	}
	return out, total, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (*model.PuskesmasModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &m, nil
}

func (s *MemoryStore) Create(_ context.Context, m *model.PuskesmasModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.items {
		if existing.KodePuskesmas == m.KodePuskesmas {
			return ErrDuplicateKode
		}
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := time.Now()
	m.CreatedAt, m.UpdatedAt = now, now
	s.items[m.ID] = *m
	return nil
}

func (s *MemoryStore) Update(_ context.Context, m *model.PuskesmasModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[m.ID]; !ok {
		return ErrNotFound
	}
	m.UpdatedAt = time.Now()
	s.items[m.ID] = *m
	return nil
}
