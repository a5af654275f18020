package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"pkp_monitor_backend/internals/features/users/user_profiles/model"
)

type MemoryStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]model.UserProfileModel
}

func NewMemoryStore(seed ...model.UserProfileModel) *MemoryStore {
	s := &MemoryStore{items: make(map[uuid.UUID]model.UserProfileModel)}
	for _, m := range seed {
		s.items[m.ID] = m
	}
	return s
}

func (s *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (*model.UserProfileModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &m, nil
}

func (s *MemoryStore) Upsert(_ context.Context, m *model.UserProfileModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if prev, ok := s.items[m.ID]; ok {
		m.CreatedAt = prev.CreatedAt
	} else {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	s.items[m.ID] = *m
	return nil
}

func (s *MemoryStore) Update(_ context.Context, m *model.UserProfileModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[m.ID]; !ok {
		return ErrNotFound
	}
	m.UpdatedAt = time.Now()
	s.items[m.ID] = *m
	return nil
}

func (s *MemoryStore) List(_ context.Context, f ListFilter) ([]model.UserProfileModel, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	kw := strings.ToLower(strings.TrimSpace(f.Q))
	out := make([]model.UserProfileModel, 0)
	for _, m := range s.items {
		if f.Role != "" && m.Role != f.Role {
			continue
		}
		if f.PuskesmasID != nil && (m.PuskesmasID == nil || *m.PuskesmasID != *f.PuskesmasID) {
			continue
		}
		if kw != "" && !strings.Contains(strings.ToLower(m.NamaLengkap), kw) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NamaLengkap < out[j].NamaLengkap })
	total := int64(len(out))
	if f.Limit > 0 {
		start := min(f.Offset, len(out))
		out = out[start:min(start+f.Limit, len(out))]
	}
	return out, total, nil
}
