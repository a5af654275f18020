package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"pkp_monitor_backend/internals/constants"
	"pkp_monitor_backend/internals/features/penilaian/evaluations/model"
	"pkp_monitor_backend/internals/features/penilaian/verification"
)

type MemoryStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]model.EvaluationModel
	byKey map[model.Key]uuid.UUID

	UpsertCalls int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[uuid.UUID]model.EvaluationModel),
		byKey: make(map[model.Key]uuid.UUID),
	}
}

func (s *MemoryStore) Upsert(_ context.Context, m *model.EvaluationModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UpsertCalls++

	now := time.Now()
	if m.VerificationStatus == "" {
		m.VerificationStatus = constants.VerificationPending
	}
	if id, ok := s.byKey[m.Key()]; ok {
		prev := s.items[id]
		prev.UserID = m.UserID
		prev.AnalisisPencapaian = m.AnalisisPencapaian
		prev.HambatanKendala = m.HambatanKendala
		prev.RencanaTindakLanjut = m.RencanaTindakLanjut
		prev.VerificationStatus = m.VerificationStatus
		prev.VerifiedBy, prev.VerifiedAt, prev.VerificationComment = nil, nil, nil
		prev.UpdatedAt = now
		s.items[id] = prev
		m.ID, m.CreatedAt, m.UpdatedAt = prev.ID, prev.CreatedAt, now
		return nil
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt, m.UpdatedAt = now, now
	s.items[m.ID] = *m
	s.byKey[m.Key()] = m.ID
	return nil
}

func (s *MemoryStore) FindByKey(_ context.Context, k model.Key) (*model.EvaluationModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byKey[k]
	if !ok {
		return nil, nil
	}
	m := s.items[id]
	return &m, nil
}

func (s *MemoryStore) ListYear(_ context.Context, bundleID, puskesmasID uuid.UUID, tahun int) ([]model.EvaluationModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.EvaluationModel, 0, model.Quarters)
	for _, m := range s.items {
		if m.BundleID == bundleID && m.PuskesmasID == puskesmasID && m.Tahun == tahun {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PeriodeTriwulan < out[j].PeriodeTriwulan })
	return out, nil
}

func (s *MemoryStore) Verify(_ context.Context, id uuid.UUID, rec verification.Record) (*model.EvaluationModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	by, at := rec.VerifiedBy, rec.VerifiedAt
	m.VerificationStatus = rec.Status
	m.VerifiedBy = &by
	m.VerifiedAt = &at
	m.VerificationComment = rec.Comment
	s.items[id] = m
	return &m, nil
}
