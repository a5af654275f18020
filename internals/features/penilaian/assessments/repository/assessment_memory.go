package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"pkp_monitor_backend/internals/constants"
	"pkp_monitor_backend/internals/features/penilaian/assessments/model"
	"pkp_monitor_backend/internals/features/penilaian/verification"
)

// MemoryStore meniru semantik ON CONFLICT ... WHERE client_version <= EXCLUDED.client_version.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]model.AssessmentModel
	byKey map[model.Key]uuid.UUID

	// FailNext: error yang dikembalikan Upsert berikutnya (simulasi gangguan DB di test).
	FailNext error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[uuid.UUID]model.AssessmentModel),
		byKey: make(map[model.Key]uuid.UUID),
	}
}

func (s *MemoryStore) Upsert(_ context.Context, m *model.AssessmentModel) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.FailNext; err != nil {
		s.FailNext = nil
		return false, err
	}

	now := time.Now()
	k := m.Key()
	if id, ok := s.byKey[k]; ok {
		prev := s.items[id]
		if prev.ClientVersion > m.ClientVersion {
			return false, nil
		}
		prev.BundleID = m.BundleID
		prev.UserID = m.UserID
		prev.SelectedScore = m.SelectedScore
		prev.ActualAchievement = m.ActualAchievement
		prev.CalculatedPercentage = m.CalculatedPercentage
		prev.Keterangan = m.Keterangan
		prev.BuktiDukung = m.BuktiDukung
		prev.ClientVersion = m.ClientVersion
		prev.VerificationStatus = m.VerificationStatus
		prev.VerifiedBy, prev.VerifiedAt, prev.VerificationComment = nil, nil, nil
		prev.UpdatedAt = now
		s.items[id] = prev
		m.ID, m.CreatedAt, m.UpdatedAt = prev.ID, prev.CreatedAt, now
		return true, nil
	}

	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.VerificationStatus == "" {
		m.VerificationStatus = constants.VerificationPending
	}
	m.CreatedAt, m.UpdatedAt = now, now
	s.items[m.ID] = *m
	s.byKey[k] = m.ID
	return true, nil
}

func (s *MemoryStore) FindByKey(_ context.Context, k model.Key) (*model.AssessmentModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byKey[k]
	if !ok {
		return nil, nil
	}
	m := s.items[id]
	return &m, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (*model.AssessmentModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &m, nil
}

func (s *MemoryStore) List(_ context.Context, f Filter) ([]model.AssessmentModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.AssessmentModel, 0)
	for _, m := range s.items {
		if m.BundleID != f.BundleID {
			continue
		}
		if f.PuskesmasID != nil && m.PuskesmasID != *f.PuskesmasID {
			continue
		}
		if f.Tahun > 0 && m.Tahun != f.Tahun {
			continue
		}
		if f.Triwulan > 0 && m.PeriodeTriwulan != f.Triwulan {
			continue
		}
		if f.VerificationStatus != "" && m.VerificationStatus != f.VerificationStatus {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if f.Limit > 0 {
		start := min(f.Offset, len(out))
		end := min(start+f.Limit, len(out))
		out = out[start:end]
	}
	return out, nil
}

func (s *MemoryStore) Verify(_ context.Context, id uuid.UUID, rec verification.Record) (*model.AssessmentModel, error) {
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

func (s *MemoryStore) UpdatePercentage(_ context.Context, id uuid.UUID, pct float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.items[id]
	if !ok {
		return ErrNotFound
	}
	m.CalculatedPercentage = pct
	s.items[id] = m
	return nil
}
