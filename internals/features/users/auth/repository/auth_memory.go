package repository

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	authModel "pkp_monitor_backend/internals/features/users/auth/model"
	profileModel "pkp_monitor_backend/internals/features/users/user_profiles/model"
	profileRepo "pkp_monitor_backend/internals/features/users/user_profiles/repository"
)

// MemoryStore: implementasi in-memory untuk unit test service & middleware.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[uuid.UUID]authModel.UserModel
	blacklist map[string]time.Time
	refresh   map[uuid.UUID]authModel.RefreshToken
	profiles  *profileRepo.MemoryStore
}

// NewMemoryStore: profil hasil register ditulis ke profiles (boleh nil).
func NewMemoryStore(profiles *profileRepo.MemoryStore) *MemoryStore {
	return &MemoryStore{
		users:     make(map[uuid.UUID]authModel.UserModel),
		blacklist: make(map[string]time.Time),
		refresh:   make(map[uuid.UUID]authModel.RefreshToken),
		profiles:  profiles,
	}
}

func (s *MemoryStore) CreateUserWithProfile(ctx context.Context, u *authModel.UserModel, p *profileModel.UserProfileModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.ID] = *u

	p.ID = u.ID
	if s.profiles != nil {
		return s.profiles.Upsert(ctx, p)
	}
	return nil
}

func (s *MemoryStore) FindUserByEmail(_ context.Context, email string) (*authModel.UserModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemoryStore) FindUserByID(_ context.Context, id uuid.UUID) (*authModel.UserModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (s *MemoryStore) LinkGoogleID(_ context.Context, id uuid.UUID, googleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}
	if u.GoogleID == nil {
		g := googleID
		u.GoogleID = &g
		s.users[id] = u
	}
	return nil
}

func (s *MemoryStore) TouchLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.LastLoginAt = &at
	s.users[id] = u
	return nil
}

// SetActive dipakai test untuk menonaktifkan akun.
func (s *MemoryStore) SetActive(id uuid.UUID, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.IsActive = active
		s.users[id] = u
	}
}

func (s *MemoryStore) BlacklistToken(_ context.Context, tokenHash string, expiredAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blacklist[tokenHash]; !ok {
		s.blacklist[tokenHash] = expiredAt
	}
	return nil
}

// IsBlacklisted memenuhi SessionStore milik middleware auth.
func (s *MemoryStore) IsBlacklisted(_ context.Context, rawToken string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blacklist[authModel.HashToken(rawToken)]
	return ok, nil
}

func (s *MemoryStore) PurgeBlacklist(_ context.Context, before time.Time, limit int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for h, exp := range s.blacklist {
		if limit > 0 && n >= int64(limit) {
			break
		}
		if exp.Before(before) {
			delete(s.blacklist, h)
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) SaveRefreshToken(_ context.Context, rt *authModel.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}
	s.refresh[rt.ID] = *rt
	return nil
}

func (s *MemoryStore) FindRefreshToken(_ context.Context, hash []byte) (*authModel.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rt := range s.refresh {
		if bytes.Equal(rt.TokenHash, hash) {
			cp := rt
			return &cp, nil
		}
	}
	return nil, ErrRefreshTokenNotFound
}

func (s *MemoryStore) RevokeRefreshToken(_ context.Context, id uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rt, ok := s.refresh[id]
	if !ok {
		return nil
	}
	if rt.RevokedAt == nil {
		rt.RevokedAt = &at
		s.refresh[id] = rt
	}
	return nil
}
