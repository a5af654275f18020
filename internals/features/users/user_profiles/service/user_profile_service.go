package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	pkmModel "pkp_monitor_backend/internals/features/puskesmas/model"
	"pkp_monitor_backend/internals/features/users/user_profiles/dto"
	"pkp_monitor_backend/internals/features/users/user_profiles/model"
	"pkp_monitor_backend/internals/features/users/user_profiles/repository"
)

var (
	// ErrProfileIncomplete: belum ada penempatan puskesmas, input penilaian diblokir.
	ErrProfileIncomplete = errors.New("profil belum lengkap")
	ErrFacilityRequired  = errors.New("puskesmas wajib dipilih")
)

type FacilityChecker interface {
	EnsureActive(ctx context.Context, id uuid.UUID) (*pkmModel.PuskesmasModel, error)
	Get(ctx context.Context, id uuid.UUID) (*pkmModel.PuskesmasModel, error)
}

type Service struct {
	store      repository.Store
	facilities FacilityChecker
}

func New(store repository.Store, facilities FacilityChecker) *Service {
	return &Service{store: store, facilities: facilities}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.UserProfileModel, error) {
	return s.store.FindByID(ctx, id)
}

// RequireFacility mengembalikan profil yang sudah punya puskesmas, atau ErrProfileIncomplete.
func (s *Service) RequireFacility(ctx context.Context, userID uuid.UUID) (*model.UserProfileModel, error) {
	p, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileIncomplete
		}
		return nil, err
	}
	if !p.HasFacility() {
		return nil, ErrProfileIncomplete
	}
	return p, nil
}

// FacilityName: nama puskesmas untuk response, nil kalau tidak ada.
func (s *Service) FacilityName(ctx context.Context, p *model.UserProfileModel) *string {
	if !p.HasFacility() {
		return nil
	}
	f, err := s.facilities.Get(ctx, *p.PuskesmasID)
	if err != nil {
		return nil
	}
	return &f.NamaPuskesmas
}

// SetupMine melengkapi profil milik sendiri. Puskesmas wajib untuk semua role; role tidak bisa diubah dari sini.
func (s *Service) SetupMine(ctx context.Context, userID uuid.UUID, req dto.SetupProfileRequest) (*model.UserProfileModel, error) {
	req.Normalize()

	p, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.PuskesmasID == nil || *req.PuskesmasID == uuid.Nil {
		return nil, ErrFacilityRequired
	}
	if _, err := s.facilities.EnsureActive(ctx, *req.PuskesmasID); err != nil {
		return nil, err
	}
	id := *req.PuskesmasID
	p.PuskesmasID = &id

	p.NamaLengkap = req.NamaLengkap
	p.NIP = req.NIP
	p.Jabatan = req.Jabatan

	if err := s.store.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update profil: %w", err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, f repository.ListFilter) ([]model.UserProfileModel, int64, error) {
	return s.store.List(ctx, f)
}

func (s *Service) AdminUpdate(ctx context.Context, id uuid.UUID, req dto.AdminUpdateProfileRequest) (*model.UserProfileModel, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.NamaLengkap != nil {
		p.NamaLengkap = *req.NamaLengkap
	}
	if req.Role != nil {
		p.Role = *req.Role
	}
	switch {
	case req.ClearPuskesmas:
		p.PuskesmasID = nil
	case req.PuskesmasID != nil:
		if _, err := s.facilities.EnsureActive(ctx, *req.PuskesmasID); err != nil {
			return nil, err
		}
		pid := *req.PuskesmasID
		p.PuskesmasID = &pid
	}

	if err := s.store.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update profil: %w", err)
	}
	return p, nil
}
