package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"pkp_monitor_backend/internals/constants"
	"pkp_monitor_backend/internals/features/puskesmas/dto"
	"pkp_monitor_backend/internals/features/puskesmas/model"
	"pkp_monitor_backend/internals/features/puskesmas/repository"
)

var ErrNotActive = errors.New("puskesmas tidak aktif")

type Service struct {
	store repository.Store
}

func New(store repository.Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListActive(ctx context.Context) ([]model.PuskesmasModel, error) {
	return s.store.ListActive(ctx)
}

func (s *Service) List(ctx context.Context, f repository.ListFilter) ([]model.PuskesmasModel, int64, error) {
	return s.store.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.PuskesmasModel, error) {
	return s.store.FindByID(ctx, id)
}

// EnsureActive dipakai signup & setup profil: hanya puskesmas aktif yang boleh dipilih.
func (s *Service) EnsureActive(ctx context.Context, id uuid.UUID) (*model.PuskesmasModel, error) {
	m, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.Status != constants.PuskesmasAktif {
		return nil, fmt.Errorf("%w: %s", ErrNotActive, m.NamaPuskesmas)
	}
	return m, nil
}

func (s *Service) Create(ctx context.Context, req dto.CreatePuskesmasRequest) (*model.PuskesmasModel, error) {
	req.Normalize()
	m := req.ToModel()
	if err := s.store.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Patch(ctx context.Context, id uuid.UUID, req dto.UpdatePuskesmasRequest) (*model.PuskesmasModel, error) {
	m, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.ApplyToModel(m)
	if err := s.store.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) (*model.PuskesmasModel, error) {
	status := constants.PuskesmasNonaktif
	return s.Patch(ctx, id, dto.UpdatePuskesmasRequest{Status: &status})
}
