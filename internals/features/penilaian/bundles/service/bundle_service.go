package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"pkp_monitor_backend/internals/features/penilaian/bundles/dto"
	"pkp_monitor_backend/internals/features/penilaian/bundles/model"
	"pkp_monitor_backend/internals/features/penilaian/bundles/repository"
)

var (
	ErrBundleNotActive = errors.New("bundle tidak aktif")
	ErrYearMismatch    = errors.New("tahun tidak sesuai dengan bundle")
)

type Service struct {
	store repository.Store
}

func New(store repository.Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context, f repository.ListFilter) ([]model.BundleModel, int64, error) {
	return s.store.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.BundleModel, error) {
	return s.store.FindByID(ctx, id)
}

// EnsureEntry dipakai sebelum simpan penilaian/evaluasi: bundle wajib aktif.
// tahun 0 berarti ikut tahun bundle; selain itu harus sama persis.
func (s *Service) EnsureEntry(ctx context.Context, id uuid.UUID, tahun int) (*model.BundleModel, int, error) {
	b, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	if !b.IsActive() {
		return nil, 0, fmt.Errorf("%w: status %s", ErrBundleNotActive, b.Status)
	}
	if tahun == 0 {
		tahun = b.Tahun
	}
	if tahun != b.Tahun {
		return nil, 0, fmt.Errorf("%w: %d != %d", ErrYearMismatch, tahun, b.Tahun)
	}
	return b, tahun, nil
}

func (s *Service) Create(ctx context.Context, req dto.CreateBundleRequest) (*model.BundleModel, error) {
	req.Normalize()
	m := req.ToModel()
	if err := s.store.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create bundle: %w", err)
	}
	return m, nil
}

func (s *Service) Patch(ctx context.Context, id uuid.UUID, req dto.UpdateBundleRequest) (*model.BundleModel, error) {
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
