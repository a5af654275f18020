package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pkp_monitor_backend/internals/constants"
	bundleModel "pkp_monitor_backend/internals/features/penilaian/bundles/model"
	"pkp_monitor_backend/internals/features/penilaian/evaluations/model"
	"pkp_monitor_backend/internals/features/penilaian/evaluations/repository"
	"pkp_monitor_backend/internals/features/penilaian/verification"
	profileModel "pkp_monitor_backend/internals/features/users/user_profiles/model"
)

var (
	ErrIncompleteNarrative = errors.New("data evaluasi belum lengkap")
	ErrInvalidTriwulan     = errors.New("periode_triwulan harus 1-4")
)

// IncompleteError menyebut field yang kosong; errors.Is(err, ErrIncompleteNarrative) tetap true.
type IncompleteError struct {
	Missing []model.Field
}

func (e *IncompleteError) Error() string {
	names := make([]string, 0, len(e.Missing))
	for _, f := range e.Missing {
		names = append(names, string(f))
	}
	return ErrIncompleteNarrative.Error() + ": " + strings.Join(names, ", ")
}

func (e *IncompleteError) Unwrap() error { return ErrIncompleteNarrative }

type ProfileGate interface {
	RequireFacility(ctx context.Context, userID uuid.UUID) (*profileModel.UserProfileModel, error)
}

type BundleGate interface {
	Get(ctx context.Context, id uuid.UUID) (*bundleModel.BundleModel, error)
	EnsureEntry(ctx context.Context, id uuid.UUID, tahun int) (*bundleModel.BundleModel, int, error)
}

type Service struct {
	store    repository.Store
	profiles ProfileGate
	bundles  BundleGate

	Now func() time.Time
}

func New(store repository.Store, profiles ProfileGate, bundles BundleGate) *Service {
	return &Service{store: store, profiles: profiles, bundles: bundles, Now: time.Now}
}

type SaveCommand struct {
	UserID    uuid.UUID
	BundleID  uuid.UUID
	Tahun     int
	Triwulan  int
	Narrative model.Narrative
}

// Save hanya dipanggil dari tombol simpan. Narasi yang belum lengkap ditolak sebelum menyentuh storage.
func (s *Service) Save(ctx context.Context, cmd SaveCommand) (*model.EvaluationModel, error) {
	n := model.Narrative{
		AnalisisPencapaian:  strings.TrimSpace(cmd.Narrative.AnalisisPencapaian),
		HambatanKendala:     strings.TrimSpace(cmd.Narrative.HambatanKendala),
		RencanaTindakLanjut: strings.TrimSpace(cmd.Narrative.RencanaTindakLanjut),
	}
	if missing := n.Missing(); len(missing) > 0 {
		return nil, &IncompleteError{Missing: missing}
	}
	if cmd.Triwulan < 1 || cmd.Triwulan > model.Quarters {
		return nil, ErrInvalidTriwulan
	}

	profile, err := s.profiles.RequireFacility(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	_, tahun, err := s.bundles.EnsureEntry(ctx, cmd.BundleID, cmd.Tahun)
	if err != nil {
		return nil, err
	}

	row := &model.EvaluationModel{
		BundleID:            cmd.BundleID,
		PuskesmasID:         *profile.PuskesmasID,
		UserID:              cmd.UserID,
		Tahun:               tahun,
		PeriodeTriwulan:     cmd.Triwulan,
		AnalisisPencapaian:  n.AnalisisPencapaian,
		HambatanKendala:     n.HambatanKendala,
		RencanaTindakLanjut: n.RencanaTindakLanjut,
		VerificationStatus:  constants.VerificationPending,
	}
	if err := s.store.Upsert(ctx, row); err != nil {
		zap.L().Error("[EVALUASI] upsert gagal", zap.String("key", row.Key().String()), zap.Error(err))
		return nil, fmt.Errorf("simpan evaluasi: %w", err)
	}
	stored, err := s.store.FindByKey(ctx, row.Key())
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return row, nil
	}
	return stored, nil
}

// Get: (nil, nil) kalau triwulan itu belum pernah disimpan. Baris lama tidak divalidasi ulang.
func (s *Service) Get(ctx context.Context, bundleID, puskesmasID uuid.UUID, tahun, triwulan int) (*model.EvaluationModel, error) {
	tahun, err := s.resolveYear(ctx, bundleID, tahun)
	if err != nil {
		return nil, err
	}
	return s.store.FindByKey(ctx, model.Key{BundleID: bundleID, PuskesmasID: puskesmasID, Triwulan: triwulan, Tahun: tahun})
}

// Quarters memuat empat draft triwulan; selected menentukan tab aktif.
func (s *Service) Quarters(ctx context.Context, bundleID, puskesmasID uuid.UUID, tahun, selected int) (*model.Drafts, int, error) {
	tahun, err := s.resolveYear(ctx, bundleID, tahun)
	if err != nil {
		return nil, 0, err
	}
	rows, err := s.store.ListYear(ctx, bundleID, puskesmasID, tahun)
	if err != nil {
		return nil, 0, err
	}
	d := model.NewDrafts(selected)
	d.Load(rows)
	return d, tahun, nil
}

func (s *Service) Verify(ctx context.Context, id, verifier uuid.UUID, req verification.Request) (*model.EvaluationModel, error) {
	rec, err := req.Build(verifier, s.Now())
	if err != nil {
		return nil, err
	}
	return s.store.Verify(ctx, id, rec)
}

func (s *Service) resolveYear(ctx context.Context, bundleID uuid.UUID, tahun int) (int, error) {
	if tahun > 0 {
		return tahun, nil
	}
	b, err := s.bundles.Get(ctx, bundleID)
	if err != nil {
		return 0, err
	}
	return b.Tahun, nil
}
