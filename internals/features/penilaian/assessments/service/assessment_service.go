package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pkp_monitor_backend/internals/constants"
	"pkp_monitor_backend/internals/features/penilaian/assessments/dto"
	"pkp_monitor_backend/internals/features/penilaian/assessments/metrics"
	"pkp_monitor_backend/internals/features/penilaian/assessments/model"
	"pkp_monitor_backend/internals/features/penilaian/assessments/repository"
	bundleModel "pkp_monitor_backend/internals/features/penilaian/bundles/model"
	indicatorModel "pkp_monitor_backend/internals/features/penilaian/indicators/model"
	"pkp_monitor_backend/internals/features/penilaian/scoring"
	"pkp_monitor_backend/internals/features/penilaian/verification"
	profileModel "pkp_monitor_backend/internals/features/users/user_profiles/model"
)

const (
	StatusSaved = "saved"
	StatusStale = "stale"
)

var (
	ErrInvalidTriwulan = errors.New("periode_triwulan harus 1-4")
	// ErrInvalidValue membungkus error dari paket scoring.
	ErrInvalidValue = errors.New("nilai penilaian tidak valid")
)

type ProfileGate interface {
	RequireFacility(ctx context.Context, userID uuid.UUID) (*profileModel.UserProfileModel, error)
}

type BundleGate interface {
	EnsureEntry(ctx context.Context, id uuid.UUID, tahun int) (*bundleModel.BundleModel, int, error)
}

type CatalogReader interface {
	Catalog(ctx context.Context, bundleID uuid.UUID) ([]indicatorModel.CatalogItem, error)
	FindInBundle(ctx context.Context, bundleID, indicatorID uuid.UUID) (*indicatorModel.CatalogItem, error)
}

type Service struct {
	store    repository.Store
	profiles ProfileGate
	bundles  BundleGate
	catalog  CatalogReader
	locks    *keyedMutex
	metrics  *metrics.Autosave

	Now func() time.Time
}

func New(store repository.Store, profiles ProfileGate, bundles BundleGate, catalog CatalogReader, m *metrics.Autosave) *Service {
	return &Service{
		store:    store,
		profiles: profiles,
		bundles:  bundles,
		catalog:  catalog,
		locks:    newKeyedMutex(),
		metrics:  m,
		Now:      time.Now,
	}
}

// SaveCommand: satu auto-save dari form penilaian. Puskesmas diambil dari profil, bukan dari client.
type SaveCommand struct {
	UserID            uuid.UUID
	BundleID          uuid.UUID
	IndicatorID       uuid.UUID
	Tahun             int
	Triwulan          int
	SelectedScore     *int
	ActualAchievement *int
	Keterangan        *string
	BuktiDukung       *string
	ClientVersion     *int64
}

func CommandFromRequest(userID uuid.UUID, req dto.SaveAssessmentRequest) SaveCommand {
	return SaveCommand{
		UserID:            userID,
		BundleID:          req.BundleID,
		IndicatorID:       req.IndicatorID,
		Tahun:             req.Tahun,
		Triwulan:          req.PeriodeTriwulan,
		SelectedScore:     req.SelectedScore,
		ActualAchievement: req.ActualAchievement,
		Keterangan:        req.Keterangan,
		BuktiDukung:       req.BuktiDukung,
		ClientVersion:     req.ClientVersion,
	}
}

type SaveResult struct {
	Status       string
	Assessment   *model.AssessmentModel
	PeriodTarget *int
}

/* ===========================================================
 * Auto-save
 * =========================================================== */

// Save menghitung persentase di server lalu upsert dengan penjaga client_version.
// Versi yang lebih lama dari baris tersimpan tidak diterapkan (status stale).
func (s *Service) Save(ctx context.Context, cmd SaveCommand) (res SaveResult, err error) {
	started := s.Now()
	defer func() {
		switch {
		case err != nil && isStorageErr(err):
			s.metrics.Observe(metrics.ResultFailed, started)
		case err == nil:
			s.metrics.Observe(res.Status, started)
		}
	}()

	if cmd.Triwulan < 1 || cmd.Triwulan > 4 {
		return SaveResult{}, ErrInvalidTriwulan
	}
	profile, err := s.profiles.RequireFacility(ctx, cmd.UserID)
	if err != nil {
		return SaveResult{}, err
	}
	_, tahun, err := s.bundles.EnsureEntry(ctx, cmd.BundleID, cmd.Tahun)
	if err != nil {
		return SaveResult{}, err
	}
	item, err := s.catalog.FindInBundle(ctx, cmd.BundleID, cmd.IndicatorID)
	if err != nil {
		return SaveResult{}, err
	}

	calc, err := scoring.Calculate(item.Indicator.Rule(), scoring.Input{
		SelectedScore:     cmd.SelectedScore,
		ActualAchievement: cmd.ActualAchievement,
	})
	if err != nil {
		return SaveResult{}, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}

	version := started.UnixMilli()
	if cmd.ClientVersion != nil {
		version = *cmd.ClientVersion
	}

	row := &model.AssessmentModel{
		BundleID:             cmd.BundleID,
		IndicatorID:          cmd.IndicatorID,
		PuskesmasID:          *profile.PuskesmasID,
		UserID:               cmd.UserID,
		Tahun:                tahun,
		PeriodeTriwulan:      cmd.Triwulan,
		SelectedScore:        calc.SelectedScore,
		ActualAchievement:    calc.ActualAchievement,
		CalculatedPercentage: calc.Percentage,
		Keterangan:           cmd.Keterangan,
		BuktiDukung:          cmd.BuktiDukung,
		ClientVersion:        version,
		VerificationStatus:   constants.VerificationPending,
	}
	key := row.Key()

	unlock := s.locks.Lock(key.String())
	defer unlock()

	applied, err := s.store.Upsert(ctx, row)
	if err != nil {
		zap.L().Error("[AUTOSAVE] upsert gagal",
			zap.String("key", key.String()), zap.Int64("client_version", version), zap.Error(err))
		return SaveResult{}, &StorageError{Op: "upsert", Err: err}
	}
	// upsert sudah tersimpan; gagal reload tidak boleh membuat client menganggap data hilang
	stored, err := s.store.FindByKey(ctx, key)
	if err != nil {
		zap.L().Warn("[AUTOSAVE] reload setelah upsert gagal",
			zap.String("key", key.String()), zap.Bool("applied", applied), zap.Error(err))
		stored = nil
	}
	if stored == nil {
		stored = row
	}

	status := StatusSaved
	if !applied {
		status = StatusStale
		zap.L().Info("[AUTOSAVE] versi lama diabaikan",
			zap.String("key", key.String()),
			zap.Int64("client_version", version),
			zap.Int64("stored_version", stored.ClientVersion))
	}
	return SaveResult{Status: status, Assessment: stored, PeriodTarget: calc.PeriodTarget}, nil
}

// StorageError: kegagalan DB saat auto-save. Client menandai field "unsaved" dan boleh retry.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return "simpan penilaian (" + e.Op + "): " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

func isStorageErr(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

/* ===========================================================
 * Baca & verifikasi
 * =========================================================== */

func (s *Service) List(ctx context.Context, f repository.Filter) ([]model.AssessmentModel, error) {
	return s.store.List(ctx, f)
}

// FindOne: (nil, nil) kalau belum pernah diisi.
func (s *Service) FindOne(ctx context.Context, k model.Key) (*model.AssessmentModel, error) {
	return s.store.FindByKey(ctx, k)
}

func (s *Service) Verify(ctx context.Context, id, verifier uuid.UUID, req verification.Request) (*model.AssessmentModel, error) {
	rec, err := req.Build(verifier, s.Now())
	if err != nil {
		return nil, err
	}
	return s.store.Verify(ctx, id, rec)
}

/* ===========================================================
 * Admin: backfill calculated_percentage
 * =========================================================== */

// Recalculate menghitung ulang persentase semua penilaian di bundle dengan rumus terkini.
// Baris yang tidak bisa diskor lagi (mis. kriteria berubah) dilewati dan dicatat.
func (s *Service) Recalculate(ctx context.Context, bundleID uuid.UUID) (dto.RecalculateResponse, error) {
	out := dto.RecalculateResponse{BundleID: bundleID}

	items, err := s.catalog.Catalog(ctx, bundleID)
	if err != nil {
		return out, err
	}
	rules := make(map[uuid.UUID]scoring.IndicatorRule, len(items))
	for i := range items {
		rules[items[i].Indicator.ID] = items[i].Indicator.Rule()
	}

	rows, err := s.store.List(ctx, repository.Filter{BundleID: bundleID})
	if err != nil {
		return out, err
	}
	for i := range rows {
		out.Scanned++
		r := &rows[i]
		rule, ok := rules[r.IndicatorID]
		if !ok || !r.HasValue() {
			out.Skipped++
			continue
		}
		calc, err := scoring.Calculate(rule, scoring.Input{
			SelectedScore:     r.SelectedScore,
			ActualAchievement: r.ActualAchievement,
		})
		if err != nil {
			out.Skipped++
			zap.L().Warn("[RECALC] skip baris", zap.String("id", r.ID.String()), zap.Error(err))
			continue
		}
		if calc.Percentage == r.CalculatedPercentage {
			continue
		}
		if err := s.store.UpdatePercentage(ctx, r.ID, calc.Percentage); err != nil {
			return out, fmt.Errorf("update %s: %w", r.ID, err)
		}
		out.Updated++
	}
	zap.L().Info("[RECALC] selesai",
		zap.String("bundle_id", bundleID.String()),
		zap.Int("scanned", out.Scanned), zap.Int("updated", out.Updated), zap.Int("skipped", out.Skipped))
	return out, nil
}
