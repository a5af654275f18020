package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkp_monitor_backend/internals/constants"
	"pkp_monitor_backend/internals/features/penilaian/assessments/metrics"
	"pkp_monitor_backend/internals/features/penilaian/assessments/model"
	"pkp_monitor_backend/internals/features/penilaian/assessments/repository"
	bundleModel "pkp_monitor_backend/internals/features/penilaian/bundles/model"
	bundleRepo "pkp_monitor_backend/internals/features/penilaian/bundles/repository"
	bundleService "pkp_monitor_backend/internals/features/penilaian/bundles/service"
	indicatorDTO "pkp_monitor_backend/internals/features/penilaian/indicators/dto"
	indicatorRepo "pkp_monitor_backend/internals/features/penilaian/indicators/repository"
	indicatorService "pkp_monitor_backend/internals/features/penilaian/indicators/service"
	"pkp_monitor_backend/internals/features/penilaian/scoring"
	"pkp_monitor_backend/internals/features/penilaian/verification"
	pkmModel "pkp_monitor_backend/internals/features/puskesmas/model"
	pkmRepo "pkp_monitor_backend/internals/features/puskesmas/repository"
	pkmService "pkp_monitor_backend/internals/features/puskesmas/service"
	profileModel "pkp_monitor_backend/internals/features/users/user_profiles/model"
	profileRepo "pkp_monitor_backend/internals/features/users/user_profiles/repository"
	profileService "pkp_monitor_backend/internals/features/users/user_profiles/service"
)

func ptrI(v int) *int         { return &v }
func ptrF(v float64) *float64 { return &v }
func ptr64(v int64) *int64    { return &v }

type fixture struct {
	svc        *Service
	store      *repository.MemoryStore
	indicators *indicatorService.Service
	reg        *prometheus.Registry

	bundle    uuid.UUID
	petugas   uuid.UUID
	noFacUser uuid.UUID
	facility  uuid.UUID

	scoringID uuid.UUID // kriteria 0,5,8,10
	annualID  uuid.UUID // 80% x 1200 annual → target triwulan 240
	monthlyID uuid.UUID // 100% x 50 monthly → target triwulan 150
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{
		bundle:    uuid.New(),
		petugas:   uuid.New(),
		noFacUser: uuid.New(),
		facility:  uuid.New(),
		store:     repository.NewMemoryStore(),
		reg:       prometheus.NewRegistry(),
	}

	facilities := pkmService.New(pkmRepo.NewMemoryStore(pkmModel.PuskesmasModel{
		ID: f.facility, KodePuskesmas: "PKM-01", NamaPuskesmas: "Puskesmas Sukamaju", Status: constants.PuskesmasAktif,
	}))
	profiles := profileService.New(profileRepo.NewMemoryStore(
		profileModel.UserProfileModel{ID: f.petugas, NamaLengkap: "Siti", Role: constants.RolePetugasPuskesmas, PuskesmasID: &f.facility},
		profileModel.UserProfileModel{ID: f.noFacUser, NamaLengkap: "Budi", Role: constants.RolePetugasPuskesmas},
	), facilities)
	bundles := bundleService.New(bundleRepo.NewMemoryStore(
		bundleModel.BundleModel{ID: f.bundle, Judul: "PKP 2024", Tahun: 2024, Status: constants.BundleAktif},
	))
	f.indicators = indicatorService.New(indicatorRepo.NewMemoryStore(), bundles)

	cl, err := f.indicators.CreateCluster(ctx, f.bundle, indicatorDTO.CreateClusterRequest{NamaKlaster: "Manajemen", Urutan: 1})
	require.NoError(t, err)

	sc, err := f.indicators.CreateIndicator(ctx, cl.ID, indicatorDTO.CreateIndicatorRequest{
		NamaIndikator:   "Rencana lima tahunan",
		Urutan:          1,
		Type:            scoring.TypeScoring,
		ScoringCriteria: map[string]string{"0": "Tidak ada", "5": "Draft", "8": "Disahkan", "10": "Disahkan dan dievaluasi"},
	})
	require.NoError(t, err)
	an, err := f.indicators.CreateIndicator(ctx, cl.ID, indicatorDTO.CreateIndicatorRequest{
		NamaIndikator:    "Cakupan K4",
		Urutan:           2,
		Type:             scoring.TypeTargetAchievement,
		TargetPercentage: ptrF(80),
		TotalSasaran:     ptrI(1200),
		Periodicity:      scoring.PeriodicityAnnual,
	})
	require.NoError(t, err)
	mo, err := f.indicators.CreateIndicator(ctx, cl.ID, indicatorDTO.CreateIndicatorRequest{
		NamaIndikator:    "Kunjungan rumah",
		Urutan:           3,
		Type:             scoring.TypeTargetAchievement,
		TargetPercentage: ptrF(100),
		TotalSasaran:     ptrI(50),
		Periodicity:      scoring.PeriodicityMonthly,
	})
	require.NoError(t, err)
	f.scoringID, f.annualID, f.monthlyID = sc.ID, an.ID, mo.ID

	f.svc = New(f.store, profiles, bundles, f.indicators, metrics.NewAutosave(f.reg))
	return f
}

func (f *fixture) cmd(indicator uuid.UUID, q int) SaveCommand {
	return SaveCommand{UserID: f.petugas, BundleID: f.bundle, IndicatorID: indicator, Triwulan: q}
}

func TestSaveTargetAchievementScenarios(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	cmd := f.cmd(f.annualID, 1)
	cmd.ActualAchievement = ptrI(180)
	res, err := f.svc.Save(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, StatusSaved, res.Status)
	require.NotNil(t, res.PeriodTarget)
	assert.Equal(t, 240, *res.PeriodTarget)
	assert.Equal(t, 75.0, res.Assessment.CalculatedPercentage)
	assert.Equal(t, 2024, res.Assessment.Tahun, "tahun ikut bundle")
	assert.Equal(t, f.facility, res.Assessment.PuskesmasID)

	cmd = f.cmd(f.monthlyID, 2)
	cmd.ActualAchievement = ptrI(200)
	res, err = f.svc.Save(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 150, *res.PeriodTarget)
	assert.Equal(t, 100.0, res.Assessment.CalculatedPercentage, "capaian di atas target di-clamp")
}

func TestSaveScoringIndicator(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	cmd := f.cmd(f.scoringID, 3)
	cmd.SelectedScore = ptrI(8)
	res, err := f.svc.Save(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 80.0, res.Assessment.CalculatedPercentage)
	assert.Nil(t, res.PeriodTarget)

	cmd.SelectedScore = ptrI(7)
	_, err = f.svc.Save(ctx, cmd)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.ErrorIs(t, err, scoring.ErrScaleKeyNotFound)
}

func TestSaveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	cmd := f.cmd(f.annualID, 1)
	cmd.ActualAchievement = ptrI(120)
	cmd.ClientVersion = ptr64(1000)

	first, err := f.svc.Save(ctx, cmd)
	require.NoError(t, err)
	second, err := f.svc.Save(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, StatusSaved, second.Status)
	assert.Equal(t, first.Assessment.ID, second.Assessment.ID)

	rows, err := f.svc.List(ctx, repository.Filter{BundleID: f.bundle})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 50.0, rows[0].CalculatedPercentage)
}

func TestSaveIgnoresOlderClientVersion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	newer := f.cmd(f.scoringID, 1)
	newer.SelectedScore = ptrI(10)
	newer.ClientVersion = ptr64(2000)
	_, err := f.svc.Save(ctx, newer)
	require.NoError(t, err)

	// request lama yang datang belakangan
	older := f.cmd(f.scoringID, 1)
	older.SelectedScore = ptrI(5)
	older.ClientVersion = ptr64(1000)
	res, err := f.svc.Save(ctx, older)
	require.NoError(t, err)

	assert.Equal(t, StatusStale, res.Status)
	assert.Equal(t, 100.0, res.Assessment.CalculatedPercentage)
	assert.Equal(t, int64(2000), res.Assessment.ClientVersion)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.svc.metrics.Total(metrics.ResultStale)))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.svc.metrics.Total(metrics.ResultSaved)))
}

func TestSaveConcurrentSameKeyKeepsNewestVersion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	var wg sync.WaitGroup
	for v := 1; v <= 20; v++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			cmd := f.cmd(f.annualID, 4)
			cmd.ActualAchievement = ptrI(v * 10)
			cmd.ClientVersion = ptr64(int64(v))
			_, err := f.svc.Save(ctx, cmd)
			assert.NoError(t, err)
		}(v)
	}
	wg.Wait()

	got, err := f.svc.FindOne(ctx, model.Key{IndicatorID: f.annualID, PuskesmasID: f.facility, Triwulan: 4, Tahun: 2024})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(20), got.ClientVersion)
	assert.Equal(t, 200, *got.ActualAchievement)
	assert.Zero(t, f.svc.locks.size(), "lock per kunci dilepas setelah selesai")
}

func TestSaveRejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("triwulan di luar 1-4", func(t *testing.T) {
		cmd := f.cmd(f.scoringID, 5)
		cmd.SelectedScore = ptrI(5)
		_, err := f.svc.Save(ctx, cmd)
		assert.ErrorIs(t, err, ErrInvalidTriwulan)
	})
	t.Run("profil tanpa puskesmas", func(t *testing.T) {
		cmd := f.cmd(f.scoringID, 1)
		cmd.UserID = f.noFacUser
		cmd.SelectedScore = ptrI(5)
		_, err := f.svc.Save(ctx, cmd)
		assert.ErrorIs(t, err, profileService.ErrProfileIncomplete)
	})
	t.Run("tahun beda dengan bundle", func(t *testing.T) {
		cmd := f.cmd(f.scoringID, 1)
		cmd.Tahun = 2023
		cmd.SelectedScore = ptrI(5)
		_, err := f.svc.Save(ctx, cmd)
		assert.ErrorIs(t, err, bundleService.ErrYearMismatch)
	})
	t.Run("indikator bundle lain", func(t *testing.T) {
		cmd := f.cmd(uuid.New(), 1)
		cmd.SelectedScore = ptrI(5)
		_, err := f.svc.Save(ctx, cmd)
		assert.ErrorIs(t, err, indicatorService.ErrIndicatorNotInBundle)
	})
	t.Run("capaian kosong", func(t *testing.T) {
		_, err := f.svc.Save(ctx, f.cmd(f.annualID, 1))
		assert.ErrorIs(t, err, scoring.ErrMissingAchievement)
	})

	rows, err := f.svc.List(ctx, repository.Filter{BundleID: f.bundle})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSaveStorageFailureIsReported(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.store.FailNext = errors.New("connection reset")

	cmd := f.cmd(f.scoringID, 1)
	cmd.SelectedScore = ptrI(5)
	_, err := f.svc.Save(ctx, cmd)

	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "upsert", se.Op)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.svc.metrics.Total(metrics.ResultFailed)))

	// retry dari client berhasil
	res, err := f.svc.Save(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, StatusSaved, res.Status)
}

// reloadFailStore: upsert berhasil, tapi baca ulang setelahnya gagal.
type reloadFailStore struct {
	*repository.MemoryStore
}

func (s reloadFailStore) FindByKey(context.Context, model.Key) (*model.AssessmentModel, error) {
	return nil, errors.New("read timeout")
}

func TestSaveReloadFailureStillSaved(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.svc.store = reloadFailStore{MemoryStore: f.store}

	cmd := f.cmd(f.scoringID, 2)
	cmd.SelectedScore = ptrI(8)
	cmd.ClientVersion = ptr64(10)
	res, err := f.svc.Save(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, StatusSaved, res.Status)
	require.NotNil(t, res.Assessment)
	assert.Equal(t, 80.0, res.Assessment.CalculatedPercentage)
	assert.Zero(t, testutil.ToFloat64(f.svc.metrics.Total(metrics.ResultFailed)))

	rows, err := f.store.List(ctx, repository.Filter{BundleID: f.bundle})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 10, rows[0].ClientVersion)
}

func TestResaveResetsVerification(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	cmd := f.cmd(f.scoringID, 1)
	cmd.SelectedScore = ptrI(5)
	res, err := f.svc.Save(ctx, cmd)
	require.NoError(t, err)

	verifier := uuid.New()
	comment := "lampirkan SK"
	_, err = f.svc.Verify(ctx, res.Assessment.ID, verifier, verification.Request{Status: constants.VerificationRevision})
	assert.ErrorIs(t, err, verification.ErrCommentRequired)

	v, err := f.svc.Verify(ctx, res.Assessment.ID, verifier, verification.Request{Status: constants.VerificationRevision, Comment: &comment})
	require.NoError(t, err)
	assert.Equal(t, constants.VerificationRevision, v.VerificationStatus)
	require.NotNil(t, v.VerifiedBy)
	assert.Equal(t, verifier, *v.VerifiedBy)

	cmd.SelectedScore = ptrI(10)
	res, err = f.svc.Save(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, constants.VerificationPending, res.Assessment.VerificationStatus)
	assert.Nil(t, res.Assessment.VerifiedBy)
	assert.Nil(t, res.Assessment.VerifiedAt)
	assert.Nil(t, res.Assessment.VerificationComment)
}

func TestRecalculateBackfillsPercentage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.svc.Now = func() time.Time { return time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC) }

	cmd := f.cmd(f.annualID, 1)
	cmd.ActualAchievement = ptrI(120)
	res, err := f.svc.Save(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, 50.0, res.Assessment.CalculatedPercentage)

	// total sasaran direvisi → target triwulan 120
	_, err = f.indicators.PatchIndicator(ctx, f.annualID, indicatorDTO.UpdateIndicatorRequest{TotalSasaran: ptrI(600)})
	require.NoError(t, err)

	out, err := f.svc.Recalculate(ctx, f.bundle)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Scanned)
	assert.Equal(t, 1, out.Updated)

	got, err := f.store.FindByID(ctx, res.Assessment.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, got.CalculatedPercentage)
	assert.Equal(t, res.Assessment.ClientVersion, got.ClientVersion)
}
