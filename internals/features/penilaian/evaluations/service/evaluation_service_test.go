package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkp_monitor_backend/internals/constants"
	bundleModel "pkp_monitor_backend/internals/features/penilaian/bundles/model"
	bundleRepo "pkp_monitor_backend/internals/features/penilaian/bundles/repository"
	bundleService "pkp_monitor_backend/internals/features/penilaian/bundles/service"
	"pkp_monitor_backend/internals/features/penilaian/evaluations/model"
	"pkp_monitor_backend/internals/features/penilaian/evaluations/repository"
	"pkp_monitor_backend/internals/features/penilaian/verification"
	pkmRepo "pkp_monitor_backend/internals/features/puskesmas/repository"
	pkmService "pkp_monitor_backend/internals/features/puskesmas/service"
	profileModel "pkp_monitor_backend/internals/features/users/user_profiles/model"
	profileRepo "pkp_monitor_backend/internals/features/users/user_profiles/repository"
	profileService "pkp_monitor_backend/internals/features/users/user_profiles/service"
)

type fixture struct {
	svc      *Service
	store    *repository.MemoryStore
	bundle   uuid.UUID
	draft    uuid.UUID
	user     uuid.UUID
	facility uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		bundle: uuid.New(), draft: uuid.New(), user: uuid.New(), facility: uuid.New(),
		store: repository.NewMemoryStore(),
	}
	profiles := profileService.New(profileRepo.NewMemoryStore(
		profileModel.UserProfileModel{ID: f.user, NamaLengkap: "Siti", Role: constants.RolePetugasPuskesmas, PuskesmasID: &f.facility},
	), pkmService.New(pkmRepo.NewMemoryStore()))
	bundles := bundleService.New(bundleRepo.NewMemoryStore(
		bundleModel.BundleModel{ID: f.bundle, Judul: "PKP 2024", Tahun: 2024, Status: constants.BundleAktif},
		bundleModel.BundleModel{ID: f.draft, Judul: "PKP 2025", Tahun: 2025, Status: constants.BundleDraft},
	))
	f.svc = New(f.store, profiles, bundles)
	return f
}

func complete() model.Narrative {
	return model.Narrative{
		AnalisisPencapaian:  "Cakupan imunisasi naik 10%",
		HambatanKendala:     "Vaksin terlambat datang",
		RencanaTindakLanjut: "Koordinasi dengan dinkes",
	}
}

func TestSaveRejectsEmptyObstacles(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	n := complete()
	n.HambatanKendala = "   "
	_, err := f.svc.Save(ctx, SaveCommand{UserID: f.user, BundleID: f.bundle, Triwulan: 1, Narrative: n})

	require.ErrorIs(t, err, ErrIncompleteNarrative)
	var ie *IncompleteError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, []model.Field{model.FieldHambatan}, ie.Missing)
	assert.Zero(t, f.store.UpsertCalls, "validasi terjadi sebelum storage")
}

func TestSaveCompleteIsRetrievableByKey(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	saved, err := f.svc.Save(ctx, SaveCommand{UserID: f.user, BundleID: f.bundle, Triwulan: 2, Narrative: complete()})
	require.NoError(t, err)
	assert.Equal(t, 2024, saved.Tahun)

	got, err := f.svc.Get(ctx, f.bundle, f.facility, 2024, 2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "Vaksin terlambat datang", got.HambatanKendala)

	none, err := f.svc.Get(ctx, f.bundle, f.facility, 0, 3)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestSaveLastWriteWins(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.svc.Save(ctx, SaveCommand{UserID: f.user, BundleID: f.bundle, Triwulan: 1, Narrative: complete()})
	require.NoError(t, err)

	n := complete()
	n.RencanaTindakLanjut = "Sweeping ke posyandu"
	second, err := f.svc.Save(ctx, SaveCommand{UserID: f.user, BundleID: f.bundle, Triwulan: 1, Narrative: n})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	rows, err := f.store.ListYear(ctx, f.bundle, f.facility, 2024)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sweeping ke posyandu", rows[0].RencanaTindakLanjut)
}

func TestSaveRequiresActiveBundle(t *testing.T) {
	_, err := newFixture(t).svc.Save(context.Background(), SaveCommand{
		UserID: uuid.New(), BundleID: uuid.New(), Triwulan: 1, Narrative: complete(),
	})
	assert.ErrorIs(t, err, profileService.ErrProfileIncomplete)

	f := newFixture(t)
	_, err = f.svc.Save(context.Background(), SaveCommand{UserID: f.user, BundleID: f.draft, Triwulan: 1, Narrative: complete()})
	assert.ErrorIs(t, err, bundleService.ErrBundleNotActive)
}

func TestQuartersLoadsFourDrafts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.svc.Save(ctx, SaveCommand{UserID: f.user, BundleID: f.bundle, Triwulan: 3, Narrative: complete()})
	require.NoError(t, err)

	d, tahun, err := f.svc.Quarters(ctx, f.bundle, f.facility, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, 2024, tahun)
	assert.Equal(t, 3, d.Quarter())
	assert.True(t, d.Complete(3))
	assert.False(t, d.Complete(1))
	assert.NotNil(t, d.Saved(3))
}

func TestVerifyEvaluation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	saved, err := f.svc.Save(ctx, SaveCommand{UserID: f.user, BundleID: f.bundle, Triwulan: 1, Narrative: complete()})
	require.NoError(t, err)

	v, err := f.svc.Verify(ctx, saved.ID, uuid.New(), verification.Request{Status: constants.VerificationApproved})
	require.NoError(t, err)
	assert.Equal(t, constants.VerificationApproved, v.VerificationStatus)
	require.NotNil(t, v.VerifiedBy)

	// simpan ulang: kembali pending tanpa jejak verifikator
	_, err = f.svc.Save(ctx, SaveCommand{UserID: f.user, BundleID: f.bundle, Triwulan: 1, Narrative: complete()})
	require.NoError(t, err)
	got, err := f.svc.Get(ctx, f.bundle, f.facility, 2024, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, constants.VerificationPending, got.VerificationStatus)
	assert.Nil(t, got.VerifiedBy)
	assert.Nil(t, got.VerifiedAt)
	assert.Nil(t, got.VerificationComment)

	_, err = f.svc.Verify(ctx, uuid.New(), uuid.New(), verification.Request{Status: constants.VerificationApproved})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
