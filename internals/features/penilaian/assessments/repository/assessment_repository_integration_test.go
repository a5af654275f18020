//go:build integration

package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"pkp_monitor_backend/internals/constants"
	"pkp_monitor_backend/internals/features/penilaian/assessments/model"
	"pkp_monitor_backend/internals/features/penilaian/assessments/repository"
	"pkp_monitor_backend/internals/features/penilaian/verification"
	"pkp_monitor_backend/internals/testutil/containers"
)

type GormStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *repository.GormStore
}

func TestGormStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(GormStoreSuite))
}

func (s *GormStoreSuite) SetupSuite() {
	s.pg = containers.GetManager().GetPostgres(s.T())
	s.store = repository.NewGormStore(s.pg.DB)
}

func (s *GormStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateTables(context.Background(), "assessments"))
}

func newRow(bundle, indicator, pkm uuid.UUID, score int, version int64) *model.AssessmentModel {
	return &model.AssessmentModel{
		BundleID:             bundle,
		IndicatorID:          indicator,
		PuskesmasID:          pkm,
		UserID:               uuid.New(),
		Tahun:                2024,
		PeriodeTriwulan:      1,
		SelectedScore:        &score,
		CalculatedPercentage: float64(score * 10),
		ClientVersion:        version,
		VerificationStatus:   constants.VerificationPending,
	}
}

func (s *GormStoreSuite) TestUpsertIgnoresOlderClientVersion() {
	ctx := context.Background()
	bundle, ind, pkm := uuid.New(), uuid.New(), uuid.New()

	applied, err := s.store.Upsert(ctx, newRow(bundle, ind, pkm, 8, 200))
	s.Require().NoError(err)
	s.True(applied)

	applied, err = s.store.Upsert(ctx, newRow(bundle, ind, pkm, 5, 100))
	s.Require().NoError(err)
	s.False(applied)

	got, err := s.store.FindByKey(ctx, model.Key{IndicatorID: ind, PuskesmasID: pkm, Triwulan: 1, Tahun: 2024})
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(8, *got.SelectedScore)
	s.Equal(int64(200), got.ClientVersion)

	// versi sama = idempoten, tetap diterapkan
	applied, err = s.store.Upsert(ctx, newRow(bundle, ind, pkm, 8, 200))
	s.Require().NoError(err)
	s.True(applied)

	var count int64
	s.Require().NoError(s.pg.DB.Model(&model.AssessmentModel{}).Count(&count).Error)
	s.Equal(int64(1), count)
}

func (s *GormStoreSuite) TestConcurrentUpsertsKeepHighestVersion() {
	ctx := context.Background()
	bundle, ind, pkm := uuid.New(), uuid.New(), uuid.New()

	const goroutines = 20
	var wg sync.WaitGroup
	for i := 1; i <= goroutines; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			_, err := s.store.Upsert(ctx, newRow(bundle, ind, pkm, v%11, int64(v)))
			s.NoError(err)
		}(i)
	}
	wg.Wait()

	got, err := s.store.FindByKey(ctx, model.Key{IndicatorID: ind, PuskesmasID: pkm, Triwulan: 1, Tahun: 2024})
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(int64(goroutines), got.ClientVersion)
}

func (s *GormStoreSuite) TestFindByKeyMissingReturnsNil() {
	got, err := s.store.FindByKey(context.Background(), model.Key{IndicatorID: uuid.New(), PuskesmasID: uuid.New(), Triwulan: 2, Tahun: 2024})
	s.NoError(err)
	s.Nil(got)
}

func (s *GormStoreSuite) TestVerifyThenResaveResetsPending() {
	ctx := context.Background()
	bundle, ind, pkm := uuid.New(), uuid.New(), uuid.New()
	_, err := s.store.Upsert(ctx, newRow(bundle, ind, pkm, 8, 1))
	s.Require().NoError(err)
	row, err := s.store.FindByKey(ctx, model.Key{IndicatorID: ind, PuskesmasID: pkm, Triwulan: 1, Tahun: 2024})
	s.Require().NoError(err)

	verifier := uuid.New()
	got, err := s.store.Verify(ctx, row.ID, verification.Record{
		Status:     constants.VerificationApproved,
		VerifiedBy: verifier,
		VerifiedAt: time.Now().UTC(),
	})
	s.Require().NoError(err)
	s.Equal(constants.VerificationApproved, got.VerificationStatus)
	s.Equal(verifier, *got.VerifiedBy)

	_, err = s.store.Upsert(ctx, newRow(bundle, ind, pkm, 10, 2))
	s.Require().NoError(err)
	again, err := s.store.FindByID(ctx, row.ID)
	s.Require().NoError(err)
	s.Equal(constants.VerificationPending, again.VerificationStatus)
	s.Nil(again.VerifiedBy)
	s.Nil(again.VerifiedAt)
	s.Nil(again.VerificationComment)

	_, err = s.store.Verify(ctx, uuid.New(), verification.Record{Status: constants.VerificationApproved})
	s.ErrorIs(err, repository.ErrNotFound)
}

func (s *GormStoreSuite) TestListFiltersAndUpdatePercentage() {
	ctx := context.Background()
	bundle, pkmA, pkmB := uuid.New(), uuid.New(), uuid.New()
	for _, pkm := range []uuid.UUID{pkmA, pkmB} {
		_, err := s.store.Upsert(ctx, newRow(bundle, uuid.New(), pkm, 5, 1))
		s.Require().NoError(err)
	}
	_, err := s.store.Upsert(ctx, newRow(uuid.New(), uuid.New(), pkmA, 5, 1))
	s.Require().NoError(err)

	all, err := s.store.List(ctx, repository.Filter{BundleID: bundle})
	s.Require().NoError(err)
	s.Len(all, 2)

	onlyA, err := s.store.List(ctx, repository.Filter{BundleID: bundle, PuskesmasID: &pkmA, Tahun: 2024, Triwulan: 1})
	s.Require().NoError(err)
	s.Require().Len(onlyA, 1)

	s.Require().NoError(s.store.UpdatePercentage(ctx, onlyA[0].ID, 62.5))
	got, err := s.store.FindByID(ctx, onlyA[0].ID)
	s.Require().NoError(err)
	s.InDelta(62.5, got.CalculatedPercentage, 0.001)
	s.Equal(int64(1), got.ClientVersion)
}
