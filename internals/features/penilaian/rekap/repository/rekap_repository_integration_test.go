//go:build integration

package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"pkp_monitor_backend/internals/constants"
	assessmentModel "pkp_monitor_backend/internals/features/penilaian/assessments/model"
	"pkp_monitor_backend/internals/features/penilaian/rekap/repository"
	pkmModel "pkp_monitor_backend/internals/features/puskesmas/model"
	"pkp_monitor_backend/internals/testutil/containers"
)

type GormStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *repository.GormStore

	bundle uuid.UUID
	alpha  pkmModel.PuskesmasModel
	beta   pkmModel.PuskesmasModel
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
	ctx := context.Background()
	s.Require().NoError(s.pg.TruncateTables(ctx, "assessments", "puskesmas"))

	s.bundle = uuid.New()
	s.alpha = pkmModel.PuskesmasModel{KodePuskesmas: "A1", NamaPuskesmas: "Alpha", Status: constants.PuskesmasAktif}
	s.beta = pkmModel.PuskesmasModel{KodePuskesmas: "B1", NamaPuskesmas: "Beta", Status: constants.PuskesmasAktif}
	closed := pkmModel.PuskesmasModel{KodePuskesmas: "C1", NamaPuskesmas: "Closed", Status: constants.PuskesmasNonaktif}
	for _, p := range []*pkmModel.PuskesmasModel{&s.alpha, &s.beta, &closed} {
		s.Require().NoError(s.pg.DB.Create(p).Error)
	}

	score := 8
	rows := []assessmentModel.AssessmentModel{
		{BundleID: s.bundle, IndicatorID: uuid.New(), PuskesmasID: s.alpha.ID, UserID: uuid.New(), Tahun: 2024, PeriodeTriwulan: 1,
			SelectedScore: &score, CalculatedPercentage: 80, VerificationStatus: constants.VerificationApproved},
		{BundleID: s.bundle, IndicatorID: uuid.New(), PuskesmasID: s.alpha.ID, UserID: uuid.New(), Tahun: 2024, PeriodeTriwulan: 1,
			SelectedScore: &score, CalculatedPercentage: 60, VerificationStatus: constants.VerificationPending},
		{BundleID: s.bundle, IndicatorID: uuid.New(), PuskesmasID: s.alpha.ID, UserID: uuid.New(), Tahun: 2024, PeriodeTriwulan: 2,
			SelectedScore: &score, CalculatedPercentage: 100, VerificationStatus: constants.VerificationRevision},
	}
	s.Require().NoError(s.pg.DB.Create(&rows).Error)
}

func (s *GormStoreSuite) TestSummaryPerActiveFacility() {
	out, err := s.store.FacilitySummary(context.Background(), repository.Filter{BundleID: s.bundle, Tahun: 2024, Triwulan: 1})
	s.Require().NoError(err)
	s.Require().Len(out, 2)

	s.Equal("Alpha", out[0].NamaPuskesmas)
	s.Equal(2, out[0].Filled)
	s.InDelta(70, out[0].Average, 0.001)
	s.Equal(1, out[0].Approved)
	s.Equal(1, out[0].Pending)
	s.Equal(0, out[0].Revision)

	s.Equal("Beta", out[1].NamaPuskesmas)
	s.Equal(0, out[1].Filled)
	s.Zero(out[1].Average)
}

func (s *GormStoreSuite) TestSummaryAllQuartersAndIDFilter() {
	out, err := s.store.FacilitySummary(context.Background(), repository.Filter{
		BundleID:     s.bundle,
		Tahun:        2024,
		PuskesmasIDs: []uuid.UUID{s.alpha.ID},
	})
	s.Require().NoError(err)
	s.Require().Len(out, 1)
	s.Equal(s.alpha.ID, out[0].PuskesmasID)
	s.Equal(3, out[0].Filled)
	s.InDelta(80, out[0].Average, 0.001)
	s.Equal(1, out[0].Revision)
}
