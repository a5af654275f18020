package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assessmentModel "pkp_monitor_backend/internals/features/penilaian/assessments/model"
	assessmentRepo "pkp_monitor_backend/internals/features/penilaian/assessments/repository"
	bundleModel "pkp_monitor_backend/internals/features/penilaian/bundles/model"
	evaluationModel "pkp_monitor_backend/internals/features/penilaian/evaluations/model"
	indicatorModel "pkp_monitor_backend/internals/features/penilaian/indicators/model"
	"pkp_monitor_backend/internals/features/penilaian/scoring"
)

type fakeCatalog struct {
	bundle *bundleModel.BundleModel
	items  []indicatorModel.CatalogItem
	err    error
}

func (f fakeCatalog) BundleCatalog(context.Context, uuid.UUID) (*bundleModel.BundleModel, []indicatorModel.CatalogItem, error) {
	return f.bundle, f.items, f.err
}

type fakeEvaluations struct {
	row *evaluationModel.EvaluationModel
}

func (f fakeEvaluations) Get(context.Context, uuid.UUID, uuid.UUID, int, int) (*evaluationModel.EvaluationModel, error) {
	return f.row, nil
}

func ptrI(v int) *int { return &v }

func catalogOf(bundle uuid.UUID, n int) []indicatorModel.CatalogItem {
	out := make([]indicatorModel.CatalogItem, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, indicatorModel.CatalogItem{
			BundleID:    bundle,
			NamaKlaster: "Klaster 1",
			Indicator: indicatorModel.IndicatorModel{
				ID:            uuid.New(),
				Urutan:        i + 1,
				NamaIndikator: "Indikator " + string(rune('A'+i)),
				Type:          scoring.TypeScoring,
			},
		})
	}
	return out
}

func TestSnapshotProgressAndSidebar(t *testing.T) {
	ctx := context.Background()
	bundleID, pid := uuid.New(), uuid.New()
	items := catalogOf(bundleID, 4)

	assessments := assessmentRepo.NewMemoryStore()
	for _, idx := range []int{0, 2} {
		_, err := assessments.Upsert(ctx, &assessmentModel.AssessmentModel{
			BundleID: bundleID, IndicatorID: items[idx].Indicator.ID, PuskesmasID: pid,
			Tahun: 2024, PeriodeTriwulan: 1, SelectedScore: ptrI(10), CalculatedPercentage: 75,
		})
		require.NoError(t, err)
	}
	// triwulan lain tidak ikut dihitung
	_, err := assessments.Upsert(ctx, &assessmentModel.AssessmentModel{
		BundleID: bundleID, IndicatorID: items[1].Indicator.ID, PuskesmasID: pid,
		Tahun: 2024, PeriodeTriwulan: 2, SelectedScore: ptrI(5), CalculatedPercentage: 50,
	})
	require.NoError(t, err)

	svc := New(
		fakeCatalog{bundle: &bundleModel.BundleModel{ID: bundleID, Judul: "PKP 2024", Tahun: 2024}, items: items},
		assessments,
		fakeEvaluations{row: &evaluationModel.EvaluationModel{AnalisisPencapaian: "a", HambatanKendala: "h", RencanaTindakLanjut: "r"}},
	)

	snap, err := svc.Snapshot(ctx, Query{BundleID: bundleID, PuskesmasID: pid, Triwulan: 1, Index: 9})
	require.NoError(t, err)

	assert.Equal(t, 2024, snap.Tahun)
	assert.Equal(t, 3, snap.Index, "index di-clamp ke indikator terakhir")
	assert.True(t, snap.HasPrev)
	assert.False(t, snap.HasNext)
	assert.Equal(t, Progress{Filled: 2, Total: 4, Percentage: 50}, snap.Progress)

	require.Len(t, snap.Sidebar, 4)
	assert.Equal(t, "75%", snap.Sidebar[0].Display)
	assert.Equal(t, "-", snap.Sidebar[1].Display)
	assert.True(t, snap.Sidebar[3].Current)

	require.NotNil(t, snap.Current)
	assert.Equal(t, items[3].Indicator.ID, snap.Current.Indicator.ID)
	assert.Nil(t, snap.Current.Assessment)
	assert.Equal(t, EvaluationStatus{Saved: true, Complete: true}, snap.Evaluation)
}

func TestSnapshotEmptyCatalog(t *testing.T) {
	bundleID := uuid.New()
	svc := New(
		fakeCatalog{bundle: &bundleModel.BundleModel{ID: bundleID, Tahun: 2024}},
		assessmentRepo.NewMemoryStore(),
		fakeEvaluations{},
	)
	snap, err := svc.Snapshot(context.Background(), Query{BundleID: bundleID, PuskesmasID: uuid.New(), Triwulan: 1, Index: 2})
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Index)
	assert.Nil(t, snap.Current)
	assert.Zero(t, snap.Progress.Percentage)
	assert.False(t, snap.Evaluation.Saved)
}

func TestSnapshotPropagatesLoadError(t *testing.T) {
	boom := errors.New("catalog down")
	svc := New(fakeCatalog{err: boom}, assessmentRepo.NewMemoryStore(), fakeEvaluations{})
	_, err := svc.Snapshot(context.Background(), Query{BundleID: uuid.New(), PuskesmasID: uuid.New(), Triwulan: 1})
	assert.ErrorIs(t, err, boom)
}
