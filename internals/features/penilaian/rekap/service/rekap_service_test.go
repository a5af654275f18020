package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkp_monitor_backend/internals/constants"
	assessmentModel "pkp_monitor_backend/internals/features/penilaian/assessments/model"
	assessmentRepo "pkp_monitor_backend/internals/features/penilaian/assessments/repository"
	bundleModel "pkp_monitor_backend/internals/features/penilaian/bundles/model"
	indicatorModel "pkp_monitor_backend/internals/features/penilaian/indicators/model"
	"pkp_monitor_backend/internals/features/penilaian/rekap/repository"
	pkmModel "pkp_monitor_backend/internals/features/puskesmas/model"
	pkmRepo "pkp_monitor_backend/internals/features/puskesmas/repository"
)

type fakeCatalog struct {
	bundle *bundleModel.BundleModel
	items  []indicatorModel.CatalogItem
}

func (f fakeCatalog) BundleCatalog(context.Context, uuid.UUID) (*bundleModel.BundleModel, []indicatorModel.CatalogItem, error) {
	return f.bundle, f.items, nil
}

func (f fakeCatalog) Get(context.Context, uuid.UUID) (*bundleModel.BundleModel, error) {
	return f.bundle, nil
}

func ptrI(v int) *int { return &v }

type world struct {
	svc         *Service
	assessments *assessmentRepo.MemoryStore
	bundle      uuid.UUID
	pkmA, pkmB  uuid.UUID
	items       []indicatorModel.CatalogItem
}

func newWorld(t *testing.T) *world {
	t.Helper()
	w := &world{bundle: uuid.New(), pkmA: uuid.New(), pkmB: uuid.New(), assessments: assessmentRepo.NewMemoryStore()}
	c1, c2 := uuid.New(), uuid.New()
	for i, cl := range []uuid.UUID{c1, c1, c2} {
		w.items = append(w.items, indicatorModel.CatalogItem{
			ClusterID: cl, BundleID: w.bundle, NamaKlaster: map[uuid.UUID]string{c1: "Manajemen", c2: "UKM"}[cl],
			ClusterUrutan: map[uuid.UUID]int{c1: 1, c2: 2}[cl],
			Indicator:     indicatorModel.IndicatorModel{ID: uuid.New(), ClusterID: cl, Urutan: i + 1},
		})
	}
	catalog := fakeCatalog{bundle: &bundleModel.BundleModel{ID: w.bundle, Tahun: 2024}, items: w.items}
	facilities := pkmRepo.NewMemoryStore(
		pkmModel.PuskesmasModel{ID: w.pkmA, KodePuskesmas: "A", NamaPuskesmas: "Puskesmas Alpha", Status: constants.PuskesmasAktif},
		pkmModel.PuskesmasModel{ID: w.pkmB, KodePuskesmas: "B", NamaPuskesmas: "Puskesmas Beta", Status: constants.PuskesmasAktif},
		pkmModel.PuskesmasModel{ID: uuid.New(), KodePuskesmas: "C", NamaPuskesmas: "Puskesmas Nonaktif", Status: constants.PuskesmasNonaktif},
	)
	w.svc = New(repository.NewMemoryStore(facilities, w.assessments), catalog, w.assessments, catalog)
	return w
}

func (w *world) put(t *testing.T, pkm uuid.UUID, idx, q int, pct float64) {
	t.Helper()
	_, err := w.assessments.Upsert(context.Background(), &assessmentModel.AssessmentModel{
		BundleID: w.bundle, IndicatorID: w.items[idx].Indicator.ID, PuskesmasID: pkm,
		Tahun: 2024, PeriodeTriwulan: q, SelectedScore: ptrI(int(pct / 10)), CalculatedPercentage: pct,
	})
	require.NoError(t, err)
}

func TestClusterAverages(t *testing.T) {
	w := newWorld(t)
	w.put(t, w.pkmA, 0, 1, 80)
	w.put(t, w.pkmA, 1, 1, 50)
	w.put(t, w.pkmA, 2, 2, 100) // triwulan lain
	w.put(t, w.pkmB, 2, 1, 10)  // puskesmas lain

	out, err := w.svc.Clusters(context.Background(), Query{BundleID: w.bundle, PuskesmasID: w.pkmA, Triwulan: 1})
	require.NoError(t, err)

	require.Len(t, out.Clusters, 2)
	assert.Equal(t, "Manajemen", out.Clusters[0].NamaKlaster)
	assert.Equal(t, 65.0, out.Clusters[0].Average)
	assert.Equal(t, 2, out.Clusters[0].Filled)
	assert.Equal(t, 0, out.Clusters[1].Filled)
	assert.Zero(t, out.Clusters[1].Average)
	assert.Equal(t, 65.0, out.Average)
	assert.Equal(t, 2, out.Filled)
	assert.Equal(t, 3, out.Indicators)
	assert.Equal(t, 2024, out.Tahun)
}

func TestFacilitySummaryFiltersActiveAndIDs(t *testing.T) {
	w := newWorld(t)
	w.put(t, w.pkmA, 0, 1, 80)
	w.put(t, w.pkmA, 1, 1, 40)
	w.put(t, w.pkmB, 0, 1, 100)

	rows, tahun, err := w.svc.Facilities(context.Background(), repository.Filter{BundleID: w.bundle, Triwulan: 1})
	require.NoError(t, err)
	assert.Equal(t, 2024, tahun)
	require.Len(t, rows, 2, "puskesmas nonaktif tidak ikut")
	assert.Equal(t, "Puskesmas Alpha", rows[0].NamaPuskesmas)
	assert.Equal(t, 60.0, rows[0].Average)
	assert.Equal(t, 2, rows[0].Filled)
	assert.Equal(t, 2, rows[0].Pending)

	rows, _, err = w.svc.Facilities(context.Background(), repository.Filter{BundleID: w.bundle, Tahun: 2024, PuskesmasIDs: []uuid.UUID{w.pkmB}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, w.pkmB, rows[0].PuskesmasID)
}
