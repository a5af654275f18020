package service

import (
	"context"
	"math"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	assessmentModel "pkp_monitor_backend/internals/features/penilaian/assessments/model"
	assessmentRepo "pkp_monitor_backend/internals/features/penilaian/assessments/repository"
	bundleModel "pkp_monitor_backend/internals/features/penilaian/bundles/model"
	indicatorModel "pkp_monitor_backend/internals/features/penilaian/indicators/model"
	"pkp_monitor_backend/internals/features/penilaian/rekap/repository"
)

type CatalogReader interface {
	BundleCatalog(ctx context.Context, bundleID uuid.UUID) (*bundleModel.BundleModel, []indicatorModel.CatalogItem, error)
}

type AssessmentLister interface {
	List(ctx context.Context, f assessmentRepo.Filter) ([]assessmentModel.AssessmentModel, error)
}

type BundleReader interface {
	Get(ctx context.Context, id uuid.UUID) (*bundleModel.BundleModel, error)
}

type Service struct {
	store       repository.Store
	catalog     CatalogReader
	assessments AssessmentLister
	bundles     BundleReader
}

func New(store repository.Store, catalog CatalogReader, assessments AssessmentLister, bundles BundleReader) *Service {
	return &Service{store: store, catalog: catalog, assessments: assessments, bundles: bundles}
}

type ClusterScore struct {
	ClusterID   uuid.UUID `json:"cluster_id"`
	NamaKlaster string    `json:"nama_klaster"`
	Urutan      int       `json:"urutan"`
	Indicators  int       `json:"indicators"`
	Filled      int       `json:"filled"`
	Average     float64   `json:"average"`
}

type ClusterRecap struct {
	BundleID    uuid.UUID      `json:"bundle_id"`
	PuskesmasID uuid.UUID      `json:"puskesmas_id"`
	Tahun       int            `json:"tahun"`
	Triwulan    int            `json:"triwulan"`
	Clusters    []ClusterScore `json:"clusters"`
	Filled      int            `json:"filled"`
	Indicators  int            `json:"indicators"`
	Average     float64        `json:"average"`
}

type Query struct {
	BundleID    uuid.UUID
	PuskesmasID uuid.UUID
	Tahun       int
	Triwulan    int
}

// Clusters: rata-rata calculated_percentage per klaster untuk satu puskesmas.
// Rata-rata dihitung dari nilai yang sudah diisi; indikator kosong hanya mengurangi "filled".
func (s *Service) Clusters(ctx context.Context, q Query) (*ClusterRecap, error) {
	var (
		bundle *bundleModel.BundleModel
		items  []indicatorModel.CatalogItem
		rows   []assessmentModel.AssessmentModel
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bundle, items, err = s.catalog.BundleCatalog(gctx, q.BundleID)
		return err
	})
	g.Go(func() error {
		var err error
		pid := q.PuskesmasID
		rows, err = s.assessments.List(gctx, assessmentRepo.Filter{
			BundleID: q.BundleID, PuskesmasID: &pid, Tahun: q.Tahun, Triwulan: q.Triwulan,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tahun := q.Tahun
	if tahun == 0 {
		tahun = bundle.Tahun
	}
	byIndicator := make(map[uuid.UUID][]float64)
	for i := range rows {
		if rows[i].Tahun == tahun && rows[i].HasValue() {
			byIndicator[rows[i].IndicatorID] = append(byIndicator[rows[i].IndicatorID], rows[i].CalculatedPercentage)
		}
	}

	out := &ClusterRecap{
		BundleID: q.BundleID, PuskesmasID: q.PuskesmasID, Tahun: tahun, Triwulan: q.Triwulan,
		Clusters: make([]ClusterScore, 0),
	}
	var allSum float64
	var allN int
	idx := map[uuid.UUID]int{}
	sums := map[uuid.UUID]float64{}
	counts := map[uuid.UUID]int{}
	for i := range items {
		it := &items[i]
		pos, ok := idx[it.ClusterID]
		if !ok {
			pos = len(out.Clusters)
			idx[it.ClusterID] = pos
			out.Clusters = append(out.Clusters, ClusterScore{
				ClusterID: it.ClusterID, NamaKlaster: it.NamaKlaster, Urutan: it.ClusterUrutan,
			})
		}
		cs := &out.Clusters[pos]
		cs.Indicators++
		out.Indicators++

		vals := byIndicator[it.Indicator.ID]
		if len(vals) == 0 {
			continue
		}
		cs.Filled++
		out.Filled++
		for _, v := range vals {
			sums[it.ClusterID] += v
			counts[it.ClusterID]++
			allSum += v
			allN++
		}
	}
	for i := range out.Clusters {
		cs := &out.Clusters[i]
		if n := counts[cs.ClusterID]; n > 0 {
			cs.Average = round2(sums[cs.ClusterID] / float64(n))
		}
	}
	if allN > 0 {
		out.Average = round2(allSum / float64(allN))
	}
	return out, nil
}

// Facilities: ringkasan per puskesmas aktif (admin).
func (s *Service) Facilities(ctx context.Context, f repository.Filter) ([]repository.FacilityRow, int, error) {
	if f.Tahun == 0 {
		b, err := s.bundles.Get(ctx, f.BundleID)
		if err != nil {
			return nil, 0, err
		}
		f.Tahun = b.Tahun
	}
	rows, err := s.store.FacilitySummary(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return rows, f.Tahun, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
