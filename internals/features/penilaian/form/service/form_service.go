package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	assessmentDTO "pkp_monitor_backend/internals/features/penilaian/assessments/dto"
	assessmentModel "pkp_monitor_backend/internals/features/penilaian/assessments/model"
	assessmentRepo "pkp_monitor_backend/internals/features/penilaian/assessments/repository"
	bundleModel "pkp_monitor_backend/internals/features/penilaian/bundles/model"
	evaluationModel "pkp_monitor_backend/internals/features/penilaian/evaluations/model"
	"pkp_monitor_backend/internals/features/penilaian/form/model"
	indicatorDTO "pkp_monitor_backend/internals/features/penilaian/indicators/dto"
	indicatorModel "pkp_monitor_backend/internals/features/penilaian/indicators/model"
)

type CatalogReader interface {
	BundleCatalog(ctx context.Context, bundleID uuid.UUID) (*bundleModel.BundleModel, []indicatorModel.CatalogItem, error)
}

type AssessmentLister interface {
	List(ctx context.Context, f assessmentRepo.Filter) ([]assessmentModel.AssessmentModel, error)
}

type EvaluationReader interface {
	Get(ctx context.Context, bundleID, puskesmasID uuid.UUID, tahun, triwulan int) (*evaluationModel.EvaluationModel, error)
}

type Service struct {
	catalog     CatalogReader
	assessments AssessmentLister
	evaluations EvaluationReader
}

func New(catalog CatalogReader, assessments AssessmentLister, evaluations EvaluationReader) *Service {
	return &Service{catalog: catalog, assessments: assessments, evaluations: evaluations}
}

type Query struct {
	BundleID    uuid.UUID
	PuskesmasID uuid.UUID
	Tahun       int
	Triwulan    int
	Index       int
}

type SidebarItem struct {
	Index         int       `json:"index"`
	IndicatorID   uuid.UUID `json:"indicator_id"`
	NamaIndikator string    `json:"nama_indikator"`
	NamaKlaster   string    `json:"nama_klaster"`
	Display       string    `json:"display"`
	Filled        bool      `json:"filled"`
	Current       bool      `json:"current"`
}

type Current struct {
	Index       int                               `json:"index"`
	NamaKlaster string                            `json:"nama_klaster"`
	Indicator   indicatorDTO.IndicatorResponse    `json:"indicator"`
	Assessment  *assessmentDTO.AssessmentResponse `json:"assessment"`
}

type Progress struct {
	Filled     int     `json:"filled"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

type EvaluationStatus struct {
	Saved    bool `json:"saved"`
	Complete bool `json:"complete"`
}

// Snapshot: keadaan form penilaian satu triwulan. Posisi navigasi tidak disimpan.
type Snapshot struct {
	BundleID    uuid.UUID        `json:"bundle_id"`
	Judul       string           `json:"judul"`
	Tahun       int              `json:"tahun"`
	Triwulan    int              `json:"triwulan"`
	PuskesmasID uuid.UUID        `json:"puskesmas_id"`
	Index       int              `json:"index"`
	Total       int              `json:"total"`
	HasPrev     bool             `json:"has_prev"`
	HasNext     bool             `json:"has_next"`
	Current     *Current         `json:"current"`
	Sidebar     []SidebarItem    `json:"sidebar"`
	Progress    Progress         `json:"progress"`
	Evaluation  EvaluationStatus `json:"evaluation"`
}

// Snapshot memuat katalog, nilai, dan evaluasi secara paralel.
func (s *Service) Snapshot(ctx context.Context, q Query) (*Snapshot, error) {
	var (
		bundle *bundleModel.BundleModel
		items  []indicatorModel.CatalogItem
		rows   []assessmentModel.AssessmentModel
		eval   *evaluationModel.EvaluationModel
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
	g.Go(func() error {
		var err error
		eval, err = s.evaluations.Get(gctx, q.BundleID, q.PuskesmasID, q.Tahun, q.Triwulan)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tahun := q.Tahun
	if tahun == 0 {
		tahun = bundle.Tahun
	}
	byIndicator := make(map[uuid.UUID]*assessmentModel.AssessmentModel, len(rows))
	for i := range rows {
		if rows[i].Tahun == tahun {
			byIndicator[rows[i].IndicatorID] = &rows[i]
		}
	}

	nav := model.NewNavigator(len(items), q.Index)
	out := &Snapshot{
		BundleID:    bundle.ID,
		Judul:       bundle.Judul,
		Tahun:       tahun,
		Triwulan:    q.Triwulan,
		PuskesmasID: q.PuskesmasID,
		Index:       nav.Index(),
		Total:       nav.Length(),
		HasPrev:     nav.HasPrev(),
		HasNext:     nav.HasNext(),
		Sidebar:     make([]SidebarItem, 0, len(items)),
	}

	ids := make([]uuid.UUID, 0, len(items))
	filled := make(map[uuid.UUID]bool, len(items))
	for i := range items {
		ind := &items[i].Indicator
		ids = append(ids, ind.ID)

		var pct *float64
		a := byIndicator[ind.ID]
		if a.HasValue() {
			filled[ind.ID] = true
			v := a.CalculatedPercentage
			pct = &v
		}
		out.Sidebar = append(out.Sidebar, SidebarItem{
			Index:         i,
			IndicatorID:   ind.ID,
			NamaIndikator: ind.NamaIndikator,
			NamaKlaster:   items[i].NamaKlaster,
			Display:       model.DisplayValue(pct),
			Filled:        filled[ind.ID],
			Current:       nav.HasCurrent() && i == nav.Index(),
		})
	}
	if nav.HasCurrent() {
		it := &items[nav.Index()]
		out.Current = &Current{
			Index:       nav.Index(),
			NamaKlaster: it.NamaKlaster,
			Indicator:   indicatorDTO.NewIndicatorResponse(&it.Indicator),
			Assessment:  assessmentDTO.NewAssessmentResponse(byIndicator[it.Indicator.ID]),
		}
	}

	out.Progress = Progress{
		Filled:     len(filled),
		Total:      len(ids),
		Percentage: model.CompletionPercentage(ids, filled),
	}
	if eval != nil {
		out.Evaluation = EvaluationStatus{Saved: true, Complete: eval.Narrative().Complete()}
	}
	return out, nil
}
