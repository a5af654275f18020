package repository

import (
	"context"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"pkp_monitor_backend/internals/constants"
	assessmentModel "pkp_monitor_backend/internals/features/penilaian/assessments/model"
	assessmentRepo "pkp_monitor_backend/internals/features/penilaian/assessments/repository"
	pkmModel "pkp_monitor_backend/internals/features/puskesmas/model"
)

type Filter struct {
	BundleID     uuid.UUID
	Tahun        int
	Triwulan     int // 0 = semua triwulan
	PuskesmasIDs []uuid.UUID
}

// FacilityRow: ringkasan satu puskesmas aktif.
type FacilityRow struct {
	PuskesmasID   uuid.UUID `gorm:"column:puskesmas_id" json:"puskesmas_id"`
	NamaPuskesmas string    `gorm:"column:nama_puskesmas" json:"nama_puskesmas"`
	Filled        int       `gorm:"column:filled" json:"filled"`
	Average       float64   `gorm:"column:average" json:"average"`
	Approved      int       `gorm:"column:approved" json:"approved"`
	Pending       int       `gorm:"column:pending" json:"pending"`
	Revision      int       `gorm:"column:revision" json:"revision"`
}

type Store interface {
	FacilitySummary(ctx context.Context, f Filter) ([]FacilityRow, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

const facilitySummarySQL = `
SELECT p.id AS puskesmas_id,
       p.nama_puskesmas,
       COUNT(a.id) FILTER (WHERE a.selected_score IS NOT NULL OR a.actual_achievement IS NOT NULL) AS filled,
       COALESCE(ROUND(AVG(a.calculated_percentage)::numeric, 2), 0)                                AS average,
       COUNT(a.id) FILTER (WHERE a.verification_status = 'approved')                               AS approved,
       COUNT(a.id) FILTER (WHERE a.verification_status = 'pending')                                AS pending,
       COUNT(a.id) FILTER (WHERE a.verification_status = 'revision')                               AS revision
FROM puskesmas p
LEFT JOIN assessments a
       ON a.puskesmas_id = p.id
      AND a.bundle_id = ?
      AND a.tahun = ?
      AND (? = 0 OR a.periode_triwulan = ?)
WHERE p.status = ?
  AND (cardinality(?::uuid[]) = 0 OR p.id = ANY(?::uuid[]))
GROUP BY p.id, p.nama_puskesmas
ORDER BY p.nama_puskesmas`

func (s *GormStore) FacilitySummary(ctx context.Context, f Filter) ([]FacilityRow, error) {
	ids := make([]string, 0, len(f.PuskesmasIDs))
	for _, id := range f.PuskesmasIDs {
		ids = append(ids, id.String())
	}
	arr := pq.Array(ids)

	var out []FacilityRow
	err := s.db.WithContext(ctx).
		Raw(facilitySummarySQL,
			f.BundleID, f.Tahun, f.Triwulan, f.Triwulan,
			constants.PuskesmasAktif,
			arr, arr).
		Scan(&out).Error
	return out, err
}

/* ===========================================================
 * Memory: agregasi di Go, dipakai test
 * =========================================================== */

type FacilityLister interface {
	ListActive(ctx context.Context) ([]pkmModel.PuskesmasModel, error)
}

type AssessmentLister interface {
	List(ctx context.Context, f assessmentRepo.Filter) ([]assessmentModel.AssessmentModel, error)
}

type MemoryStore struct {
	facilities  FacilityLister
	assessments AssessmentLister
}

func NewMemoryStore(facilities FacilityLister, assessments AssessmentLister) *MemoryStore {
	return &MemoryStore{facilities: facilities, assessments: assessments}
}

func (s *MemoryStore) FacilitySummary(ctx context.Context, f Filter) ([]FacilityRow, error) {
	facs, err := s.facilities.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.assessments.List(ctx, assessmentRepo.Filter{BundleID: f.BundleID, Tahun: f.Tahun, Triwulan: f.Triwulan})
	if err != nil {
		return nil, err
	}
	want := make(map[uuid.UUID]bool, len(f.PuskesmasIDs))
	for _, id := range f.PuskesmasIDs {
		want[id] = true
	}

	out := make([]FacilityRow, 0, len(facs))
	for _, p := range facs {
		if len(want) > 0 && !want[p.ID] {
			continue
		}
		row := FacilityRow{PuskesmasID: p.ID, NamaPuskesmas: p.NamaPuskesmas}
		var sum float64
		var n int
		for i := range rows {
			a := &rows[i]
			if a.PuskesmasID != p.ID {
				continue
			}
			n++
			sum += a.CalculatedPercentage
			if a.HasValue() {
				row.Filled++
			}
			switch a.VerificationStatus {
			case constants.VerificationApproved:
				row.Approved++
			case constants.VerificationPending:
				row.Pending++
			case constants.VerificationRevision:
				row.Revision++
			}
		}
		if n > 0 {
			row.Average = round2(sum / float64(n))
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].NamaPuskesmas < out[j].NamaPuskesmas })
	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
