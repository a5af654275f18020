package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pkp_monitor_backend/internals/features/penilaian/assessments/model"
	"pkp_monitor_backend/internals/features/penilaian/verification"
)

var ErrNotFound = errors.New("penilaian tidak ditemukan")

type Filter struct {
	BundleID           uuid.UUID
	PuskesmasID        *uuid.UUID
	Tahun              int
	Triwulan           int
	VerificationStatus string
	Limit              int
	Offset             int
}

type Store interface {
	// Upsert mengembalikan applied=false kalau baris tersimpan punya client_version lebih baru.
	Upsert(ctx context.Context, m *model.AssessmentModel) (bool, error)
	// FindByKey mengembalikan (nil, nil) kalau belum ada baris.
	FindByKey(ctx context.Context, k model.Key) (*model.AssessmentModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.AssessmentModel, error)
	List(ctx context.Context, f Filter) ([]model.AssessmentModel, error)
	Verify(ctx context.Context, id uuid.UUID, rec verification.Record) (*model.AssessmentModel, error)
	UpdatePercentage(ctx context.Context, id uuid.UUID, pct float64) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// kolom yang ditimpa saat konflik; verifikasi kembali ke pending dan jejak verifikator dikosongkan
// setiap ada perubahan input.
var upsertColumns = []string{
	"bundle_id", "user_id",
	"selected_score", "actual_achievement", "calculated_percentage",
	"keterangan", "bukti_dukung", "client_version",
	"verification_status", "verified_by", "verified_at", "verification_comment",
	"updated_at",
}

func (s *GormStore) Upsert(ctx context.Context, m *model.AssessmentModel) (bool, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "indicator_id"}, {Name: "puskesmas_id"}, {Name: "periode_triwulan"}, {Name: "tahun"},
			},
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Expr{SQL: "assessments.client_version <= EXCLUDED.client_version"},
			}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		Create(m)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) FindByKey(ctx context.Context, k model.Key) (*model.AssessmentModel, error) {
	var out []model.AssessmentModel
	err := s.db.WithContext(ctx).
		Where("indicator_id = ? AND puskesmas_id = ? AND periode_triwulan = ? AND tahun = ?",
			k.IndicatorID, k.PuskesmasID, k.Triwulan, k.Tahun).
		Limit(1).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func (s *GormStore) FindByID(ctx context.Context, id uuid.UUID) (*model.AssessmentModel, error) {
	var m model.AssessmentModel
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) List(ctx context.Context, f Filter) ([]model.AssessmentModel, error) {
	q := s.db.WithContext(ctx).Model(&model.AssessmentModel{}).Where("bundle_id = ?", f.BundleID)
	if f.PuskesmasID != nil {
		q = q.Where("puskesmas_id = ?", *f.PuskesmasID)
	}
	if f.Tahun > 0 {
		q = q.Where("tahun = ?", f.Tahun)
	}
	if f.Triwulan > 0 {
		q = q.Where("periode_triwulan = ?", f.Triwulan)
	}
	if f.VerificationStatus != "" {
		q = q.Where("verification_status = ?", f.VerificationStatus)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	var out []model.AssessmentModel
	err := q.Order("puskesmas_id, periode_triwulan, created_at").Find(&out).Error
	return out, err
}

func (s *GormStore) Verify(ctx context.Context, id uuid.UUID, rec verification.Record) (*model.AssessmentModel, error) {
	var m model.AssessmentModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.AssessmentModel{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"verification_status":  rec.Status,
				"verified_by":          rec.VerifiedBy,
				"verified_at":          rec.VerifiedAt,
				"verification_comment": rec.Comment,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.First(&m, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdatePercentage dipakai backfill; client_version & updated_at tidak disentuh.
func (s *GormStore) UpdatePercentage(ctx context.Context, id uuid.UUID, pct float64) error {
	return s.db.WithContext(ctx).
		Model(&model.AssessmentModel{}).
		Where("id = ?", id).
		UpdateColumn("calculated_percentage", pct).Error
}
