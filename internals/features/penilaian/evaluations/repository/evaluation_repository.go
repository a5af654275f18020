package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pkp_monitor_backend/internals/features/penilaian/evaluations/model"
	"pkp_monitor_backend/internals/features/penilaian/verification"
)

var ErrNotFound = errors.New("evaluasi tidak ditemukan")

type Store interface {
	// Upsert: last write wins pada kunci (bundle, puskesmas, triwulan, tahun).
	Upsert(ctx context.Context, m *model.EvaluationModel) error
	// FindByKey mengembalikan (nil, nil) kalau belum ada.
	FindByKey(ctx context.Context, k model.Key) (*model.EvaluationModel, error)
	// ListYear: semua triwulan satu puskesmas untuk bundle & tahun.
	ListYear(ctx context.Context, bundleID, puskesmasID uuid.UUID, tahun int) ([]model.EvaluationModel, error)
	Verify(ctx context.Context, id uuid.UUID, rec verification.Record) (*model.EvaluationModel, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Upsert(ctx context.Context, m *model.EvaluationModel) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "bundle_id"}, {Name: "puskesmas_id"}, {Name: "periode_triwulan"}, {Name: "tahun"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"user_id",
				"analisis_pencapaian", "hambatan_kendala", "rencana_tindak_lanjut",
				"verification_status", "verified_by", "verified_at", "verification_comment",
				"updated_at",
			}),
		}).
		Create(m).Error
}

func (s *GormStore) FindByKey(ctx context.Context, k model.Key) (*model.EvaluationModel, error) {
	var out []model.EvaluationModel
	err := s.db.WithContext(ctx).
		Where("bundle_id = ? AND puskesmas_id = ? AND periode_triwulan = ? AND tahun = ?",
			k.BundleID, k.PuskesmasID, k.Triwulan, k.Tahun).
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

func (s *GormStore) ListYear(ctx context.Context, bundleID, puskesmasID uuid.UUID, tahun int) ([]model.EvaluationModel, error) {
	var out []model.EvaluationModel
	err := s.db.WithContext(ctx).
		Where("bundle_id = ? AND puskesmas_id = ? AND tahun = ?", bundleID, puskesmasID, tahun).
		Order("periode_triwulan").
		Find(&out).Error
	return out, err
}

func (s *GormStore) Verify(ctx context.Context, id uuid.UUID, rec verification.Record) (*model.EvaluationModel, error) {
	var m model.EvaluationModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.EvaluationModel{}).
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
