package bundles

import (
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"pkp_monitor_backend/internals/constants"
	bundleModel "pkp_monitor_backend/internals/features/penilaian/bundles/model"
	indicatorModel "pkp_monitor_backend/internals/features/penilaian/indicators/model"
	"pkp_monitor_backend/internals/features/penilaian/scoring"
)

type IndicatorSeed struct {
	Urutan              int               `json:"urutan"`
	NamaIndikator       string            `json:"nama_indikator"`
	DefinisiOperasional *string           `json:"definisi_operasional"`
	Type                string            `json:"type"`
	ScoringCriteria     map[string]string `json:"scoring_criteria"`
	TargetPercentage    *float64          `json:"target_percentage"`
	TotalSasaran        *int              `json:"total_sasaran"`
	Satuan              *string           `json:"satuan"`
	Periodicity         string            `json:"periodicity"`
}

type ClusterSeed struct {
	NamaKlaster string          `json:"nama_klaster"`
	Urutan      int             `json:"urutan"`
	Indicators  []IndicatorSeed `json:"indicators"`
}

type BundleSeed struct {
	Judul    string        `json:"judul"`
	Tahun    int           `json:"tahun"`
	Status   string        `json:"status"`
	Clusters []ClusterSeed `json:"clusters"`
}

func (s IndicatorSeed) model() (indicatorModel.IndicatorModel, error) {
	periodicity := s.Periodicity
	if periodicity == "" {
		periodicity = scoring.PeriodicityAnnual
	}
	m := indicatorModel.IndicatorModel{
		Urutan:              s.Urutan,
		NamaIndikator:       strings.TrimSpace(s.NamaIndikator),
		DefinisiOperasional: s.DefinisiOperasional,
		Type:                s.Type,
		ScoringCriteria:     datatypes.NewJSONType(s.ScoringCriteria),
		TargetPercentage:    s.TargetPercentage,
		TotalSasaran:        s.TotalSasaran,
		Satuan:              s.Satuan,
		Periodicity:         periodicity,
	}
	if err := scoring.ValidateRule(m.Rule()); err != nil {
		return m, fmt.Errorf("indikator %q: %w", m.NamaIndikator, err)
	}
	return m, nil
}

// SeedBundlesFromJSON memasukkan bundle beserta klaster & indikatornya dalam satu transaksi.
// Bundle dengan judul+tahun yang sama dilewati; indikator yang tidak bisa diskor membatalkan bundle itu.
func SeedBundlesFromJSON(db *gorm.DB, filePath string) error {
	log := zap.S().Named("seed")
	log.Infof("📥 Membaca file bundle: %s", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("baca file %s: %w", filePath, err)
	}

	var inputs []BundleSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}

	for _, data := range inputs {
		var count int64
		if err := db.Model(&bundleModel.BundleModel{}).
			Where("judul = ? AND tahun = ?", data.Judul, data.Tahun).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			log.Infof("ℹ️ Bundle '%s' (%d) sudah ada, dilewati.", data.Judul, data.Tahun)
			continue
		}

		if err := insertBundle(db, data); err != nil {
			log.Errorf("❌ Gagal insert bundle '%s': %v", data.Judul, err)
			continue
		}
		log.Infof("✅ Berhasil insert bundle '%s' (%d)", data.Judul, data.Tahun)
	}
	return nil
}

func insertBundle(db *gorm.DB, data BundleSeed) error {
	status := data.Status
	if !bundleModel.IsValidStatus(status) {
		status = constants.BundleDraft
	}

	return db.Transaction(func(tx *gorm.DB) error {
		bundle := bundleModel.BundleModel{
			Judul:  strings.TrimSpace(data.Judul),
			Tahun:  data.Tahun,
			Status: status,
		}
		if err := tx.Create(&bundle).Error; err != nil {
			return err
		}

		for _, c := range data.Clusters {
			cluster := indicatorModel.ClusterModel{
				BundleID:    bundle.ID,
				NamaKlaster: strings.TrimSpace(c.NamaKlaster),
				Urutan:      c.Urutan,
			}
			if err := tx.Create(&cluster).Error; err != nil {
				return err
			}

			for _, in := range c.Indicators {
				row, err := in.model()
				if err != nil {
					return err
				}
				row.ClusterID = cluster.ID
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
