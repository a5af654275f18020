package puskesmas

import (
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pkp_monitor_backend/internals/constants"
	"pkp_monitor_backend/internals/features/puskesmas/model"
)

type PuskesmasSeed struct {
	KodePuskesmas string  `json:"kode_puskesmas"`
	NamaPuskesmas string  `json:"nama_puskesmas"`
	Alamat        *string `json:"alamat"`
	Kecamatan     *string `json:"kecamatan"`
	Kabupaten     *string `json:"kabupaten"`
	Telepon       *string `json:"telepon"`
	Status        string  `json:"status"`
}

// SeedPuskesmasFromJSON: baris dengan kode_puskesmas yang sudah ada dilewati.
func SeedPuskesmasFromJSON(db *gorm.DB, filePath string) error {
	log := zap.S().Named("seed")
	log.Infof("📥 Membaca file puskesmas: %s", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("baca file %s: %w", filePath, err)
	}

	var inputs []PuskesmasSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}

	for _, data := range inputs {
		kode := strings.TrimSpace(data.KodePuskesmas)
		if kode == "" || strings.TrimSpace(data.NamaPuskesmas) == "" {
			log.Warnf("⚠️ Data puskesmas tanpa kode/nama dilewati: %+v", data)
			continue
		}

		var existing model.PuskesmasModel
		if err := db.Where("kode_puskesmas = ?", kode).First(&existing).Error; err == nil {
			log.Infof("ℹ️ Puskesmas '%s' sudah ada, dilewati.", kode)
			continue
		}

		status := data.Status
		if status != constants.PuskesmasNonaktif {
			status = constants.PuskesmasAktif
		}

		row := model.PuskesmasModel{
			KodePuskesmas: kode,
			NamaPuskesmas: strings.TrimSpace(data.NamaPuskesmas),
			Alamat:        data.Alamat,
			Kecamatan:     data.Kecamatan,
			Kabupaten:     data.Kabupaten,
			Telepon:       data.Telepon,
			Status:        status,
		}
		if err := db.Create(&row).Error; err != nil {
			log.Errorf("❌ Gagal insert puskesmas '%s': %v", kode, err)
			continue
		}
		log.Infof("✅ Berhasil insert puskesmas '%s'", kode)
	}
	return nil
}
