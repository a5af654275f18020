package seeds

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pkp_monitor_backend/internals/configs"
	"pkp_monitor_backend/internals/seeds/admins"
	"pkp_monitor_backend/internals/seeds/bundles"
	"pkp_monitor_backend/internals/seeds/puskesmas"
)

// RunAllSeeds dijalankan saat RUN_SEEDS=true. Gagal satu seed tidak menghentikan seed lain.
func RunAllSeeds(ctx context.Context, db *gorm.DB) {
	log := zap.S().Named("seed")

	//* Master puskesmas
	if err := puskesmas.SeedPuskesmasFromJSON(db, configs.GetEnv("SEED_PUSKESMAS_FILE", "internals/seeds/puskesmas/data_puskesmas.json")); err != nil {
		log.Errorf("❌ Seed puskesmas: %v", err)
	}

	//* Bundle + klaster + indikator
	if err := bundles.SeedBundlesFromJSON(db, configs.GetEnv("SEED_BUNDLE_FILE", "internals/seeds/bundles/data_bundle_2024.json")); err != nil {
		log.Errorf("❌ Seed bundle: %v", err)
	}

	//* Admin dinkes
	if err := admins.SeedAdmin(ctx, db,
		configs.GetEnv("SEED_ADMIN_EMAIL"),
		configs.GetEnv("SEED_ADMIN_PASSWORD"),
		configs.GetEnv("SEED_ADMIN_NAME", "Admin Dinkes"),
	); err != nil {
		log.Errorf("❌ Seed admin: %v", err)
	}
}
