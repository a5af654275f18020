package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	assessmentModel "pkp_monitor_backend/internals/features/penilaian/assessments/model"
	bundleModel "pkp_monitor_backend/internals/features/penilaian/bundles/model"
	evaluationModel "pkp_monitor_backend/internals/features/penilaian/evaluations/model"
	indicatorModel "pkp_monitor_backend/internals/features/penilaian/indicators/model"
	pkmModel "pkp_monitor_backend/internals/features/puskesmas/model"
	authModel "pkp_monitor_backend/internals/features/users/auth/model"
	profileModel "pkp_monitor_backend/internals/features/users/user_profiles/model"
)

// Models: urutan mengikuti foreign key (master dulu, transaksi belakangan).
func Models() []any {
	return []any{
		&pkmModel.PuskesmasModel{},
		&authModel.UserModel{},
		&profileModel.UserProfileModel{},
		&authModel.RefreshToken{},
		&authModel.TokenBlacklist{},
		&bundleModel.BundleModel{},
		&indicatorModel.ClusterModel{},
		&indicatorModel.IndicatorModel{},
		&assessmentModel.AssessmentModel{},
		&evaluationModel.EvaluationModel{},
	}
}

// AutoMigrate dipanggil saat DB_AUTO_MIGRATE=true.
func AutoMigrate(db *gorm.DB) error {
	zap.S().Info("🛠️ AutoMigrate tabel...")
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	zap.S().Info("✅ AutoMigrate selesai.")
	return nil
}
