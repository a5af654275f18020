package admins

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pkp_monitor_backend/internals/constants"
	authModel "pkp_monitor_backend/internals/features/users/auth/model"
	authRepo "pkp_monitor_backend/internals/features/users/auth/repository"
	profileModel "pkp_monitor_backend/internals/features/users/user_profiles/model"
)

// SeedAdmin membuat akun admin dinkes pertama. Email kosong = tidak ada yang dibuat.
func SeedAdmin(ctx context.Context, db *gorm.DB, email, password, nama string) error {
	log := zap.S().Named("seed")
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		log.Info("ℹ️ SEED_ADMIN_EMAIL kosong, seed admin dilewati")
		return nil
	}
	if len(password) < 8 {
		return errors.New("SEED_ADMIN_PASSWORD minimal 8 karakter")
	}
	if strings.TrimSpace(nama) == "" {
		nama = "Admin Dinkes"
	}

	store := authRepo.NewGormStore(db)
	if _, err := store.FindUserByEmail(ctx, email); err == nil {
		log.Infof("ℹ️ Admin '%s' sudah ada, dilewati.", email)
		return nil
	} else if !errors.Is(err, authRepo.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &authModel.UserModel{Email: email, Password: string(hash), IsActive: true}
	profile := &profileModel.UserProfileModel{
		NamaLengkap: strings.TrimSpace(nama),
		Role:        constants.RoleAdminDinkes,
	}
	if err := store.CreateUserWithProfile(ctx, user, profile); err != nil {
		return err
	}
	log.Infof("✅ Berhasil membuat admin '%s'", email)
	return nil
}
