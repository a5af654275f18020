package constants

import "fmt"

const (
	RoleAdminDinkes      = "admin_dinkes"
	RolePetugasPuskesmas = "petugas_puskesmas"
	RoleVerifikator      = "verifikator"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess    = "❌ Hanya admin dinkes yang boleh mengakses fitur %s."
	ErrOnlyReviewersCanAccess = "❌ Hanya verifikator atau admin dinkes yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorReviewer(feature string) string {
	return fmt.Sprintf(ErrOnlyReviewersCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdminDinkes,
		RolePetugasPuskesmas,
		RoleVerifikator,
	}

	AdminOnly = []string{
		RoleAdminDinkes,
	}

	ReviewerRoles = []string{
		RoleVerifikator,
		RoleAdminDinkes,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
