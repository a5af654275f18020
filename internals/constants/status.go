package constants

// Status bundle penilaian
const (
	BundleDraft   = "draft"
	BundleAktif   = "aktif"
	BundleSelesai = "selesai"
)

// Status puskesmas
const (
	PuskesmasAktif    = "aktif"
	PuskesmasNonaktif = "nonaktif"
)

// Status verifikasi assessment & evaluasi triwulan
const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRevision = "revision"
)

// Locals keys yang diisi middleware auth
const (
	LocUserID      = "user_id"
	LocUserRole    = "userRole"
	LocPuskesmasID = "puskesmas_id"
	LocWorkspace   = "workspace"
)
