// Package model berisi workspace per role: admin dinkes, verifikator, dan petugas puskesmas.
// Workspace dipilih sekali saat autentikasi lalu dipakai untuk semua pengecekan view.
package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"pkp_monitor_backend/internals/constants"
)

type View string

const (
	ViewDashboard     View = "dashboard"
	ViewBundleBuilder View = "bundle-builder"
	ViewVerifikasi    View = "verifikasi"
	ViewLaporan       View = "laporan"
	ViewPenilaian     View = "penilaian"
	ViewRekap         View = "rekap"
)

var ErrUnknownRole = errors.New("role tidak dikenal")

type Workspace interface {
	Role() string
	HomePath() string
	Views() []View
	Allows(v View) bool
	// PuskesmasID: penempatan aktif, nil untuk role tingkat dinas atau profil belum lengkap.
	PuskesmasID() *uuid.UUID
}

type AdminWorkspace struct{}

func (AdminWorkspace) Role() string            { return constants.RoleAdminDinkes }
func (AdminWorkspace) HomePath() string        { return "/admin" }
func (AdminWorkspace) PuskesmasID() *uuid.UUID { return nil }
func (AdminWorkspace) Views() []View {
	return []View{ViewDashboard, ViewBundleBuilder, ViewVerifikasi, ViewLaporan}
}
func (w AdminWorkspace) Allows(v View) bool { return contains(w.Views(), v) }

type VerifierWorkspace struct {
	Puskesmas *uuid.UUID
}

func (VerifierWorkspace) Role() string              { return constants.RoleVerifikator }
func (VerifierWorkspace) HomePath() string          { return "/verifikator" }
func (w VerifierWorkspace) PuskesmasID() *uuid.UUID { return w.Puskesmas }
func (VerifierWorkspace) Views() []View {
	return []View{ViewDashboard, ViewPenilaian, ViewVerifikasi, ViewRekap}
}
func (w VerifierWorkspace) Allows(v View) bool { return contains(w.Views(), v) }

type FacilityWorkspace struct {
	Puskesmas *uuid.UUID
}

func (FacilityWorkspace) Role() string              { return constants.RolePetugasPuskesmas }
func (FacilityWorkspace) HomePath() string          { return "/puskesmas" }
func (w FacilityWorkspace) PuskesmasID() *uuid.UUID { return w.Puskesmas }
func (FacilityWorkspace) Views() []View {
	return []View{ViewDashboard, ViewPenilaian, ViewRekap}
}
func (w FacilityWorkspace) Allows(v View) bool { return contains(w.Views(), v) }

// Resolve memetakan role profil ke workspace-nya.
func Resolve(role string, puskesmasID *uuid.UUID) (Workspace, error) {
	switch role {
	case constants.RoleAdminDinkes:
		return AdminWorkspace{}, nil
	case constants.RoleVerifikator:
		return VerifierWorkspace{Puskesmas: puskesmasID}, nil
	case constants.RolePetugasPuskesmas:
		return FacilityWorkspace{Puskesmas: puskesmasID}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
}

// CanChooseFacility: role tingkat dinas boleh membaca data puskesmas mana pun.
func CanChooseFacility(w Workspace) bool {
	switch w.(type) {
	case AdminWorkspace, VerifierWorkspace:
		return true
	default:
		return false
	}
}

func contains(views []View, v View) bool {
	for _, x := range views {
		if x == v {
			return true
		}
	}
	return false
}

// ErrNoFacility: workspace petugas tanpa penempatan puskesmas.
var ErrNoFacility = errors.New("workspace belum punya puskesmas")

// ScopeFacility menentukan puskesmas yang boleh dibaca.
// Role dinas memakai requested (nil = semua); petugas selalu dikunci ke puskesmasnya sendiri.
func ScopeFacility(w Workspace, requested *uuid.UUID) (*uuid.UUID, error) {
	if CanChooseFacility(w) {
		return requested, nil
	}
	own := w.PuskesmasID()
	if own == nil {
		return nil, ErrNoFacility
	}
	return own, nil
}
