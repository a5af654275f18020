package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkp_monitor_backend/internals/constants"
)

func TestResolveViewsPerRole(t *testing.T) {
	pid := uuid.New()
	tests := []struct {
		role    string
		home    string
		allowed []View
		denied  []View
	}{
		{
			role:    constants.RoleAdminDinkes,
			home:    "/admin",
			allowed: []View{ViewDashboard, ViewBundleBuilder, ViewVerifikasi, ViewLaporan},
			denied:  []View{ViewPenilaian, ViewRekap},
		},
		{
			role:    constants.RoleVerifikator,
			home:    "/verifikator",
			allowed: []View{ViewDashboard, ViewPenilaian, ViewVerifikasi, ViewRekap},
			denied:  []View{ViewBundleBuilder, ViewLaporan},
		},
		{
			role:    constants.RolePetugasPuskesmas,
			home:    "/puskesmas",
			allowed: []View{ViewDashboard, ViewPenilaian, ViewRekap},
			denied:  []View{ViewBundleBuilder, ViewVerifikasi, ViewLaporan},
		},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			w, err := Resolve(tt.role, &pid)
			require.NoError(t, err)
			assert.Equal(t, tt.role, w.Role())
			assert.Equal(t, tt.home, w.HomePath())
			for _, v := range tt.allowed {
				assert.True(t, w.Allows(v), "%s should allow %s", tt.role, v)
			}
			for _, v := range tt.denied {
				assert.False(t, w.Allows(v), "%s should deny %s", tt.role, v)
			}
		})
	}
}

func TestResolveUnknownRole(t *testing.T) {
	_, err := Resolve("superuser", nil)
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestCanChooseFacility(t *testing.T) {
	assert.True(t, CanChooseFacility(AdminWorkspace{}))
	assert.True(t, CanChooseFacility(VerifierWorkspace{}))
	assert.False(t, CanChooseFacility(FacilityWorkspace{}))
}

func TestAdminHasNoFacility(t *testing.T) {
	pid := uuid.New()
	w, err := Resolve(constants.RoleAdminDinkes, &pid)
	require.NoError(t, err)
	assert.Nil(t, w.PuskesmasID())
}

func TestScopeFacility(t *testing.T) {
	own, other := uuid.New(), uuid.New()

	got, err := ScopeFacility(FacilityWorkspace{Puskesmas: &own}, &other)
	require.NoError(t, err)
	assert.Equal(t, own, *got, "petugas dikunci ke puskesmasnya sendiri")

	_, err = ScopeFacility(FacilityWorkspace{}, nil)
	assert.ErrorIs(t, err, ErrNoFacility)

	got, err = ScopeFacility(VerifierWorkspace{Puskesmas: &own}, &other)
	require.NoError(t, err)
	assert.Equal(t, other, *got)

	got, err = ScopeFacility(AdminWorkspace{}, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}
