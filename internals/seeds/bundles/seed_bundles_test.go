package bundles

import (
	"os"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkp_monitor_backend/internals/features/penilaian/scoring"
)

func TestBundleDataFileIsScorable(t *testing.T) {
	raw, err := os.ReadFile("data_bundle_2024.json")
	require.NoError(t, err)

	var inputs []BundleSeed
	require.NoError(t, sonic.Unmarshal(raw, &inputs))
	require.NotEmpty(t, inputs)

	for _, b := range inputs {
		require.NotEmpty(t, b.Clusters, b.Judul)
		for _, c := range b.Clusters {
			for _, in := range c.Indicators {
				_, err := in.model()
				assert.NoError(t, err, in.NamaIndikator)
			}
		}
	}
}

func TestIndicatorSeedDefaultsAndRejects(t *testing.T) {
	pct, sasaran := 80.0, 1200
	m, err := IndicatorSeed{
		NamaIndikator:    "  K4  ",
		Type:             scoring.TypeTargetAchievement,
		TargetPercentage: &pct,
		TotalSasaran:     &sasaran,
	}.model()
	require.NoError(t, err)
	assert.Equal(t, "K4", m.NamaIndikator)
	assert.Equal(t, scoring.PeriodicityAnnual, m.Periodicity)

	_, err = IndicatorSeed{NamaIndikator: "kosong", Type: scoring.TypeScoring}.model()
	assert.ErrorIs(t, err, scoring.ErrEmptyCriteria)
}
