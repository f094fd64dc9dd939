package esg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupBenchmark_KnownSectors(t *testing.T) {
	tests := []struct {
		sector        string
		environmental float64
		social        float64
		governance    float64
	}{
		{"Technology", 70, 75, 80},
		{"Energy", 45, 60, 65},
		{"Healthcare", 65, 85, 75},
		{"Financials", 60, 70, 85},
	}

	for _, tt := range tests {
		t.Run(tt.sector, func(t *testing.T) {
			bench, used := LookupBenchmark(tt.sector)
			assert.Equal(t, tt.sector, used)
			assert.Equal(t, tt.environmental, bench.EnvironmentalBaseline)
			assert.Equal(t, tt.social, bench.SocialBaseline)
			assert.Equal(t, tt.governance, bench.GovernanceBaseline)
		})
	}
}

func TestLookupBenchmark_UnknownSectorFallsBack(t *testing.T) {
	bench, used := LookupBenchmark("Unknown-Sector-XYZ")

	assert.Equal(t, DefaultSector, used)
	assert.Equal(t, 60.0, bench.EnvironmentalBaseline)
	assert.Equal(t, 65.0, bench.SocialBaseline)
	assert.Equal(t, 70.0, bench.GovernanceBaseline)
	assert.Equal(t, 1.0, bench.CarbonIntensityFactor)
	assert.Equal(t, 0.0, bench.SectorBonus)
}

func TestLookupBenchmark_EmptySectorFallsBack(t *testing.T) {
	_, used := LookupBenchmark("")
	assert.Equal(t, DefaultSector, used)
}
