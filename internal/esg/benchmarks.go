package esg

// Benchmark holds per-sector baseline scores and adjustment factors.
// Baselines are on the 0-100 score scale. SectorBonus is the
// sector-specific bonus (innovation, transition, access or governance bonus
// depending on the sector) applied by the calculator's industry rules.
type Benchmark struct {
	EnvironmentalBaseline float64 `json:"environmental_baseline"`
	SocialBaseline        float64 `json:"social_baseline"`
	GovernanceBaseline    float64 `json:"governance_baseline"`
	CarbonIntensityFactor float64 `json:"carbon_intensity_factor"`
	SectorBonus           float64 `json:"sector_bonus"`
}

// DefaultSector is the fallback key for sectors missing from the table.
const DefaultSector = "Default"

// benchmarks is the static per-sector table. It is initialized once and
// never mutated at runtime.
var benchmarks = map[string]Benchmark{
	"Technology": {
		EnvironmentalBaseline: 70,
		SocialBaseline:        75,
		GovernanceBaseline:    80,
		CarbonIntensityFactor: 0.8,
		SectorBonus:           10, // innovation bonus
	},
	"Energy": {
		EnvironmentalBaseline: 45,
		SocialBaseline:        60,
		GovernanceBaseline:    65,
		CarbonIntensityFactor: 1.5,
		SectorBonus:           15, // transition bonus
	},
	"Healthcare": {
		EnvironmentalBaseline: 65,
		SocialBaseline:        85,
		GovernanceBaseline:    75,
		CarbonIntensityFactor: 0.9,
		SectorBonus:           12, // access bonus
	},
	"Financials": {
		EnvironmentalBaseline: 60,
		SocialBaseline:        70,
		GovernanceBaseline:    85,
		CarbonIntensityFactor: 0.7,
		SectorBonus:           8, // governance bonus
	},
	DefaultSector: {
		EnvironmentalBaseline: 60,
		SocialBaseline:        65,
		GovernanceBaseline:    70,
		CarbonIntensityFactor: 1.0,
		SectorBonus:           0,
	},
}

// LookupBenchmark returns the benchmark for a sector together with the key
// actually used. Unknown or empty sectors fall back to the Default entry;
// the lookup always succeeds.
func LookupBenchmark(sector string) (Benchmark, string) {
	if b, ok := benchmarks[sector]; ok {
		return b, sector
	}
	return benchmarks[DefaultSector], DefaultSector
}
