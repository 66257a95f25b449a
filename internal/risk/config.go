package risk

// Weights controls the contribution of each sub-score to the overall score.
// They do not need to sum to one; they are normalized before use.
type Weights struct {
	AirQuality            float64
	ConstructionStability float64
	WaterManagement       float64
}

// Bounds is the clamp range every reported score is normalized into.
type Bounds struct {
	Min float64
	Max float64
}

// Config is the scoring configuration surface: sub-score weights, output
// bounds, and the reference values the formulas are anchored on.
type Config struct {
	Weights Weights
	Bounds  Bounds

	// OptimalRainfallMM is the annual rainfall considered ideal; the rainfall
	// sub-score decays with deviation from it.
	OptimalRainfallMM float64

	// TrendInfluence scales how strongly the fitted slope of a metric shifts
	// its sub-score, in internal scale points per normalized trend unit.
	TrendInfluence float64
}

// DefaultConfig returns the scoring configuration used when none is provided:
// equal weights, a 0-100 output scale, and the reference rainfall of the
// source dataset.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			AirQuality:            1,
			ConstructionStability: 1,
			WaterManagement:       1,
		},
		Bounds:            Bounds{Min: 0, Max: 100},
		OptimalRainfallMM: 1200,
		TrendInfluence:    0.5,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
