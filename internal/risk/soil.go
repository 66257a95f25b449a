package risk

import (
	"github.com/climashield/climashield/internal/common"
	"github.com/climashield/climashield/internal/dataset"
)

// soilAbsorption maps soil types to a 1-10 water absorption score.
// Lower absorption means worse drainage and higher waterlogging risk.
var soilAbsorption = map[string]float64{
	"Clayey Soil":       2, // poor drainage
	"Red Loamy Soil":    7,
	"Laterite Soil":     5,
	"Sandy Soil":        9, // excellent drainage
	"Black Cotton Soil": 1, // very poor drainage, expansion-contraction
	"Alluvial Soil":     6,
}

const unknownAbsorption = 5 // neutral when the soil type is not mapped

// SoilAnalysis holds the terrain-derived diagnostics for one area, all on an
// internal 1-10 scale.
type SoilAnalysis struct {
	SoilType           string  `json:"soilType"`
	ElevationM         float64 `json:"elevationM"`
	WaterAbsorption    float64 `json:"waterAbsorption"`
	WaterloggingRisk   float64 `json:"waterloggingRisk"`
	LakeBedProbability float64 `json:"lakeBedProbability"`
}

// UnknownSoil returns the neutral analysis used when an area has no soil
// profile on file.
func UnknownSoil() SoilAnalysis {
	return SoilAnalysis{
		SoilType:           "Unknown",
		WaterAbsorption:    unknownAbsorption,
		WaterloggingRisk:   5,
		LakeBedProbability: 5,
	}
}

// AnalyzeSoil derives drainage and stability diagnostics from an area's soil
// type and elevation. Lower elevation plus clay-heavy soil points to a former
// lake bed and poor drainage.
func AnalyzeSoil(p dataset.SoilProfile) SoilAnalysis {
	absorption, ok := soilAbsorption[p.SoilType]
	if !ok {
		absorption = unknownAbsorption
	}

	elevationFactor := (1000 - p.ElevationM) / 1000
	if elevationFactor < 0 {
		elevationFactor = 0
	}

	soilFactor := 0.3
	if common.HasAny(p.SoilType, "Clayey", "Clay") {
		soilFactor = 0.8
	}

	return SoilAnalysis{
		SoilType:           p.SoilType,
		ElevationM:         p.ElevationM,
		WaterAbsorption:    absorption,
		WaterloggingRisk:   clamp(11-absorption+elevationFactor*3, 1, 10),
		LakeBedProbability: clamp((elevationFactor+soilFactor)*10, 1, 10),
	}
}
