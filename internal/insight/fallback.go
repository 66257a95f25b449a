package insight

import (
	"fmt"
	"strings"

	"github.com/climashield/climashield/internal/risk"
)

// FallbackText renders a deterministic templated summary used whenever the
// external generator is unavailable. It must never fail.
func FallbackText(req Request) string {
	span := req.Bounds.Max - req.Bounds.Min
	mid := req.Bounds.Min + span/2

	var b strings.Builder
	fmt.Fprintf(&b, "%s scores %.1f/%.0f overall climate risk. ", req.Area, req.Score.ClimateRisk, req.Bounds.Max)

	name, value := weakestSubScore(req.Score)
	fmt.Fprintf(&b, "The weakest factor is %s at %.1f/%.0f", name, value, req.Bounds.Max)

	switch name {
	case "air quality":
		if req.History.AQITrend == risk.TrendWorsening {
			fmt.Fprintf(&b, ", with AQI trending upward from an average of %.1f", req.History.AvgAQI)
		} else {
			fmt.Fprintf(&b, " on an average AQI of %.1f", req.History.AvgAQI)
		}
		b.WriteString("; prioritize emission controls and green cover. ")
	case "construction stability":
		fmt.Fprintf(&b, " on %s at %.0fm elevation (waterlogging risk %.1f/10)", req.Soil.SoilType, req.Soil.ElevationM, req.Soil.WaterloggingRisk)
		b.WriteString("; require soil-appropriate foundations and drainage around new construction. ")
	default:
		fmt.Fprintf(&b, " given %s rainfall averaging %.1fmm on %s", req.History.RainfallTrend, req.History.AvgRainfallMM, req.Soil.SoilType)
		b.WriteString("; invest in stormwater drainage and rainwater harvesting. ")
	}

	if req.Score.ClimateRisk > mid {
		b.WriteString("Overall risk is elevated; new development here needs mitigation planning up front.")
	} else {
		b.WriteString("Overall risk is moderate; standard planning safeguards should suffice.")
	}

	return b.String()
}

func weakestSubScore(s risk.Score) (string, float64) {
	name, value := "air quality", s.AirQuality
	if s.ConstructionStability < value {
		name, value = "construction stability", s.ConstructionStability
	}
	if s.WaterManagement < value {
		name, value = "water management", s.WaterManagement
	}
	return name, value
}
