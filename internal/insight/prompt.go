package insight

import (
	"fmt"
	"strings"
)

// systemPrompt frames every generation request.
const systemPrompt = "You are a climate risk analyst providing brief, actionable insights for urban planning."

// BuildPrompt renders the deterministic analysis prompt for an area.
// Identical requests always produce identical prompts.
func BuildPrompt(req Request) string {
	max := req.Bounds.Max

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the climate risk data for %s and provide a brief, actionable insight (2-3 sentences max):\n\n", req.Area)
	fmt.Fprintf(&b, "Climate Risk Score: %.1f/%.0f\n", req.Score.ClimateRisk, max)
	fmt.Fprintf(&b, "Air Quality Score: %.1f/%.0f\n", req.Score.AirQuality, max)
	fmt.Fprintf(&b, "Construction Stability: %.1f/%.0f\n", req.Score.ConstructionStability, max)
	fmt.Fprintf(&b, "Water Management: %.1f/%.0f\n\n", req.Score.WaterManagement, max)
	fmt.Fprintf(&b, "Soil Type: %s\n", req.Soil.SoilType)
	fmt.Fprintf(&b, "Elevation: %.0fm\n", req.Soil.ElevationM)
	fmt.Fprintf(&b, "Waterlogging Risk: %.1f/10\n", req.Soil.WaterloggingRisk)
	fmt.Fprintf(&b, "Average AQI: %.1f (%s trend)\n", req.History.AvgAQI, req.History.AQITrend)
	fmt.Fprintf(&b, "Average Rainfall: %.1fmm (%s trend)\n\n", req.History.AvgRainfallMM, req.History.RainfallTrend)
	b.WriteString("Focus on the biggest risks and actionable recommendations.")

	return b.String()
}
