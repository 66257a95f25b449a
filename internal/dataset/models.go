package dataset

// HistoricalRecord is one observed year of air quality and rainfall for an area.
type HistoricalRecord struct {
	Area       string  `json:"area"`
	Year       int     `json:"year"`
	AQI        float64 `json:"aqi"`
	RainfallMM float64 `json:"rainfallMm"`
}

// SoilProfile describes the terrain attributes of an area. One per area.
type SoilProfile struct {
	Area       string  `json:"area"`
	SoilType   string  `json:"soilType"`
	ElevationM float64 `json:"elevationM"`
}
