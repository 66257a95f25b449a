package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

// LoadError reports a missing or malformed source file. The pipeline must not
// run on partially loaded data, so any load problem aborts the whole load.
type LoadError struct {
	File   string
	Line   int // 0 when the error is not tied to a row
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s: line %d: %s", e.File, e.Line, e.Reason)
	}
	return fmt.Sprintf("load %s: %s", e.File, e.Reason)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads the historical AQI/rainfall table and the soil/elevation table
// and returns them as immutable in-memory tables keyed by area.
func Load(historyPath, soilPath string) (*Tables, error) {
	history, err := loadHistory(historyPath)
	if err != nil {
		return nil, err
	}

	soil, err := loadSoil(soilPath)
	if err != nil {
		return nil, err
	}

	// Soil rows for areas without any history cannot be scored; drop them
	// rather than violate the history invariant.
	for area := range soil {
		if len(history[area]) == 0 {
			log.Printf("WARN: soil profile for %q has no historical records; skipping", area)
			delete(soil, area)
		}
	}

	return newTables(history, soil), nil
}

func loadHistory(path string) (map[string][]HistoricalRecord, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	areaIdx, err := columnIndex(path, header, "Area")
	if err != nil {
		return nil, err
	}
	yearIdx, err := columnIndex(path, header, "Year")
	if err != nil {
		return nil, err
	}
	aqiIdx, err := columnIndex(path, header, "AQI")
	if err != nil {
		return nil, err
	}
	rainIdx, err := columnIndex(path, header, "Rainfall (mm)", "Rainfall")
	if err != nil {
		return nil, err
	}

	history := make(map[string][]HistoricalRecord)
	for i, row := range rows {
		line := i + 2 // header is line 1

		area := strings.TrimSpace(row[areaIdx])
		if area == "" {
			return nil, &LoadError{File: path, Line: line, Reason: "empty area"}
		}

		year, err := strconv.Atoi(strings.TrimSpace(row[yearIdx]))
		if err != nil {
			return nil, &LoadError{File: path, Line: line, Reason: "invalid year: " + row[yearIdx], Err: err}
		}

		aqi, err := parseMeasure(row[aqiIdx])
		if err != nil {
			return nil, &LoadError{File: path, Line: line, Reason: "invalid AQI: " + row[aqiIdx], Err: err}
		}

		rainfall, err := parseMeasure(row[rainIdx])
		if err != nil {
			return nil, &LoadError{File: path, Line: line, Reason: "invalid rainfall: " + row[rainIdx], Err: err}
		}

		history[area] = append(history[area], HistoricalRecord{
			Area:       area,
			Year:       year,
			AQI:        aqi,
			RainfallMM: rainfall,
		})
	}

	if len(history) == 0 {
		return nil, &LoadError{File: path, Reason: "no data rows"}
	}

	return history, nil
}

func loadSoil(path string) (map[string]SoilProfile, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	areaIdx, err := columnIndex(path, header, "Area")
	if err != nil {
		return nil, err
	}
	soilIdx, err := columnIndex(path, header, "Soil Type")
	if err != nil {
		return nil, err
	}
	elevIdx, err := columnIndex(path, header, "Elevation (m)", "Elevation")
	if err != nil {
		return nil, err
	}

	soil := make(map[string]SoilProfile)
	for i, row := range rows {
		line := i + 2

		area := strings.TrimSpace(row[areaIdx])
		if area == "" {
			return nil, &LoadError{File: path, Line: line, Reason: "empty area"}
		}

		elevation, err := parseMeasure(row[elevIdx])
		if err != nil {
			return nil, &LoadError{File: path, Line: line, Reason: "invalid elevation: " + row[elevIdx], Err: err}
		}

		// First row wins when an area appears twice, matching the source data.
		if _, exists := soil[area]; exists {
			log.Printf("WARN: duplicate soil profile for %q; keeping first", area)
			continue
		}

		soil[area] = SoilProfile{
			Area:       area,
			SoilType:   strings.TrimSpace(row[soilIdx]),
			ElevationM: elevation,
		}
	}

	return soil, nil
}

// readCSV loads a whole CSV file, returning the header row and data rows.
func readCSV(path string) ([][]string, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &LoadError{File: path, Reason: "open file", Err: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, &LoadError{File: path, Reason: "empty file"}
	}
	if err != nil {
		return nil, nil, &LoadError{File: path, Reason: "read header", Err: err}
	}

	var rows [][]string
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, &LoadError{File: path, Line: line, Reason: "malformed row", Err: err}
		}
		if len(row) < len(header) {
			return nil, nil, &LoadError{File: path, Line: line, Reason: "too few columns"}
		}
		rows = append(rows, row)
	}

	return rows, header, nil
}

// columnIndex locates a required column by name, accepting any of the given
// header spellings (the source files carry unit suffixes in some exports).
func columnIndex(path string, header []string, names ...string) (int, error) {
	for _, name := range names {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i, nil
			}
		}
	}
	return 0, &LoadError{File: path, Reason: "missing required column " + names[0]}
}

// parseMeasure parses a numeric cell, stripping unit suffixes such as
// "950 mm" or "920 meters" that appear in the source exports.
func parseMeasure(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	for _, suffix := range []string{" mm", " meters", " m"} {
		s = strings.TrimSuffix(s, suffix)
	}
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
