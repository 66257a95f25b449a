package predict

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// WriteCSV writes predictions to a flat file for inspection. The file mirrors
// the source table layout: one row per area and year.
func WriteCSV(path string, predictions []Prediction) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Area", "Year", "Predicted AQI", "Predicted Rainfall (mm)"}); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}

	for _, p := range predictions {
		row := []string{
			p.Area,
			strconv.Itoa(p.Year),
			strconv.FormatFloat(p.AQI, 'f', 1, 64),
			strconv.FormatFloat(p.RainfallMM, 'f', 1, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}
	return nil
}
