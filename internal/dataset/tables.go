package dataset

import (
	"errors"
	"sort"
)

var (
	// ErrNotFound is returned when no data is available for a given area.
	ErrNotFound = errors.New("no data for area")
)

// Tables holds the parsed source data for one pipeline run, keyed by area.
// Tables are built once by Load and never mutated afterwards, so they are
// safe to share across requests without locking.
type Tables struct {
	// key: area name, value: records ordered by year ascending
	history map[string][]HistoricalRecord
	soil    map[string]SoilProfile
	areas   []string
}

func newTables(history map[string][]HistoricalRecord, soil map[string]SoilProfile) *Tables {
	for _, records := range history {
		sort.Slice(records, func(i, j int) bool { return records[i].Year < records[j].Year })
	}

	areas := make([]string, 0, len(history))
	for area := range history {
		areas = append(areas, area)
	}
	sort.Strings(areas)

	return &Tables{
		history: history,
		soil:    soil,
		areas:   areas,
	}
}

// Areas returns all area names with historical data, sorted.
func (t *Tables) Areas() []string {
	out := make([]string, len(t.areas))
	copy(out, t.areas)
	return out
}

// History returns the historical records for an area, ordered by year.
func (t *Tables) History(area string) ([]HistoricalRecord, error) {
	records, ok := t.history[area]
	if !ok || len(records) == 0 {
		return nil, ErrNotFound
	}
	out := make([]HistoricalRecord, len(records))
	copy(out, records)
	return out, nil
}

// Latest returns the most recent historical record for an area.
func (t *Tables) Latest(area string) (HistoricalRecord, error) {
	records, ok := t.history[area]
	if !ok || len(records) == 0 {
		return HistoricalRecord{}, ErrNotFound
	}
	return records[len(records)-1], nil
}

// Soil returns the soil profile for an area.
func (t *Tables) Soil(area string) (SoilProfile, error) {
	profile, ok := t.soil[area]
	if !ok {
		return SoilProfile{}, ErrNotFound
	}
	return profile, nil
}
