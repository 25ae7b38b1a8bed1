package export

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/sadopc/waterflow/internal/hydration"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Day        string      `json:"day"`
	Goal       int         `json:"goal_ml"`
	Total      int         `json:"total_ml"`
	Progress   int         `json:"progress_percent"`
	Count      int         `json:"count"`
	Records    []jsonEntry `json:"records"`
}

type jsonEntry struct {
	ID         string `json:"id"`
	Time       string `json:"time"`
	Timestamp  int64  `json:"timestamp"`
	Amount     int    `json:"amount_ml"`
	Cumulative int    `json:"cumulative_ml"`
}

// ToJSON writes a summary of snap and its records, oldest first, to path.
func ToJSON(snap hydration.Snapshot, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Day:        snap.Day.Format(time.DateOnly),
		Goal:       snap.Goal,
		Total:      snap.Total,
		Progress:   snap.Progress,
		Count:      len(snap.Records),
		Records:    []jsonEntry{},
	}

	for _, r := range rows(snap.Records) {
		export.Records = append(export.Records, jsonEntry{
			ID:         r.record.ID,
			Time:       r.record.Timestamp.Local().Format(time.RFC3339),
			Timestamp:  r.record.Timestamp.UnixMilli(),
			Amount:     r.record.Amount,
			Cumulative: r.cumulative,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

func sortedRecords(records []hydration.Record) []hydration.Record {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b hydration.Record) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return out
}
