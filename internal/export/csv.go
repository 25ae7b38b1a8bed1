package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/waterflow/internal/hydration"
)

// ToCSV writes the snapshot's records in time order with a running total.
func ToCSV(snap hydration.Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write([]string{"ID", "Time", "Amount (ml)", "Cumulative (ml)"}); err != nil {
		return err
	}

	for _, r := range rows(snap.Records) {
		row := []string{
			r.record.ID,
			r.record.Timestamp.Local().Format(time.RFC3339),
			strconv.Itoa(r.record.Amount),
			strconv.Itoa(r.cumulative),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

type row struct {
	record     hydration.Record
	cumulative int
}

// rows pairs records with the running total, reusing the chart series so
// both exports agree with what the chart shows.
func rows(records []hydration.Record) []row {
	if len(records) == 0 {
		return nil
	}
	last := records[0].Timestamp
	for _, r := range records {
		if r.Timestamp.After(last) {
			last = r.Timestamp
		}
	}
	series := hydration.CumulativeSeries(records, last)

	sorted := make([]row, 0, len(records))
	byTime := sortedRecords(records)
	for i, r := range byTime {
		sorted = append(sorted, row{record: r, cumulative: series[i+1].Amount})
	}
	return sorted
}
