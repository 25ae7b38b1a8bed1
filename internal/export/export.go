// Package export writes today's records to CSV or JSON files.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sadopc/waterflow/internal/hydration"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat accepts "csv" or "json" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (want csv or json)", s)
}

// DefaultPath returns dir/waterflow-export-<day>.<format>.
func DefaultPath(dir string, day time.Time, f Format) string {
	return filepath.Join(dir, fmt.Sprintf("waterflow-export-%s.%s", day.Format(time.DateOnly), f))
}

// Write exports snap to path in format f.
func Write(snap hydration.Snapshot, f Format, path string) error {
	switch f {
	case FormatCSV:
		return ToCSV(snap, path)
	case FormatJSON:
		return ToJSON(snap, path)
	}
	return fmt.Errorf("unknown export format %q", f)
}
