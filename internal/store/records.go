package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sadopc/waterflow/internal/hydration"
)

const (
	KeyGoal    = "waterflow_goal"
	KeyRecords = "waterflow_records"
)

// recordJSON is the persisted shape of a record. Timestamps are epoch
// milliseconds.
type recordJSON struct {
	ID        string `json:"id"`
	Amount    int    `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

var _ hydration.Persister = (*Store)(nil)

// LoadGoal reads the stored goal. ok is false when no goal was ever saved.
func (s *Store) LoadGoal() (int, bool, error) {
	v, err := s.GetSetting(KeyGoal)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	goal, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, fmt.Errorf("parse goal %q: %w", v, err)
	}
	return goal, true, nil
}

// SaveGoal stores goal as decimal text.
func (s *Store) SaveGoal(goal int) error {
	return s.SetSetting(KeyGoal, strconv.Itoa(goal))
}

// LoadRecords returns every stored record, whatever its day.
func (s *Store) LoadRecords() ([]hydration.Record, error) {
	v, err := s.GetSetting(KeyRecords)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeRecords([]byte(v))
}

// SaveRecords replaces the stored record list.
func (s *Store) SaveRecords(records []hydration.Record) error {
	data, err := encodeRecords(records)
	if err != nil {
		return err
	}
	return s.SetSetting(KeyRecords, string(data))
}

func encodeRecords(records []hydration.Record) ([]byte, error) {
	out := make([]recordJSON, 0, len(records))
	for _, r := range records {
		out = append(out, recordJSON{
			ID:        r.ID,
			Amount:    r.Amount,
			Timestamp: r.Timestamp.UnixMilli(),
		})
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal records: %w", err)
	}
	return data, nil
}

func decodeRecords(data []byte) ([]hydration.Record, error) {
	var in []recordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("unmarshal records: %w", err)
	}
	var records []hydration.Record
	for _, r := range in {
		records = append(records, hydration.Record{
			ID:        r.ID,
			Amount:    r.Amount,
			Timestamp: time.UnixMilli(r.Timestamp),
		})
	}
	return records, nil
}
