package hydration

import (
	"errors"
	"time"
)

// DefaultGoal is the daily goal in millilitres used when nothing is persisted.
const DefaultGoal = 2500

// MaxAmount bounds a single intake record and MaxGoal the daily goal, both
// in millilitres.
const (
	MaxAmount = 10000
	MaxGoal   = 100000
)

// Presets are the quick-add amounts in millilitres.
var Presets = []int{100, 250, 500}

var (
	ErrInvalidAmount = errors.New("amount must be a whole number of millilitres between 1 and 10000")
	ErrInvalidGoal   = errors.New("goal must be a whole number of millilitres between 1 and 100000")
)

// Record is one logged intake event. Records are never edited; they are only
// removed.
type Record struct {
	ID        string
	Amount    int // ml
	Timestamp time.Time
}

// Point is one sample of the cumulative intake series.
type Point struct {
	Time   time.Time
	Amount int
}

// Snapshot is a read-only view of the daily state handed to presentation.
type Snapshot struct {
	Day      time.Time
	Goal     int
	Total    int
	Progress int
	Records  []Record
	Series   []Point
}

// Remaining returns how many millilitres are left to reach the goal.
func (s Snapshot) Remaining() int {
	if s.Total >= s.Goal {
		return 0
	}
	return s.Goal - s.Total
}

// GoalReached reports whether today's total meets the goal.
func (s Snapshot) GoalReached() bool {
	return s.Total >= s.Goal
}
