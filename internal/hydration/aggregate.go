package hydration

import (
	"slices"
	"strconv"
	"strings"
	"time"
)

// Total sums the amounts of all records.
func Total(records []Record) int {
	total := 0
	for _, r := range records {
		total += r.Amount
	}
	return total
}

// CumulativeSeries turns records into a running total over the day of now.
// The series starts at midnight with zero, has one point per record and ends
// at now when now is later than the last record. Records sharing a timestamp
// keep their insertion order and each get their own point. An empty record set
// yields an empty series.
func CumulativeSeries(records []Record, now time.Time) []Point {
	if len(records) == 0 {
		return nil
	}

	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b Record) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	series := make([]Point, 0, len(sorted)+2)
	series = append(series, Point{Time: StartOfDay(now), Amount: 0})

	running := 0
	for _, r := range sorted {
		running += r.Amount
		series = append(series, Point{Time: r.Timestamp, Amount: running})
	}

	if now.After(sorted[len(sorted)-1].Timestamp) {
		series = append(series, Point{Time: now, Amount: running})
	}
	return series
}

// ProgressPercent returns total as a percentage of goal, rounded half up and
// clamped to [0, 100].
func ProgressPercent(total, goal int) (int, error) {
	if goal <= 0 {
		return 0, ErrInvalidGoal
	}
	switch {
	case total >= goal:
		return 100, nil
	case total <= 0:
		return 0, nil
	}
	return roundPercent(total, goal), nil
}

// Percent is ProgressPercent without the clamp. It reports 0 for a
// non-positive goal.
func Percent(total, goal int) int {
	if goal <= 0 {
		return 0
	}
	return roundPercent(total, goal)
}

// roundPercent computes round(total/goal*100) half up in integer arithmetic.
// The whole multiples of goal are split off first so only the remainder,
// which is below goal, is scaled.
func roundPercent(total, goal int) int {
	q, r := total/goal, total%goal
	if r < 0 {
		q, r = q-1, r+goal
	}
	return q*100 + (200*r+goal)/(2*goal)
}

// ParseAmount parses a free-form intake entry.
func ParseAmount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !ValidAmount(n) {
		return 0, ErrInvalidAmount
	}
	return n, nil
}

// ParseGoal parses a goal entry.
func ParseGoal(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !ValidGoal(n) {
		return 0, ErrInvalidGoal
	}
	return n, nil
}

// ValidAmount reports whether ml is an acceptable single intake.
func ValidAmount(ml int) bool { return ml > 0 && ml <= MaxAmount }

// ValidGoal reports whether ml is an acceptable daily goal.
func ValidGoal(ml int) bool { return ml > 0 && ml <= MaxGoal }
