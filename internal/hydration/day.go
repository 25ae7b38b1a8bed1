package hydration

import "time"

// StartOfDay returns local midnight of t's calendar date.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date in b's
// location.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FilterDay keeps the records whose timestamp falls on day's calendar date.
func FilterDay(records []Record, day time.Time) []Record {
	var kept []Record
	for _, r := range records {
		if SameDay(r.Timestamp, day) {
			kept = append(kept, r)
		}
	}
	return kept
}
