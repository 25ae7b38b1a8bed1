package hydration

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// memPersister is an in-memory Persister with switchable failures.
type memPersister struct {
	goal     int
	hasGoal  bool
	records  []Record
	saves    int
	failLoad bool
	failSave bool
}

var errDisk = errors.New("disk on fire")

func (m *memPersister) LoadGoal() (int, bool, error) {
	if m.failLoad {
		return 0, false, errDisk
	}
	return m.goal, m.hasGoal, nil
}

func (m *memPersister) LoadRecords() ([]Record, error) {
	if m.failLoad {
		return nil, errDisk
	}
	return slices.Clone(m.records), nil
}

func (m *memPersister) SaveGoal(goal int) error {
	if m.failSave {
		return errDisk
	}
	m.goal, m.hasGoal = goal, true
	return nil
}

func (m *memPersister) SaveRecords(records []Record) error {
	m.saves++
	if m.failSave {
		return errDisk
	}
	m.records = slices.Clone(records)
	return nil
}

// fakeClock returns a settable clock.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("rec-%d", n)
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 10, 19, hour, minute, 0, 0, time.Local)
}

func newTestTracker(p *memPersister, clock *fakeClock) *Tracker {
	return NewTracker(p, WithClock(clock.Now), WithIDGenerator(seqIDs()))
}
