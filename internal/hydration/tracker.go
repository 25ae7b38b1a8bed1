package hydration

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/waterflow/internal/log"
)

// Persister is the durable key/value backing for the daily state.
type Persister interface {
	// LoadGoal returns the stored goal and whether one was stored.
	LoadGoal() (int, bool, error)
	LoadRecords() ([]Record, error)
	SaveGoal(goal int) error
	SaveRecords(records []Record) error
}

// Tracker owns the daily state: the goal and today's records. Every mutation
// updates memory first and then writes through to the Persister. Persistence
// failures are logged; the in-memory state stays authoritative.
//
// A Tracker is not safe for concurrent use. It is driven by a single control
// loop (the TUI update loop or one CLI command).
type Tracker struct {
	persist     Persister
	logger      *log.Logger
	now         func() time.Time
	newID       func() string
	defaultGoal int

	day     time.Time
	goal    int
	records []Record

	subscribers []func(Snapshot)
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(t *Tracker) { t.newID = gen }
}

// WithDefaultGoal sets the goal used when none is persisted.
func WithDefaultGoal(goal int) Option {
	return func(t *Tracker) {
		if ValidGoal(goal) {
			t.defaultGoal = goal
		}
	}
}

// WithLogger sets the logger; records carry the "tracker" component.
func WithLogger(l *log.Logger) Option {
	return func(t *Tracker) { t.logger = l.WithComponent("tracker") }
}

// NewTracker builds a tracker and loads today's state from p.
func NewTracker(p Persister, opts ...Option) *Tracker {
	t := &Tracker{
		persist:     p,
		logger:      log.Discard(),
		now:         time.Now,
		newID:       uuid.NewString,
		defaultGoal: DefaultGoal,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.LoadForDate(t.now())
	return t
}

// LoadForDate replaces the in-memory state with the persisted goal and the
// persisted records that fall on date. Dropped records are not written back
// here; they disappear with the next write-through.
func (t *Tracker) LoadForDate(date time.Time) {
	t.day = StartOfDay(date)
	t.goal = t.defaultGoal
	t.records = nil

	goal, ok, err := t.persist.LoadGoal()
	switch {
	case err != nil:
		t.logger.Warn("load goal failed, using default", "error", err, "goal", t.defaultGoal)
	case ok && ValidGoal(goal):
		t.goal = goal
	case ok:
		t.logger.Warn("ignoring out of range stored goal", "goal", goal)
	}

	records, err := t.persist.LoadRecords()
	if err != nil {
		t.logger.Warn("load records failed, starting empty", "error", err)
		return
	}
	t.records = FilterDay(records, t.day)
	t.logger.Debug("state loaded",
		"day", t.day.Format(time.DateOnly),
		"stored", len(records),
		"kept", len(t.records),
	)
}

// Add logs an intake of amount millilitres now.
func (t *Tracker) Add(amount int) (Record, error) {
	if !ValidAmount(amount) {
		return Record{}, ErrInvalidAmount
	}
	t.rollover()

	r := Record{
		ID:        t.newID(),
		Amount:    amount,
		Timestamp: t.now(),
	}
	t.records = append(t.records, r)
	t.saveRecords()
	t.notify()
	return r, nil
}

// Delete removes the record with the given id. Unknown ids are ignored.
func (t *Tracker) Delete(id string) {
	t.rollover()
	t.records = slices.DeleteFunc(t.records, func(r Record) bool {
		return r.ID == id
	})
	t.saveRecords()
	t.notify()
}

// SetGoal changes the daily goal. Non-positive values are rejected and the
// current goal is kept.
func (t *Tracker) SetGoal(goal int) error {
	if !ValidGoal(goal) {
		return ErrInvalidGoal
	}
	t.goal = goal
	if err := t.persist.SaveGoal(goal); err != nil {
		t.logger.Error("persist goal failed", "error", err)
	}
	t.notify()
	return nil
}

// Refresh drops yesterday's records when the calendar day has changed since
// the state was loaded, and notifies subscribers either way so time-based
// views (the chart's "now" point) move forward. It reports whether a
// rollover happened.
func (t *Tracker) Refresh() bool {
	rolled := t.rollover()
	t.notify()
	return rolled
}

func (t *Tracker) rollover() bool {
	now := t.now()
	if SameDay(t.day, now) {
		return false
	}
	before := len(t.records)
	t.day = StartOfDay(now)
	t.records = FilterDay(t.records, t.day)
	t.logger.Info("day changed, pruning records",
		"day", t.day.Format(time.DateOnly),
		"dropped", before-len(t.records),
	)
	t.saveRecords()
	return true
}

func (t *Tracker) saveRecords() {
	if err := t.persist.SaveRecords(t.records); err != nil {
		t.logger.Error("persist records failed", "error", err, "count", len(t.records))
	}
}

// Goal returns the current daily goal.
func (t *Tracker) Goal() int { return t.goal }

// Records returns a copy of today's records in insertion order.
func (t *Tracker) Records() []Record { return slices.Clone(t.records) }

// Total returns the sum of today's records.
func (t *Tracker) Total() int { return Total(t.records) }

// Progress returns today's clamped progress towards the goal.
func (t *Tracker) Progress() int {
	p, err := ProgressPercent(t.Total(), t.goal)
	if err != nil {
		return 0
	}
	return p
}

// Day returns midnight of the day the state belongs to.
func (t *Tracker) Day() time.Time { return t.day }

// Snapshot returns derived read-only values for the current state.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		Day:      t.day,
		Goal:     t.goal,
		Total:    t.Total(),
		Progress: t.Progress(),
		Records:  t.Records(),
		Series:   CumulativeSeries(t.records, t.now()),
	}
}

// Subscribe registers fn to receive a snapshot after every change. fn is
// called synchronously with the current snapshot on registration.
func (t *Tracker) Subscribe(fn func(Snapshot)) {
	t.subscribers = append(t.subscribers, fn)
	fn(t.Snapshot())
}

func (t *Tracker) notify() {
	if len(t.subscribers) == 0 {
		return
	}
	snap := t.Snapshot()
	for _, fn := range t.subscribers {
		fn(snap)
	}
}
