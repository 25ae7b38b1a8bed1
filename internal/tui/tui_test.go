package tui

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/waterflow/internal/advice"
	"github.com/sadopc/waterflow/internal/hydration"
	"github.com/sadopc/waterflow/internal/log"
	"github.com/sadopc/waterflow/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

type stubGenerator struct {
	reply string
	err   error
	calls int
}

func (g *stubGenerator) Generate(context.Context, advice.Request) (string, error) {
	g.calls++
	return g.reply, g.err
}

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

// newTestApp returns a sized App backed by an in-memory store.
func newTestApp(t *testing.T, gen advice.Generator, opts ...hydration.Option) (App, *store.Store) {
	t.Helper()
	s := newTestStore(t)
	tracker := hydration.NewTracker(s, opts...)
	gw := advice.NewGateway(gen)
	app := NewApp(tracker, gw, Info{DBPath: ":memory:", AdviceProvider: "none"}, log.Discard())
	app.exportDir = t.TempDir()
	return update(t, app, tea.WindowSizeMsg{Width: 120, Height: 40}), s
}

func update(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	a, _ = updateCmd(t, a, msg)
	return a
}

func updateCmd(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	app, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T, want App", m)
	}
	return app, cmd
}

// runCmd executes cmd and flattens batches into the produced messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func press(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	app, _ := newTestApp(t, advice.Disabled{})

	if app.activeView != viewToday {
		t.Fatal("default view should be today")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
	if app.snap.Goal != hydration.DefaultGoal {
		t.Fatalf("expected default goal %d, got %d", hydration.DefaultGoal, app.snap.Goal)
	}
}

func TestAppIsFormActiveDefault(t *testing.T) {
	app, _ := newTestApp(t, advice.Disabled{})

	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppInitSchedulesTick(t *testing.T) {
	app, _ := newTestApp(t, advice.Disabled{})
	if app.Init() == nil {
		t.Fatal("Init should schedule a refresh tick")
	}
}

func TestAppPresetKeys(t *testing.T) {
	app, s := newTestApp(t, advice.Disabled{})

	for _, k := range []string{"1", "2", "3"} {
		app = update(t, app, press(k))
	}

	if app.snap.Total != 850 {
		t.Fatalf("expected total 850, got %d", app.snap.Total)
	}
	if len(app.snap.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(app.snap.Records))
	}
	if !strings.Contains(app.status, "Added 500 ml") {
		t.Fatalf("unexpected status %q", app.status)
	}

	stored, err := s.LoadRecords()
	if err != nil {
		t.Fatalf("load records: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("expected 3 persisted records, got %d", len(stored))
	}
}

func TestAppAddIntakeMsg(t *testing.T) {
	app, _ := newTestApp(t, advice.Disabled{})

	app = update(t, app, addIntakeMsg{amount: 330})
	if app.snap.Total != 330 {
		t.Fatalf("expected total 330, got %d", app.snap.Total)
	}

	app = update(t, app, addIntakeMsg{amount: 0})
	app = update(t, app, addIntakeMsg{amount: hydration.MaxAmount + 1})
	if app.snap.Total != 330 {
		t.Fatalf("invalid amount should not change total, got %d", app.snap.Total)
	}
	if !app.statusErr {
		t.Fatal("invalid amount should set an error status")
	}
}

func TestAppDeleteFromHistory(t *testing.T) {
	app, s := newTestApp(t, advice.Disabled{})
	app = update(t, app, addIntakeMsg{amount: 250})
	app = update(t, app, addIntakeMsg{amount: 500})

	app.activeView = viewHistory
	app, cmd := updateCmd(t, app, press("d"))
	msgs := runCmd(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(msgs))
	}
	del, ok := msgs[0].(deleteRecordMsg)
	if !ok {
		t.Fatalf("expected deleteRecordMsg, got %T", msgs[0])
	}

	app = update(t, app, del)

	// Cursor starts on the newest record.
	if app.snap.Total != 250 {
		t.Fatalf("expected total 250 after delete, got %d", app.snap.Total)
	}
	stored, _ := s.LoadRecords()
	if len(stored) != 1 || stored[0].Amount != 250 {
		t.Fatalf("unexpected persisted records %+v", stored)
	}
}

func TestAppDeleteUnknownID(t *testing.T) {
	app, _ := newTestApp(t, advice.Disabled{})
	app = update(t, app, addIntakeMsg{amount: 250})

	app = update(t, app, deleteRecordMsg{id: "missing"})
	if app.snap.Total != 250 {
		t.Fatalf("unknown id should be a no-op, got total %d", app.snap.Total)
	}
}

func TestAppSetGoalMsg(t *testing.T) {
	app, s := newTestApp(t, advice.Disabled{})

	app = update(t, app, setGoalMsg{goal: 3000})
	if app.snap.Goal != 3000 {
		t.Fatalf("expected goal 3000, got %d", app.snap.Goal)
	}
	goal, ok, err := s.LoadGoal()
	if err != nil || !ok || goal != 3000 {
		t.Fatalf("expected persisted goal 3000, got %d %v %v", goal, ok, err)
	}

	app = update(t, app, setGoalMsg{goal: -5})
	if app.snap.Goal != 3000 {
		t.Fatalf("invalid goal should keep 3000, got %d", app.snap.Goal)
	}
	if !app.statusErr {
		t.Fatal("invalid goal should set an error status")
	}
}

func TestAppCustomAmountForm(t *testing.T) {
	app, _ := newTestApp(t, advice.Disabled{})
	app.activeView = viewHistory

	app = update(t, app, press("a"))
	if app.activeView != viewToday {
		t.Fatal("custom amount should switch to today")
	}
	if !app.isFormActive() {
		t.Fatal("amount form should be active")
	}

	// Preset keys go to the form while it is open.
	app = update(t, app, press("1"))
	if app.snap.Total != 0 {
		t.Fatalf("keys should not reach the tracker while the form is open, total %d", app.snap.Total)
	}

	app = update(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	if app.isFormActive() {
		t.Fatal("esc should cancel the form")
	}
}

func TestAppGoalForm(t *testing.T) {
	app, _ := newTestApp(t, advice.Disabled{})

	app = update(t, app, press("g"))
	if app.activeView != viewSettings {
		t.Fatal("goal key should switch to settings")
	}
	if !app.settings.formActive {
		t.Fatal("goal form should be active")
	}
	if *app.settings.formGoal != "2500" {
		t.Fatalf("form should be prefilled with the goal, got %q", *app.settings.formGoal)
	}
}

func TestAppTabCycles(t *testing.T) {
	app, _ := newTestApp(t, advice.Disabled{})

	want := []viewState{viewHistory, viewCoach, viewSettings, viewToday}
	for _, v := range want {
		app = update(t, app, tea.KeyMsg{Type: tea.KeyTab})
		if app.activeView != v {
			t.Fatalf("expected view %d, got %d", v, app.activeView)
		}
	}
}

func TestAppHelpToggle(t *testing.T) {
	app, _ := newTestApp(t, advice.Disabled{})

	app = update(t, app, press("?"))
	if !app.showHelp || !app.help.ShowAll {
		t.Fatal("help should be shown")
	}
	app = update(t, app, press("?"))
	if app.showHelp {
		t.Fatal("help should be hidden again")
	}
}

func TestAppQuit(t *testing.T) {
	app, _ := newTestApp(t, advice.Disabled{})

	_, cmd := updateCmd(t, app, press("q"))
	msgs := runCmd(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected quit message, got %v", msgs)
	}
	if _, ok := msgs[0].(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg, got %T", msgs[0])
	}
}

func TestAppTickRollsOverDay(t *testing.T) {
	clock := &testClock{t: time.Date(2026, 10, 19, 23, 50, 0, 0, time.Local)}
	app, _ := newTestApp(t, advice.Disabled{}, hydration.WithClock(clock.now))

	app = update(t, app, addIntakeMsg{amount: 500})
	if app.snap.Total != 500 {
		t.Fatalf("expected total 500, got %d", app.snap.Total)
	}

	clock.t = time.Date(2026, 10, 20, 0, 10, 0, 0, time.Local)
	app, cmd := updateCmd(t, app, tickMsg(clock.t))
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	if app.snap.Total != 0 {
		t.Fatalf("expected reset total after midnight, got %d", app.snap.Total)
	}
	if !strings.Contains(app.status, "New day") {
		t.Fatalf("unexpected status %q", app.status)
	}
}

// ============================================================
// Coach
// ============================================================

func TestCoachRequestResult(t *testing.T) {
	gen := &stubGenerator{reply: "  Have a glass now.  "}
	app, _ := newTestApp(t, gen)
	app = update(t, app, addIntakeMsg{amount: 250})

	app, cmd := updateCmd(t, app, press("c"))
	if app.activeView != viewCoach {
		t.Fatal("advice key should switch to the coach view")
	}
	if !app.coach.requesting() {
		t.Fatal("coach should be requesting")
	}

	var result *adviceMsg
	for _, msg := range runCmd(cmd) {
		if m, ok := msg.(adviceMsg); ok {
			result = &m
		}
	}
	if result == nil {
		t.Fatal("expected an adviceMsg")
	}

	app = update(t, app, *result)
	if app.coach.state != coachResult {
		t.Fatalf("expected result state, got %d", app.coach.state)
	}
	if app.coach.text != "  Have a glass now.  " {
		t.Fatalf("unexpected advice text %q", app.coach.text)
	}
	if gen.calls != 1 {
		t.Fatalf("expected one call, got %d", gen.calls)
	}
}

func TestCoachIgnoresSecondRequest(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	app, _ := newTestApp(t, gen)

	app, first := updateCmd(t, app, press("c"))
	if first == nil {
		t.Fatal("first request should return a command")
	}
	app, second := updateCmd(t, app, press("c"))
	if second != nil {
		t.Fatal("second request should be ignored while one is in flight")
	}
	if !app.coach.requesting() {
		t.Fatal("coach should still be requesting")
	}
}

func TestCoachFallbackOnError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("boom")}
	app, _ := newTestApp(t, gen)

	app, cmd := updateCmd(t, app, press("c"))
	for _, msg := range runCmd(cmd) {
		if m, ok := msg.(adviceMsg); ok {
			app = update(t, app, m)
		}
	}

	if app.coach.state != coachError {
		t.Fatalf("expected error state, got %d", app.coach.state)
	}
	if app.coach.text != advice.ErrorText {
		t.Fatalf("expected fallback text, got %q", app.coach.text)
	}

	// A new request is allowed after a failure.
	_, cmd = updateCmd(t, app, press("c"))
	if cmd == nil {
		t.Fatal("should be able to ask again after an error")
	}
}

func TestCoachSpinnerIgnoredWhenIdle(t *testing.T) {
	c := newCoachModel(advice.NewGateway(advice.Disabled{}), &hydration.Snapshot{Goal: 2500})
	_, cmd := c.update(c.spinner.Tick())
	if cmd != nil {
		t.Fatal("idle coach should not keep the spinner running")
	}
}

// ============================================================
// History
// ============================================================

func TestHistoryCursorBounds(t *testing.T) {
	snap := &hydration.Snapshot{Records: []hydration.Record{
		{ID: "a", Amount: 100},
		{ID: "b", Amount: 250},
	}}
	h := newHistoryModel(snap)

	h, _ = h.update(tea.KeyMsg{Type: tea.KeyUp})
	if h.cursor != 0 {
		t.Fatalf("cursor should stay at 0, got %d", h.cursor)
	}
	h, _ = h.update(tea.KeyMsg{Type: tea.KeyDown})
	h, _ = h.update(tea.KeyMsg{Type: tea.KeyDown})
	if h.cursor != 1 {
		t.Fatalf("cursor should stop at 1, got %d", h.cursor)
	}

	_, cmd := h.update(press("d"))
	msgs := runCmd(cmd)
	if len(msgs) != 1 || msgs[0] != (deleteRecordMsg{id: "a"}) {
		t.Fatalf("expected delete of oldest record, got %v", msgs)
	}
}

func TestHistoryDeleteWhenEmpty(t *testing.T) {
	h := newHistoryModel(&hydration.Snapshot{})
	_, cmd := h.update(press("d"))
	if cmd != nil {
		t.Fatal("delete on empty list should do nothing")
	}
}

func TestHistoryClampsCursorAfterShrink(t *testing.T) {
	snap := &hydration.Snapshot{Records: []hydration.Record{{ID: "a"}, {ID: "b"}, {ID: "c"}}}
	h := newHistoryModel(snap)
	h.cursor = 2

	snap.Records = snap.Records[:1]
	h, _ = h.update(tea.KeyMsg{Type: tea.KeyDown})
	if h.cursor != 0 {
		t.Fatalf("cursor should clamp to 0, got %d", h.cursor)
	}
}

// ============================================================
// Export
// ============================================================

func TestAppExportPicker(t *testing.T) {
	app, _ := newTestApp(t, advice.Disabled{})
	app = update(t, app, addIntakeMsg{amount: 250})

	app = update(t, app, press("e"))
	if !app.exportPicking {
		t.Fatal("export picker should open")
	}
	app = update(t, app, tea.KeyMsg{Type: tea.KeyDown})
	if app.exportCursor != 1 {
		t.Fatalf("expected cursor 1, got %d", app.exportCursor)
	}
	app = update(t, app, tea.KeyMsg{Type: tea.KeyUp})

	app, cmd := updateCmd(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	if app.exportPicking {
		t.Fatal("picker should close on enter")
	}
	msgs := runCmd(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(msgs))
	}
	done, ok := msgs[0].(exportDoneMsg)
	if !ok {
		t.Fatalf("expected exportDoneMsg, got %#v", msgs[0])
	}
	if !strings.HasSuffix(done.path, ".csv") {
		t.Fatalf("expected csv export, got %s", done.path)
	}
	if _, err := os.Stat(done.path); err != nil {
		t.Fatalf("export file missing: %v", err)
	}

	app = update(t, app, done)
	if !strings.Contains(app.status, "Exported to") {
		t.Fatalf("unexpected status %q", app.status)
	}
}

func TestAppExportPickerCancel(t *testing.T) {
	app, _ := newTestApp(t, advice.Disabled{})

	app = update(t, app, press("e"))
	app = update(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	if app.exportPicking {
		t.Fatal("esc should close the picker")
	}
}

// ============================================================
// Rendering
// ============================================================

func TestAppViewStates(t *testing.T) {
	app, _ := newTestApp(t, &stubGenerator{reply: "Drink up"})
	app = update(t, app, addIntakeMsg{amount: 250})

	// Test all views render without panic
	for v := range viewNames {
		app.activeView = viewState(v)
		output := app.View()
		if output == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppLoadingState(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(hydration.NewTracker(s), advice.NewGateway(advice.Disabled{}), Info{}, log.Discard())
	// Width 0 means not yet sized
	output := app.View()
	if output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app, _ := newTestApp(t, advice.Disabled{})

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppStatusMessage(t *testing.T) {
	app, _ := newTestApp(t, advice.Disabled{})
	app = update(t, app, statusMsg{text: "test status"})

	footer := app.renderFooter()
	if !strings.Contains(footer, "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestTodayViewShowsProgress(t *testing.T) {
	app, _ := newTestApp(t, advice.Disabled{})

	out := app.today.view()
	if !strings.Contains(out, "No drinks logged today") {
		t.Fatal("empty day should show the empty chart hint")
	}

	app = update(t, app, addIntakeMsg{amount: 500})
	out = app.today.view()
	if !strings.Contains(out, "500 ml") {
		t.Fatal("today view should show the total")
	}
	if !strings.Contains(out, "2.00 L to go") {
		t.Fatal("today view should show the remaining amount")
	}
	if !strings.Contains(out, "Cumulative intake") {
		t.Fatal("today view should show the chart panel")
	}
}

func TestTodayViewGoalReached(t *testing.T) {
	app, _ := newTestApp(t, advice.Disabled{})
	app = update(t, app, setGoalMsg{goal: 500})
	app = update(t, app, addIntakeMsg{amount: 500})

	if !strings.Contains(app.today.view(), "Goal reached") {
		t.Fatal("today view should congratulate once the goal is reached")
	}
}

func TestSettingsViewNotesMissingKey(t *testing.T) {
	snap := &hydration.Snapshot{Goal: 2000}
	s := newSettingsModel(snap, Info{DBPath: "/tmp/w.db", AdviceProvider: "gemini"})
	s.setSize(100, 30)

	out := s.view()
	if !strings.Contains(out, "2000 ml") || !strings.Contains(out, "/tmp/w.db") {
		t.Fatal("settings view should show goal and database path")
	}
	if !strings.Contains(out, "no API key") {
		t.Fatal("settings view should note the missing API key")
	}
}

func TestRenderChart(t *testing.T) {
	if renderChart(nil, 2500, 60, 8) != "" {
		t.Fatal("empty series should render nothing")
	}

	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.Local)
	series := []hydration.Point{
		{Time: day, Amount: 0},
		{Time: day.Add(9 * time.Hour), Amount: 250},
		{Time: day.Add(12 * time.Hour), Amount: 750},
	}
	if renderChart(series, 2500, 60, 8) == "" {
		t.Fatal("chart should render")
	}
}

// ============================================================
// Helpers
// ============================================================

func TestFormatML(t *testing.T) {
	tests := []struct {
		ml   int
		want string
	}{
		{0, "0 ml"},
		{250, "250 ml"},
		{999, "999 ml"},
		{1000, "1.00 L"},
		{2500, "2.50 L"},
	}
	for _, tt := range tests {
		got := formatML(tt.ml)
		if got != tt.want {
			t.Errorf("formatML(%d) = %q, want %q", tt.ml, got, tt.want)
		}
	}
}

func TestNewestFirst(t *testing.T) {
	in := []hydration.Record{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	got := newestFirst(in)
	if got[0].ID != "3" || got[2].ID != "1" {
		t.Fatalf("unexpected order %+v", got)
	}
	if in[0].ID != "1" {
		t.Fatal("input should not be modified")
	}
}

func TestViewNames(t *testing.T) {
	if len(viewNames) != 4 {
		t.Fatalf("expected 4 view names, got %d", len(viewNames))
	}
	if viewNames[viewToday] != "Today" || viewNames[viewSettings] != "Settings" {
		t.Fatal("view names out of order")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test, just verify they don't panic)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"total", func() string { return totalStyle.Render("test") }},
		{"totalReached", func() string { return totalReachedStyle.Render("test") }},
		{"advice", func() string { return adviceStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
	}
	for _, s := range styles {
		if s.fn() == "" {
			t.Fatalf("style %s rendered empty", s.name)
		}
	}
}
