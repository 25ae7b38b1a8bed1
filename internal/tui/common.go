package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/waterflow/internal/advice"
	"github.com/sadopc/waterflow/internal/hydration"
)

// viewState represents the currently active view.
type viewState int

const (
	viewToday viewState = iota
	viewHistory
	viewCoach
	viewSettings
)

var viewNames = []string{"Today", "History", "Coach", "Settings"}

// --- Messages ---

// Mutation requests from sub-views. Only App applies them to the tracker.
type addIntakeMsg struct {
	amount int
}

type deleteRecordMsg struct {
	id string
}

type setGoalMsg struct {
	goal int
}

type adviceMsg struct {
	result advice.Result
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatML(ml int) string {
	if ml >= 1000 {
		return fmt.Sprintf("%.2f L", float64(ml)/1000)
	}
	return fmt.Sprintf("%d ml", ml)
}

func formatClock(t time.Time) string {
	return t.Local().Format("15:04")
}

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isError: isError} }
}

// newestFirst returns records in reverse insertion order for display.
func newestFirst(records []hydration.Record) []hydration.Record {
	out := make([]hydration.Record, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r
	}
	return out
}
