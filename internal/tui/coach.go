package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/waterflow/internal/advice"
	"github.com/sadopc/waterflow/internal/hydration"
)

type coachState int

const (
	coachIdle coachState = iota
	coachRequesting
	coachResult
	coachError
)

type coachModel struct {
	gateway *advice.Gateway
	snap    *hydration.Snapshot
	width   int
	height  int

	state     coachState
	text      string
	updatedAt time.Time
	spinner   spinner.Model
}

func newCoachModel(g *advice.Gateway, snap *hydration.Snapshot) coachModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = highlightStyle
	return coachModel{
		gateway: g,
		snap:    snap,
		spinner: s,
	}
}

func (c *coachModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

func (c coachModel) requesting() bool { return c.state == coachRequesting }

// request starts an advice call unless one is already in flight.
func (c coachModel) request() (coachModel, tea.Cmd) {
	if c.requesting() {
		return c, nil
	}
	c.state = coachRequesting

	g := c.gateway
	stats := advice.Stats{
		Total: c.snap.Total,
		Goal:  c.snap.Goal,
		Count: len(c.snap.Records),
		At:    time.Now(),
	}
	call := func() tea.Msg {
		return adviceMsg{result: g.RequestAdvice(context.Background(), stats)}
	}
	return c, tea.Batch(c.spinner.Tick, call)
}

func (c coachModel) update(msg tea.Msg) (coachModel, tea.Cmd) {
	switch msg := msg.(type) {
	case adviceMsg:
		c.text = msg.result.Text
		c.updatedAt = time.Now()
		if msg.result.Fallback {
			c.state = coachError
		} else {
			c.state = coachResult
		}
		return c, nil

	case spinner.TickMsg:
		if !c.requesting() {
			return c, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return c, cmd
	}
	return c, nil
}

func (c coachModel) view() string {
	w := c.width - 4
	title := titleStyle.Render("Hydration coach")

	var body string
	switch c.state {
	case coachIdle:
		body = mutedStyle.Render("Press c for a tip based on today's progress.")
	case coachRequesting:
		body = c.spinner.View() + " " + mutedStyle.Render("Asking the coach...")
	case coachResult:
		body = lipgloss.JoinVertical(lipgloss.Left,
			adviceStyle.Width(w-6).Render(c.text),
			"",
			mutedStyle.Render("Updated "+formatClock(c.updatedAt)+"  ·  c: ask again"),
		)
	case coachError:
		body = lipgloss.JoinVertical(lipgloss.Left,
			warningStyle.Width(w-6).Render(c.text),
			"",
			mutedStyle.Render("c: try again"),
		)
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body))
}
