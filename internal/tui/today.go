package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/waterflow/internal/hydration"
)

type todayModel struct {
	snap   *hydration.Snapshot
	width  int
	height int

	bar progress.Model

	formActive bool
	form       *huh.Form
	formAmount *string
}

func newTodayModel(snap *hydration.Snapshot) todayModel {
	amount := ""
	bar := progress.New(progress.WithGradient(string(colorHighlight), string(colorPrimary)))
	return todayModel{
		snap:       snap,
		bar:        bar,
		formAmount: &amount,
	}
}

func (d *todayModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.bar.Width = max(10, w-12)
}

func (d todayModel) update(msg tea.Msg) (todayModel, tea.Cmd) {
	if d.formActive && d.form != nil {
		return d.updateForm(msg)
	}
	return d, nil
}

// showAmountForm opens the free-form intake entry.
func (d todayModel) showAmountForm() (todayModel, tea.Cmd) {
	*d.formAmount = ""
	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount (ml)").
				Placeholder("330").
				Validate(func(s string) error {
					_, err := hydration.ParseAmount(s)
					return err
				}).
				Value(d.formAmount),
		),
	).WithShowHelp(true).WithShowErrors(true)

	d.formActive = true
	return d, d.form.Init()
}

func (d todayModel) updateForm(msg tea.Msg) (todayModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			d.formActive = false
			d.form = nil
			return d, nil
		}
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	if d.form.State == huh.StateCompleted {
		d.formActive = false
		d.form = nil
		amount, err := hydration.ParseAmount(*d.formAmount)
		if err != nil {
			return d, statusCmd(err.Error(), true)
		}
		return d, func() tea.Msg { return addIntakeMsg{amount: amount} }
	}

	return d, cmd
}

func (d todayModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}
	w := d.width - 4

	if d.formActive && d.form != nil {
		title := titleStyle.Render("Add water")
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", d.form.View()),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderProgressPanel(w),
		d.renderChartPanel(w),
	)
}

func (d todayModel) renderProgressPanel(w int) string {
	s := *d.snap

	style := totalStyle
	if s.GoalReached() {
		style = totalReachedStyle
	}
	total := style.Width(w - 6).Render(fmt.Sprintf("%s / %s", formatML(s.Total), formatML(s.Goal)))
	bar := lipgloss.JoinHorizontal(lipgloss.Center,
		d.bar.ViewAs(float64(s.Progress)/100),
		highlightStyle.Render(fmt.Sprintf(" %3d%%", s.Progress)),
	)

	var message string
	if s.GoalReached() {
		message = successStyle.Render("Goal reached. Great job!")
	} else {
		message = mutedStyle.Render(fmt.Sprintf("%s to go", formatML(s.Remaining())))
	}

	var presets []string
	for i, amount := range hydration.Presets {
		presets = append(presets, fmt.Sprintf("%d: +%d ml", i+1, amount))
	}
	hint := mutedStyle.Render(strings.Join(presets, "   ") + "   a: custom")

	content := lipgloss.JoinVertical(lipgloss.Center,
		total,
		"",
		bar,
		message,
		"",
		hint,
	)
	return panelStyle.Width(w).Render(content)
}

func (d todayModel) renderChartPanel(w int) string {
	title := titleStyle.Render("Cumulative intake")
	series := d.snap.Series
	if len(series) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No drinks logged today"),
		))
	}

	chartHeight := 8
	if d.height > 30 {
		chartHeight = 12
	}
	chart := renderChart(series, d.snap.Goal, w-6, chartHeight)
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", chart))
}
