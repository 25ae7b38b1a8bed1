package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/waterflow/internal/hydration"
)

// Info describes the environment shown on the settings view.
type Info struct {
	DBPath         string
	AdviceProvider string
	AdviceEnabled  bool
}

type settingsModel struct {
	snap   *hydration.Snapshot
	info   Info
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	formGoal *string
}

func newSettingsModel(snap *hydration.Snapshot, info Info) settingsModel {
	goal := ""
	return settingsModel{
		snap:     snap,
		info:     info,
		formGoal: &goal,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Enter) {
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.formGoal = strconv.Itoa(s.snap.Goal)

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Daily goal (ml)").
				Description("Most adults need 2000 - 3000 ml a day depending on weight and activity.").
				Validate(func(v string) error {
					_, err := hydration.ParseGoal(v)
					return err
				}).
				Value(s.formGoal),
		).Title("Goal"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		goal, err := hydration.ParseGoal(*s.formGoal)
		if err != nil {
			return s, statusCmd(err.Error(), true)
		}
		return s, func() tea.Msg { return setGoalMsg{goal: goal} }
	}

	return s, cmd
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	advice := s.info.AdviceProvider
	if !s.info.AdviceEnabled {
		advice += mutedStyle.Render(" (no API key, tips fall back)")
	}

	rows := []string{
		title,
		"",
		settingRow("Daily goal", formatGoal(s.snap.Goal)),
		settingRow("Advice provider", advice),
		settingRow("Database", s.info.DBPath),
		"",
		mutedStyle.Render("Press enter or g to edit the goal"),
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingRow(label, value string) string {
	l := lipgloss.NewStyle().Width(18).Render(label)
	return fmt.Sprintf("  %s %s", l, highlightStyle.Render(value))
}

func formatGoal(ml int) string {
	return fmt.Sprintf("%d ml", ml)
}
