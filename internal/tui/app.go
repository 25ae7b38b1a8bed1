package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/waterflow/internal/advice"
	"github.com/sadopc/waterflow/internal/export"
	"github.com/sadopc/waterflow/internal/hydration"
	"github.com/sadopc/waterflow/internal/log"
)

// refreshInterval paces day-rollover checks and the chart's "now" point.
const refreshInterval = 30 * time.Second

var exportFormats = []export.Format{export.FormatCSV, export.FormatJSON}

// App is the root Bubble Tea model. It is the only place that mutates the
// tracker; sub-views send request messages and read the shared snapshot.
type App struct {
	tracker *hydration.Tracker
	logger  *log.Logger
	snap    *hydration.Snapshot
	width   int
	height  int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int
	exportDir     string

	today    todayModel
	history  historyModel
	coach    coachModel
	settings settingsModel

	help      help.Model
	status    string
	statusErr bool
}

// NewApp subscribes to t and builds the views over the shared snapshot.
func NewApp(t *hydration.Tracker, g *advice.Gateway, info Info, logger *log.Logger) App {
	h := help.New()
	h.ShowAll = false

	snap := &hydration.Snapshot{}
	t.Subscribe(func(s hydration.Snapshot) { *snap = s })

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return App{
		tracker:    t,
		logger:     logger.WithComponent("tui"),
		snap:       snap,
		activeView: viewToday,
		exportDir:  home,
		today:      newTodayModel(snap),
		history:    newHistoryModel(snap),
		coach:      newCoachModel(g, snap),
		settings:   newSettingsModel(snap, info),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.today.setSize(a.width, contentHeight)
		a.history.setSize(a.width, contentHeight)
		a.coach.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, nil
		case key.Matches(msg, keys.Small):
			return a.addIntake(hydration.Presets[0])
		case key.Matches(msg, keys.Medium):
			return a.addIntake(hydration.Presets[1])
		case key.Matches(msg, keys.Large):
			return a.addIntake(hydration.Presets[2])
		case key.Matches(msg, keys.Custom):
			a.activeView = viewToday
			var cmd tea.Cmd
			a.today, cmd = a.today.showAmountForm()
			return a, cmd
		case key.Matches(msg, keys.Goal):
			a.activeView = viewSettings
			var cmd tea.Cmd
			a.settings, cmd = a.settings.showForm()
			return a, cmd
		case key.Matches(msg, keys.Advice):
			a.activeView = viewCoach
			var cmd tea.Cmd
			a.coach, cmd = a.coach.request()
			return a, cmd
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		}

	case tickMsg:
		if a.tracker.Refresh() {
			a.status, a.statusErr = "New day, counters reset", false
		}
		return a, tickCmd()

	case addIntakeMsg:
		return a.addIntake(msg.amount)

	case deleteRecordMsg:
		a.tracker.Delete(msg.id)
		a.status, a.statusErr = "Record deleted", false
		return a, nil

	case setGoalMsg:
		if err := a.tracker.SetGoal(msg.goal); err != nil {
			a.status, a.statusErr = err.Error(), true
			return a, nil
		}
		a.status, a.statusErr = fmt.Sprintf("Goal set to %d ml", msg.goal), false
		return a, nil

	case adviceMsg:
		var cmd tea.Cmd
		a.coach, cmd = a.coach.update(msg)
		return a, cmd

	case statusMsg:
		a.status, a.statusErr = msg.text, msg.isError
		if msg.isError {
			a.logger.Warn("ui error", "text", msg.text)
		}
		return a, nil

	case exportDoneMsg:
		a.status, a.statusErr = "Exported to "+msg.path, false
		a.logger.Info("export written", "path", msg.path)
		return a, nil
	}

	// Spinner ticks go to the coach whatever view is showing.
	if _, ok := msg.(tea.KeyMsg); !ok {
		var cmd tea.Cmd
		a.coach, cmd = a.coach.update(msg)
		if cmd != nil {
			return a, cmd
		}
	}

	return a.updateActiveView(msg)
}

func (a App) addIntake(amount int) (App, tea.Cmd) {
	r, err := a.tracker.Add(amount)
	if err != nil {
		a.status, a.statusErr = err.Error(), true
		return a, nil
	}
	a.status, a.statusErr = fmt.Sprintf("Added %d ml at %s", r.Amount, formatClock(r.Timestamp)), false
	return a, nil
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewToday:
		a.today, cmd = a.today.update(msg)
	case viewHistory:
		a.history, cmd = a.history.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewToday:
		return a.today.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewToday:
		content = a.today.view()
	case viewHistory:
		content = a.history.view()
	case viewCoach:
		content = a.coach.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(1, a.height-headerHeight-footerHeight)

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("💧 waterflow")
	gap := max(1, a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	progress := highlightStyle.Render(fmt.Sprintf(" %d%% of %s", a.snap.Progress, formatML(a.snap.Goal)))
	if a.snap.GoalReached() {
		progress = successStyle.Render(fmt.Sprintf(" ✓ %s", formatML(a.snap.Total)))
	}

	left := footerStyle.Render(helpView)
	right := progress + status

	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+string(f)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(exportFormats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(f export.Format) tea.Cmd {
	snap := *a.snap
	path := export.DefaultPath(a.exportDir, snap.Day, f)
	return func() tea.Msg {
		if err := export.Write(snap, f, path); err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
