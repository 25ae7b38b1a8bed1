package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/waterflow/internal/hydration"
)

type historyModel struct {
	snap   *hydration.Snapshot
	width  int
	height int
	cursor int
}

func newHistoryModel(snap *hydration.Snapshot) historyModel {
	return historyModel{snap: snap}
}

func (h *historyModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

// rows returns today's records newest first, the order they are shown in.
func (h historyModel) rows() []hydration.Record {
	return newestFirst(h.snap.Records)
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	rows := h.rows()
	if h.cursor >= len(rows) {
		h.cursor = max(0, len(rows)-1)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if h.cursor > 0 {
				h.cursor--
			}
		case key.Matches(msg, keys.Down):
			if h.cursor < len(rows)-1 {
				h.cursor++
			}
		case key.Matches(msg, keys.Delete):
			if len(rows) == 0 {
				return h, nil
			}
			id := rows[h.cursor].ID
			return h, func() tea.Msg { return deleteRecordMsg{id: id} }
		}
	}
	return h, nil
}

func (h historyModel) view() string {
	w := h.width - 4
	title := titleStyle.Render(fmt.Sprintf("Today's drinks (%d)", len(h.snap.Records)))

	rows := h.rows()
	if len(rows) == 0 {
		return panelStyle.Width(w).Render(strings.Join([]string{
			title,
			mutedStyle.Render("Nothing logged yet. Press 1, 2, 3 or a to add water."),
		}, "\n"))
	}

	lines := []string{title, ""}
	for i, r := range rows {
		cursor := "  "
		style := normalItemStyle
		if i == h.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s%s  %8s", cursor, formatClock(r.Timestamp), formatML(r.Amount))))
	}
	lines = append(lines, "")
	lines = append(lines, mutedStyle.Render("  ↑/↓: move  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(lines, "\n"))
}
