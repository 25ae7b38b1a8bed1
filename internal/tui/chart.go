package tui

import (
	"time"

	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/sadopc/waterflow/internal/hydration"
)

// renderChart draws the cumulative series as a braille line chart. The
// y axis always reaches the goal so progress reads against it.
func renderChart(series []hydration.Point, goal, width, height int) string {
	if len(series) == 0 {
		return ""
	}
	width = max(width, 20)
	height = max(height, 4)

	start := series[0].Time
	end := series[len(series)-1].Time
	if !end.After(start) {
		end = start.Add(time.Hour)
	}
	top := max(goal, series[len(series)-1].Amount)

	chart := timeserieslinechart.New(width, height,
		timeserieslinechart.WithTimeRange(start, end),
		timeserieslinechart.WithYRange(0, float64(top)),
		timeserieslinechart.WithXLabelFormatter(timeserieslinechart.HourTimeLabelFormatter()),
		timeserieslinechart.WithStyle(chartStyle),
	)
	for _, p := range series {
		chart.Push(timeserieslinechart.TimePoint{Time: p.Time, Value: float64(p.Amount)})
	}
	chart.DrawBraille()
	return chart.View()
}
