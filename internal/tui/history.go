package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/mresendiz/racha/internal/constants"
	"github.com/mresendiz/racha/internal/dateutil"
	"github.com/mresendiz/racha/internal/models"
	"github.com/mresendiz/racha/internal/recurrence"
	"github.com/mresendiz/racha/internal/streak"
)

// buildHistoryChart plots completions per day over the rolling window.
// Fully completed days are highlighted, partial days muted.
func (m *Model) buildHistoryChart() {
	chartWidth := m.width - 8
	if chartWidth < 2*constants.HistoryWindowDays {
		chartWidth = 2 * constants.HistoryWindowDays
	}
	chartHeight := 10
	if m.height > 30 {
		chartHeight = 14
	}
	m.chart = barchart.New(chartWidth, chartHeight)

	byDate := make(map[string]bool, len(m.window))
	for _, d := range m.window {
		byDate[d.Date] = d.Completed
	}

	today := dateutil.Midnight(time.Now())
	var bars []barchart.BarData
	for i := constants.HistoryWindowDays - 1; i >= 0; i-- {
		day := dateutil.AddDays(today, -i)
		key := dateutil.Format(day)

		done := 0
		for _, h := range m.habits {
			if h.CompletedOn(key) {
				done++
			}
		}

		style := mutedStyle
		if byDate[key] {
			style = doneStyle
		}
		bars = append(bars, barchart.BarData{
			Label: day.Format("02"),
			Values: []barchart.BarValue{
				{Name: key, Value: float64(done), Style: style},
			},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m Model) viewHistory() string {
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("History"), "  ",
		mutedStyle.Render(fmt.Sprintf("completions per day, last %d days", constants.HistoryWindowDays)),
	)

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.chart.View(),
		"",
		m.renderMonthGrid(time.Now()),
	))
}

// renderMonthGrid prints the current month as a calendar, one cell per
// day: fully completed days highlighted, the rest muted, days still to
// come blank.
func (m Model) renderMonthGrid(now time.Time) string {
	today := dateutil.Midnight(now)

	var b strings.Builder
	b.WriteString(titleStyle.Render(today.Format("January 2006")))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Mo Tu We Th Fr Sa Su"))
	b.WriteString("\n")

	for _, week := range monthWeeks(today) {
		cells := make([]string, len(week))
		for i, day := range week {
			if day == 0 {
				cells[i] = "  "
				continue
			}
			date := time.Date(today.Year(), today.Month(), day, 0, 0, 0, 0, time.Local)
			cell := fmt.Sprintf("%2d", day)
			switch {
			case date.After(today):
				cells[i] = mutedStyle.Render("  ")
			case streak.DayCompleted(m.habits, date):
				cells[i] = doneStyle.Render(cell)
			default:
				cells[i] = mutedStyle.Render(cell)
			}
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteString("\n")
	}
	return b.String()
}

// monthWeeks lays out the month containing ref as Monday-first weeks.
// Cells outside the month are zero.
func monthWeeks(ref time.Time) [][]int {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.Local)
	days := dateutil.DaysInMonth(ref)

	// time.Weekday is Sunday-based; shift so Monday lands in column 0.
	offset := (int(first.Weekday()) + 6) % 7

	var weeks [][]int
	week := make([]int, 7)
	col := offset
	for day := 1; day <= days; day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = make([]int, 7)
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// dueToday reports whether a habit is scheduled for today.
func dueToday(h models.Habit) bool {
	return recurrence.ForHabit(h).DueOn(time.Now())
}
