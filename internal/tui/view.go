package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mresendiz/racha/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateHabits:
		content = docStyle.Render(m.habitList.View())
	case constants.StateHistory:
		content = m.viewHistory()
	case constants.StateProgress:
		content = m.viewProgress()
	case constants.StateAddHabit, constants.StateEditHabit:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	case constants.StateCelebration:
		content = m.viewCelebration()
	}

	sections := []string{m.viewTabs(), content}
	if m.statusMessage != "" {
		sections = append(sections, statusStyle.Render("  "+m.statusMessage))
	}
	sections = append(sections, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Habits", "History", "Progress"} {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewProgress() string {
	limits := m.service.Limits()

	var reward string
	switch {
	case m.rewardClaimed:
		reward = doneStyle.Render(fmt.Sprintf("Extra slots claimed: +%d", limits.ExtraSlots))
	case m.offerReward:
		reward = streakStyle.Render(fmt.Sprintf("Extra slots unlocked! Press 'c' to claim %d more.", limits.ExtraSlots))
	default:
		reward = mutedStyle.Render(fmt.Sprintf("Reach a %d-day streak to unlock %d extra slots.",
			limits.UnlockThreshold, limits.ExtraSlots))
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Progress"),
		"",
		streakStyle.Render(fmt.Sprintf("Current streak: %d day(s)", m.globalStreak)),
		fmt.Sprintf("Best streak:    %d day(s)", m.globalBest),
		"",
		fmt.Sprintf("Habit slots: %d/%d used", len(m.habits), m.slotLimit),
		"",
		reward,
	))
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete this habit and all its history?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewCelebration() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			streakStyle.Render("★ Day complete! ★"),
			"",
			fmt.Sprintf("Every habit due today is done. Streak: %d day(s)", m.globalStreak),
			"",
			mutedStyle.Render("press any key to continue"),
		),
	)
}
