package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/mresendiz/racha/internal/constants"
	"github.com/mresendiz/racha/internal/models"
	"github.com/mresendiz/racha/internal/tui/components/habitlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.habitList.SetSize(msg.Width-h, msg.Height-v-4)
		m.buildHistoryChart()
		return m, nil

	case tickMsg:
		m.refresh()
		m.syncList()
		return m, tea.Tick(time.Minute, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})
	}

	switch m.state {
	case constants.StateAddHabit, constants.StateEditHabit:
		return m.updateForm(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	case constants.StateCelebration:
		return m.updateCelebration(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			m.statusMessage = ""
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			m.statusMessage = ""
			return m, nil
		}
	}

	switch m.state {
	case constants.StateHabits:
		return m.updateHabits(msg)
	case constants.StateProgress:
		return m.updateProgress(msg)
	}
	return m, nil
}

func (m Model) updateHabits(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case habitlist.AddHabitMsg:
		m.habitForm = &HabitFormModel{Interval: string(models.IntervalDaily)}
		m.form = newHabitForm(m.habitForm)
		m.editingID = ""
		m.previousState = m.state
		m.state = constants.StateAddHabit
		return m, m.form.Init()

	case habitlist.EditHabitMsg:
		habit, err := m.service.Get(msg.ID)
		if err != nil {
			m.statusMessage = err.Error()
			return m, nil
		}
		m.habitForm = &HabitFormModel{
			Name:     habit.Name,
			Interval: string(habit.Interval),
			Remind:   habit.ReminderTime,
		}
		m.form = newHabitForm(m.habitForm)
		m.editingID = habit.ID
		m.previousState = m.state
		m.state = constants.StateEditHabit
		return m, m.form.Init()

	case habitlist.ToggleHabitMsg:
		wasComplete := m.dayComplete()
		if _, err := m.service.SetCompletion(msg.ID, m.service.TodayKey(), msg.Completed); err != nil {
			m.statusMessage = err.Error()
			return m, nil
		}
		m.refresh()
		m.syncList()
		if !wasComplete && m.dayComplete() {
			m.state = constants.StateCelebration
		}
		return m, nil

	case habitlist.DeleteHabitMsg:
		m.habitToDeleteID = msg.ID
		m.state = constants.StateConfirmDelete
		return m, nil
	}

	var cmd tea.Cmd
	m.habitList, cmd = m.habitList.Update(msg)
	return m, cmd
}

// dayComplete reports whether every habit due today is completed.
func (m Model) dayComplete() bool {
	if len(m.window) == 0 {
		return false
	}
	return m.window[0].Completed
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = constants.StateHabits
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		interval := models.Interval(m.habitForm.Interval)
		var err error
		if m.editingID == "" {
			_, err = m.service.Create(m.habitForm.Name, interval, m.habitForm.Remind)
		} else {
			_, err = m.service.Update(m.editingID, m.habitForm.Name, interval, m.habitForm.Remind)
		}
		if err != nil {
			// Stay in the form so the user can fix the input or ESC out.
			m.statusMessage = err.Error()
			m.form.State = huh.StateNormal
			break
		}
		m.statusMessage = ""
		m.refresh()
		m.syncList()
		m.state = constants.StateHabits

	case huh.StateAborted:
		m.state = constants.StateHabits
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			if _, err := m.service.Delete(m.habitToDeleteID); err != nil {
				m.statusMessage = err.Error()
			}
			m.habitToDeleteID = ""
			m.refresh()
			m.syncList()
			m.state = constants.StateHabits
		case "n", "N", "esc", "q":
			m.habitToDeleteID = ""
			m.state = constants.StateHabits
		}
	}
	return m, nil
}

func (m Model) updateCelebration(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		m.state = constants.StateHabits
	}
	return m, nil
}

func (m Model) updateProgress(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, m.keys.Claim) && m.offerReward {
			if _, err := m.service.ClaimReward(); err != nil {
				m.statusMessage = err.Error()
				return m, nil
			}
			m.statusMessage = "Extra slots claimed!"
			m.refresh()
			m.syncList()
		}
	}
	return m, nil
}
