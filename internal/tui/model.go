package tui

import (
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/mresendiz/racha/internal/constants"
	"github.com/mresendiz/racha/internal/habits"
	"github.com/mresendiz/racha/internal/models"
	"github.com/mresendiz/racha/internal/streak"
	"github.com/mresendiz/racha/internal/tui/components/habitlist"
)

// tabCount is the number of top-level screens (habits, history,
// progress).
const tabCount = 3

type Model struct {
	service *habits.Service

	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model

	habitList habitlist.Model
	chart     barchart.Model

	form      *huh.Form
	habitForm *HabitFormModel
	editingID string

	habits        []models.Habit
	window        []streak.DayStatus
	globalStreak  int
	globalBest    int
	rewardClaimed bool
	offerReward   bool
	slotLimit     int

	habitToDeleteID string
	statusMessage   string

	quitting bool
	width    int
	height   int
}

func NewModel(service *habits.Service) Model {
	m := Model{
		service: service,
		state:   constants.StateHabits,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
	m.refresh()
	m.habitList = habitlist.New(m.listItems(), 0, 0)
	return m
}

// refresh re-reads everything the screens show from the engine.
func (m *Model) refresh() {
	habitsList, err := m.service.List()
	if err != nil {
		m.statusMessage = "Failed to load habits: " + err.Error()
		return
	}
	m.habits = habitsList

	m.window, _ = m.service.History(constants.HistoryWindowDays)
	m.globalStreak, _ = m.service.Streak()
	m.globalBest, _ = m.service.BestStreak()
	m.rewardClaimed, _ = m.service.RewardClaimed()
	m.offerReward, _ = m.service.ShouldOfferReward()
	m.slotLimit, _ = m.service.SlotLimit()

	m.buildHistoryChart()
}

func (m Model) listItems() []habitlist.Item {
	today := m.service.TodayKey()
	items := make([]habitlist.Item, len(m.habits))
	for i, h := range m.habits {
		items[i] = habitlist.Item{
			Habit:   h,
			DueNow:  dueToday(h),
			DoneNow: h.CompletedOn(today),
		}
	}
	return items
}

func (m *Model) syncList() {
	m.habitList.SetItems(m.listItems())
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateHabits:
		keys = append(keys, m.keys.Add, m.keys.Edit, m.keys.Toggle, m.keys.Delete)
	case constants.StateProgress:
		if m.offerReward {
			keys = append(keys, m.keys.Claim)
		}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case constants.StateHabits:
		actions = []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Toggle, m.keys.Delete}
	case constants.StateProgress:
		actions = []key.Binding{m.keys.Claim}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// tickMsg redraws the screens once a minute so a TUI left open over
// midnight rolls to the new day.
type tickMsg time.Time
