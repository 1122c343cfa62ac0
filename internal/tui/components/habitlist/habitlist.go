package habitlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mresendiz/racha/internal/models"
)

type AddHabitMsg struct{}

type EditHabitMsg struct {
	ID string
}

type ToggleHabitMsg struct {
	ID        string
	Completed bool
}

type DeleteHabitMsg struct {
	ID string
}

type Item struct {
	Habit   models.Habit
	DueNow  bool
	DoneNow bool
}

func (i Item) Title() string {
	switch {
	case !i.DueNow:
		return "- " + i.Habit.Name
	case i.DoneNow:
		return "✓ " + i.Habit.Name
	default:
		return "○ " + i.Habit.Name
	}
}

func (i Item) Description() string {
	status := "not completed today"
	if !i.DueNow {
		status = "not due today"
	} else if i.DoneNow {
		status = "completed today"
	}
	return fmt.Sprintf("%s · streak %d (best %d) · %s",
		string(i.Habit.Interval), i.Habit.CurrentStreak, i.Habit.BestStreak, status)
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Toggle key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("m", " "),
			key.WithHelp("m", "toggle done"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(items []Item, width, height int) Model {
	l := list.New(toListItems(items), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Toggle, keys.Delete}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{
		list: l,
		keys: keys,
	}
}

func toListItems(items []Item) []list.Item {
	out := make([]list.Item, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

func (m *Model) SetItems(items []Item) {
	m.list.SetItems(toListItems(items))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EditHabitMsg{ID: i.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg {
					return ToggleHabitMsg{ID: i.Habit.ID, Completed: !i.DoneNow}
				}
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: i.Habit.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
