package habitlist

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/habits/internal/i18n"
	"github.com/nhle/habits/internal/keys"
	"github.com/nhle/habits/internal/model"
	"github.com/nhle/habits/internal/streak"
	"github.com/nhle/habits/internal/theme"
)

// CompleteRequestMsg is sent when the user completes the selected habit.
type CompleteRequestMsg struct {
	HabitID string
}

// Model is the habit list view.
type Model struct {
	list   list.Model
	keys   *keys.KeyMap
	styles theme.Styles
	tr     i18n.Translator
	now    func() time.Time
	width  int
	height int
}

// New creates a new habit list model.
func New(
	k *keys.KeyMap,
	styles theme.Styles,
	tr i18n.Translator,
	now func() time.Time,
	width, height int,
) Model {
	l := list.New([]list.Item{}, newDelegate(styles, tr, now, width), width, height)
	l.Title = tr.T("home.title")
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = styles.Title

	return Model{
		list:   l,
		keys:   k,
		styles: styles,
		tr:     tr,
		now:    now,
		width:  width,
		height: height,
	}
}

// SetHabits replaces the displayed habits, keeping the cursor in range.
func (m *Model) SetHabits(habits []model.Habit) tea.Cmd {
	items := make([]list.Item, len(habits))
	for i, h := range habits {
		items[i] = Item{Habit: h}
	}
	return m.list.SetItems(items)
}

// Selected returns the habit under the cursor.
func (m Model) Selected() (model.Habit, bool) {
	it, ok := m.list.SelectedItem().(Item)
	if !ok {
		return model.Habit{}, false
	}
	return it.Habit, true
}

// CanComplete reports whether h may be completed now. A habit already
// completed today is shown as done and the action is disabled.
func (m Model) CanComplete(h model.Habit) bool {
	return !streak.CompletedOn(h.LastCompleted, m.now())
}

// Update handles messages for the habit list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Complete) {
		h, ok := m.Selected()
		if !ok || !m.CanComplete(h) {
			return m, nil
		}
		id := h.ID
		return m, func() tea.Msg { return CompleteRequestMsg{HabitID: id} }
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the habit list, or a hint when there are no habits.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return m.styles.Empty.
			Width(m.width).
			Height(m.height).
			Render(m.tr.T("home.title") + "\n\n" + m.tr.T("home.empty"))
	}
	return m.list.View()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
	m.list.SetDelegate(newDelegate(m.styles, m.tr, m.now, width))
}

// SetStyles swaps the styles after a theme change.
func (m *Model) SetStyles(s theme.Styles) {
	m.styles = s
	m.list.Styles.Title = s.Title
	m.list.SetDelegate(newDelegate(s, m.tr, m.now, m.width))
}
