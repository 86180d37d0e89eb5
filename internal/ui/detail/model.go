package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/habits/internal/i18n"
	"github.com/nhle/habits/internal/keys"
	"github.com/nhle/habits/internal/model"
	"github.com/nhle/habits/internal/streak"
	"github.com/nhle/habits/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// Model is the habit detail view component.
type Model struct {
	habit    *model.Habit
	viewport viewport.Model
	keys     *keys.KeyMap
	styles   theme.Styles
	tr       i18n.Translator
	now      func() time.Time
	width    int
	height   int
}

// New creates a new detail view model.
func New(k *keys.KeyMap, styles theme.Styles, tr i18n.Translator, now func() time.Time, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     k,
		styles:   styles,
		tr:       tr,
		now:      now,
		width:    width,
		height:   height,
	}
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Back) {
		return m, func() tea.Msg { return BackMsg{} }
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.habit == nil {
		return m.styles.Empty.
			Width(m.width).
			Height(m.height).
			Render(m.tr.T("home.empty"))
	}
	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.habit == nil {
		return ""
	}
	h := m.habit

	var sections []string
	sections = append(sections, m.styles.Title.Render(h.Name))

	badge := m.styles.Streak.Render("🔥 " + m.tr.T("habit.streak", "count", h.Streak))
	if streak.CompletedOn(h.LastCompleted, m.now()) {
		badge += "  " + m.styles.Done.Render(m.tr.T("habit.done_today"))
	}
	sections = append(sections, badge, "")

	rows := [][2]string{
		{m.tr.T("create.frequency"), m.frequencyLabel(h.Frequency)},
		{m.tr.T("create.start_date"), h.StartDate.Format(model.DayLayout)},
		{m.tr.T("detail.last_completed"), m.timeOr(h.LastCompleted, model.DayLayout+" "+model.ClockLayout, "detail.never")},
		{m.tr.T("detail.reminder"), m.timeOr(h.ReminderTime, model.ClockLayout, "detail.none")},
	}

	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(r[0]))
	}
	label := m.styles.Help.Width(labelWidth + 2)
	for _, r := range rows {
		sections = append(sections, label.Render(r[0]+":")+m.styles.HabitName.Render(r[1]))
	}

	sections = append(sections, "",
		m.styles.Help.Render(strings.Repeat("─", max(min(m.width-4, 60), 0))),
		m.styles.Help.Render(fmt.Sprintf("id %s", h.ID)),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) frequencyLabel(f model.Frequency) string {
	if f == model.FrequencyWeekly {
		return m.tr.T("create.weekly")
	}
	return m.tr.T("create.daily")
}

func (m Model) timeOr(t *time.Time, layout, emptyKey string) string {
	if t == nil {
		return m.tr.T(emptyKey)
	}
	return t.Format(layout)
}

// SetHabit updates the habit being displayed and re-renders the content.
func (m *Model) SetHabit(h model.Habit) {
	m.habit = &h
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// HabitID returns the id of the displayed habit.
func (m Model) HabitID() string {
	if m.habit == nil {
		return ""
	}
	return m.habit.ID
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	m.viewport.SetContent(m.renderContent())
}

// SetStyles swaps the styles after a theme change.
func (m *Model) SetStyles(s theme.Styles) {
	m.styles = s
	m.viewport.SetContent(m.renderContent())
}
