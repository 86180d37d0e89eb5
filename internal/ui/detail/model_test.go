package detail

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/habits/internal/i18n"
	"github.com/nhle/habits/internal/keys"
	"github.com/nhle/habits/internal/model"
	"github.com/nhle/habits/internal/theme"
)

var now = time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC)

func newTestDetail(lang string) Model {
	return New(keys.DefaultKeyMap(), theme.New(model.ThemeLight), i18n.New(lang),
		func() time.Time { return now }, 80, 30)
}

func TestDetailShowsFields(t *testing.T) {
	m := newTestDetail("en")
	last := now.Add(-time.Hour)
	rem := time.Date(2024, time.May, 1, 7, 30, 0, 0, time.UTC)
	m.SetHabit(model.Habit{
		ID:            "h1",
		Name:          "Stretch",
		Streak:        5,
		LastCompleted: &last,
		Frequency:     model.FrequencyWeekly,
		StartDate:     time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		ReminderTime:  &rem,
	})

	view := m.View()
	assert.Contains(t, view, "Stretch")
	assert.Contains(t, view, "5 day streak")
	assert.Contains(t, view, "done today")
	assert.Contains(t, view, "Weekly")
	assert.Contains(t, view, "2024-05-01")
	assert.Contains(t, view, "07:30")
	assert.Equal(t, "h1", m.HabitID())
}

func TestDetailEmptyOptionals(t *testing.T) {
	m := newTestDetail("tr")
	m.SetHabit(model.Habit{ID: "h2", Name: "Oku", Frequency: model.FrequencyDaily})

	view := m.View()
	assert.Contains(t, view, "Günlük")
	assert.Contains(t, view, "Hiç")
	assert.Contains(t, view, "Yok")
	assert.NotContains(t, view, "bugün tamamlandı")
}

func TestDetailBack(t *testing.T) {
	m := newTestDetail("en")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, BackMsg{}, cmd())
}
