package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/habits/internal/model"
)

// habitCreatedMsg is sent after a habit is added.
type habitCreatedMsg struct {
	habit model.Habit
	err   error
}

// habitCompletedMsg is sent after a completion was applied.
type habitCompletedMsg struct {
	habit model.Habit
	found bool
	err   error
}

// themeToggledMsg is sent after the theme was flipped.
type themeToggledMsg struct {
	theme model.Theme
	err   error
}

// createHabit adds a habit. The store keeps the habit in memory even when
// the write fails, so err only affects the status bar.
func (m *Model) createHabit(in model.NewHabit) tea.Cmd {
	s := m.state.Habits
	return func() tea.Msg {
		h, err := s.AddHabit(context.Background(), in)
		return habitCreatedMsg{habit: h, err: err}
	}
}

// completeHabit applies today's completion to the habit with the given ID.
func (m *Model) completeHabit(id string) tea.Cmd {
	s := m.state.Habits
	return func() tea.Msg {
		h, found, err := s.CompleteHabit(context.Background(), id)
		return habitCompletedMsg{habit: h, found: found, err: err}
	}
}

// toggleTheme flips the persisted theme.
func (m *Model) toggleTheme() tea.Cmd {
	s := m.state.UI
	return func() tea.Msg {
		t, err := s.ToggleTheme(context.Background())
		return themeToggledMsg{theme: t, err: err}
	}
}
