package settings

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/habits/internal/i18n"
	"github.com/nhle/habits/internal/keys"
	"github.com/nhle/habits/internal/model"
	"github.com/nhle/habits/internal/theme"
)

func TestToggleKeyEmitsMsg(t *testing.T) {
	m := New(keys.DefaultKeyMap(), theme.New(model.ThemeLight), i18n.New("en"), model.ThemeLight, 80, 24)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	require.NotNil(t, cmd)
	assert.Equal(t, ToggleThemeMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}})
	assert.Nil(t, cmd)
}

func TestViewShowsLocalizedTheme(t *testing.T) {
	m := New(keys.DefaultKeyMap(), theme.New(model.ThemeLight), i18n.New("tr"), model.ThemeLight, 80, 24)
	view := m.View()
	assert.Contains(t, view, "Ayarlar")
	assert.Contains(t, view, "Açık")
	assert.Contains(t, view, "Türkçe")

	m.SetTheme(model.ThemeDark)
	assert.Contains(t, m.View(), "Karanlık")
}

func TestViewEnglish(t *testing.T) {
	m := New(keys.DefaultKeyMap(), theme.New(model.ThemeDark), i18n.New("en"), model.ThemeDark, 80, 24)
	view := m.View()
	assert.Contains(t, view, "Appearance")
	assert.Contains(t, view, "Dark")
	assert.Contains(t, view, "English")
}
