package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/habits/internal/i18n"
	"github.com/nhle/habits/internal/model"
	"github.com/nhle/habits/internal/theme"
)

func TestResolve(t *testing.T) {
	assert.Equal(t, CmdNew, Resolve("add"))
	assert.Equal(t, CmdQuit, Resolve(" Q "))
	assert.Equal(t, CmdTheme, Resolve("theme"))
	assert.Equal(t, "bogus", Resolve("bogus"))
	assert.Equal(t, "", Resolve("   "))
}

func TestEnterEmitsResolvedCommand(t *testing.T) {
	m := New(theme.New(model.ThemeLight), i18n.New("en"), 80, 24)
	m.Focus()

	for _, r := range "toggle" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CommandMsg(CmdTheme), cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestViewTitleIsLocalized(t *testing.T) {
	m := New(theme.New(model.ThemeLight), i18n.New("tr"), 80, 24)
	assert.Contains(t, m.View(), "Komut")
}
