package settings

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language/display"

	"github.com/nhle/habits/internal/i18n"
	"github.com/nhle/habits/internal/keys"
	"github.com/nhle/habits/internal/model"
	"github.com/nhle/habits/internal/theme"
)

// ToggleThemeMsg asks the root model to flip the theme.
type ToggleThemeMsg struct{}

// Model is the settings view. It shows the appearance and language
// preferences; the theme row toggles on the ToggleTheme key.
type Model struct {
	keys   *keys.KeyMap
	styles theme.Styles
	tr     i18n.Translator
	theme  model.Theme
	width  int
	height int
}

// New creates a new settings view model.
func New(k *keys.KeyMap, styles theme.Styles, tr i18n.Translator, current model.Theme, width, height int) Model {
	return Model{
		keys:   k,
		styles: styles,
		tr:     tr,
		theme:  current,
		width:  width,
		height: height,
	}
}

// Update handles messages for the settings view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.ToggleTheme) {
		return m, func() tea.Msg { return ToggleThemeMsg{} }
	}
	return m, nil
}

// View renders the settings panel.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.tr.T("settings.title")))
	b.WriteString("\n")

	b.WriteString(m.styles.HabitName.Render(m.tr.T("settings.appearance")))
	b.WriteString("\n")
	b.WriteString(m.row(m.tr.T("settings.theme"), m.themeLabel(), m.keys.ToggleTheme.Help().Key))
	b.WriteString("\n\n")

	b.WriteString(m.styles.HabitName.Render(m.tr.T("settings.preferences")))
	b.WriteString("\n")
	b.WriteString(m.row(m.tr.T("settings.language"), m.languageLabel(), ""))

	return m.styles.Panel.
		Width(max(m.width-4, 0)).
		Render(b.String())
}

func (m Model) row(label, value, hint string) string {
	line := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(16).Render("  "+label),
		m.styles.Done.Render(value),
	)
	if hint != "" {
		line += m.styles.Help.Render("  (" + hint + ")")
	}
	return line
}

// themeLabel returns the localized name of the active theme.
func (m Model) themeLabel() string {
	if m.theme == model.ThemeDark {
		return m.tr.T("Dark")
	}
	return m.tr.T("Light")
}

// languageLabel names the active language in itself, e.g. "Türkçe".
func (m Model) languageLabel() string {
	tag := m.tr.Language()
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return tag.String()
}

// SetTheme records the active theme after a toggle.
func (m *Model) SetTheme(t model.Theme) {
	m.theme = t
}

// SetSize updates the settings view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetStyles swaps the styles after a theme change.
func (m *Model) SetStyles(s theme.Styles) {
	m.styles = s
}
