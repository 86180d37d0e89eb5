package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/habits/internal/i18n"
	"github.com/nhle/habits/internal/theme"
)

// Palette commands understood by the root model.
const (
	CmdNew      = "new"
	CmdComplete = "complete"
	CmdTheme    = "theme"
	CmdSettings = "settings"
	CmdHabits   = "habits"
	CmdHelp     = "help"
	CmdQuit     = "quit"
)

// Names lists every palette command, used for tab completion.
var Names = []string{CmdNew, CmdComplete, CmdTheme, CmdSettings, CmdHabits, CmdHelp, CmdQuit}

// aliases maps short forms to their command.
var aliases = map[string]string{
	"n":      CmdNew,
	"add":    CmdNew,
	"done":   CmdComplete,
	"x":      CmdComplete,
	"toggle": CmdTheme,
	"q":      CmdQuit,
	"?":      CmdHelp,
}

// CommandMsg is emitted when the user executes a command. Unknown input
// is passed through unchanged.
type CommandMsg string

// Resolve maps input to a palette command, expanding aliases.
func Resolve(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	if c, ok := aliases[s]; ok {
		return c
	}
	return s
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	styles theme.Styles
	tr     i18n.Translator
	width  int
	height int
}

// New creates a new command palette model.
func New(styles theme.Styles, tr i18n.Translator, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = strings.Join(Names, ", ")
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(Names)
	ti.Width = width - 6

	return Model{
		input:  ti,
		styles: styles,
		tr:     tr,
		width:  width,
		height: height,
	}
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		cmd := Resolve(m.input.Value())
		m.input.Reset()
		if cmd == "" {
			return m, nil
		}
		return m, func() tea.Msg { return CommandMsg(cmd) }
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(m.tr.T("command.title")),
		m.input.View(),
	)

	return m.styles.Panel.
		Width(max(m.width-4, 0)).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// SetStyles swaps the styles after a theme change.
func (m *Model) SetStyles(s theme.Styles) {
	m.styles = s
}

// Focus clears the input and gives it keyboard focus.
func (m *Model) Focus() tea.Cmd {
	m.input.Reset()
	return m.input.Focus()
}

// Blur releases keyboard focus.
func (m *Model) Blur() {
	m.input.Blur()
}
