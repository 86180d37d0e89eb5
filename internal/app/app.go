package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/habits/internal/keys"
	"github.com/nhle/habits/internal/model"
	"github.com/nhle/habits/internal/reminder"
	"github.com/nhle/habits/internal/theme"
	"github.com/nhle/habits/internal/ui"
	"github.com/nhle/habits/internal/ui/command"
	"github.com/nhle/habits/internal/ui/detail"
	"github.com/nhle/habits/internal/ui/habitform"
	"github.com/nhle/habits/internal/ui/habitlist"
	helpview "github.com/nhle/habits/internal/ui/help"
	"github.com/nhle/habits/internal/ui/settings"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewHabits ViewState = iota
	ViewSettings
	ViewCreate
	ViewHelp
	ViewCommand
	ViewDetail
)

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the stores.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	state        *State
	keys         *keys.KeyMap
	styles       theme.Styles
	habitList    habitlist.Model
	habitForm    habitform.Model
	settingsView settings.Model
	helpView     helpview.Model
	commandView  command.Model
	detailView   detail.Model
	ready        bool
	notice       string
	storageErr   bool
}

// New creates a new root application model over st.
func New(st *State) Model {
	k := keys.DefaultKeyMap()
	current := st.UI.Theme()
	styles := theme.New(current)
	tr := st.Translator

	m := Model{
		currentView:  ViewHabits,
		state:        st,
		keys:         k,
		styles:       styles,
		habitList:    habitlist.New(k, styles, tr, st.Now, 80, 24),
		habitForm:    habitform.New(tr, styles, st.Now, 80, 24),
		settingsView: settings.New(k, styles, tr, current, 80, 24),
		helpView:     helpview.New(k, styles, tr, 80, 24),
		commandView:  command.New(styles, tr, 80, 24),
		detailView:   detail.New(k, styles, tr, st.Now, 80, 24),
		storageErr:   st.StorageDegraded(),
	}
	m.habitList.SetHabits(st.Habits.Habits())
	return m
}

// Init starts the reminder subscription when reminders are enabled.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle(m.state.Translator.T("app.title"))}
	if m.state.Config.Reminders.Enabled {
		cmds = append(cmds, m.state.Reminders.Start())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.habitList.SetSize(contentWidth, contentHeight)
		m.habitForm.SetSize(contentWidth, contentHeight)
		m.settingsView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		m.detailView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case habitlist.CompleteRequestMsg:
		return m, m.completeHabit(msg.HabitID)

	case habitCompletedMsg:
		m.noteStoreResult(msg.err, "completing habit")
		if !msg.found {
			m.state.Logger.Warn("completed habit no longer exists")
		}
		return m, m.habitList.SetHabits(m.state.Habits.Habits())

	case detail.BackMsg:
		m.currentView = ViewHabits
		return m, nil

	case habitform.HabitSubmittedMsg:
		m.currentView = ViewHabits
		return m, m.createHabit(msg.Input)

	case habitform.FormCancelMsg:
		m.currentView = ViewHabits
		return m, nil

	case habitCreatedMsg:
		m.noteStoreResult(msg.err, "adding habit")
		if m.state.Config.Reminders.Enabled {
			m.state.Reminders.Schedule(msg.habit)
		}
		return m, m.habitList.SetHabits(m.state.Habits.Habits())

	case settings.ToggleThemeMsg:
		return m, m.toggleTheme()

	case themeToggledMsg:
		m.noteStoreResult(msg.err, "toggling theme")
		m.applyTheme(msg.theme)
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		m.commandView.Blur()
		return m, m.executeCommand(string(msg))

	case reminder.FiredMsg:
		tr := m.state.Translator
		m.notice = tr.T("notification.title") + " " +
			tr.T("notification.body", "habitName", msg.HabitName)
		m.state.Logger.Info("reminder fired", zap.String("habit", msg.HabitID))
		return m, m.state.Reminders.WaitForNext()

	case tea.KeyMsg:
		m.notice = ""

		// The form owns every key except ctrl+c and esc while it is open.
		if m.currentView == ViewCreate {
			switch {
			case msg.String() == "ctrl+c":
				return m.quit()
			case key.Matches(msg, m.keys.Back):
				m.currentView = ViewHabits
				return m, nil
			}
			break
		}

		if m.currentView == ViewCommand {
			switch {
			case msg.String() == "ctrl+c":
				return m.quit()
			case key.Matches(msg, m.keys.Back):
				m.currentView = m.previousView
				m.commandView.Blur()
				return m, nil
			}
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()

		case key.Matches(msg, m.keys.Help):
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case key.Matches(msg, m.keys.Command):
			m.previousView = m.currentView
			m.currentView = ViewCommand
			return m, m.commandView.Focus()

		case key.Matches(msg, m.keys.Back):
			if m.currentView == ViewHelp || m.currentView == ViewSettings {
				m.currentView = ViewHabits
				return m, nil
			}

		case key.Matches(msg, m.keys.NextTab):
			switch m.currentView {
			case ViewHabits:
				m.currentView = ViewSettings
			case ViewSettings:
				m.currentView = ViewHabits
			}
			return m, nil

		case key.Matches(msg, m.keys.New):
			if m.currentView == ViewHabits {
				m.previousView = m.currentView
				m.currentView = ViewCreate
				return m, m.habitForm.Start()
			}

		case key.Matches(msg, m.keys.Details):
			if m.currentView == ViewHabits {
				if h, ok := m.habitList.Selected(); ok {
					m.detailView.SetHabit(h)
					m.currentView = ViewDetail
				}
				return m, nil
			}

		case key.Matches(msg, m.keys.ToggleTheme):
			if m.currentView == ViewHabits {
				return m, m.toggleTheme()
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewHabits:
		m.habitList, cmd = m.habitList.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	case ViewCreate:
		m.habitForm, cmd = m.habitForm.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	}

	return m, cmd
}

// executeCommand runs a command palette entry.
func (m *Model) executeCommand(c string) tea.Cmd {
	switch c {
	case command.CmdNew:
		m.previousView = ViewHabits
		m.currentView = ViewCreate
		return m.habitForm.Start()
	case command.CmdComplete:
		h, ok := m.habitList.Selected()
		if !ok || !m.habitList.CanComplete(h) {
			return nil
		}
		return m.completeHabit(h.ID)
	case command.CmdTheme:
		return m.toggleTheme()
	case command.CmdSettings:
		m.currentView = ViewSettings
	case command.CmdHabits:
		m.currentView = ViewHabits
	case command.CmdHelp:
		m.previousView = m.currentView
		m.currentView = ViewHelp
	case command.CmdQuit:
		m.state.Reminders.Stop()
		return tea.Quit
	default:
		m.notice = m.state.Translator.T("status.unknown_command", "command", c)
	}
	return nil
}

// quit stops the reminder goroutines before exiting.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.state.Reminders.Stop()
	return m, tea.Quit
}

// noteStoreResult logs a failed store write and flags the status bar.
func (m *Model) noteStoreResult(err error, action string) {
	if err == nil {
		return
	}
	m.storageErr = true
	m.state.Logger.Error(action, zap.Error(err))
}

// applyTheme rebuilds the styles for t and hands them to every view.
func (m *Model) applyTheme(t model.Theme) {
	m.styles = theme.New(t)
	m.habitList.SetStyles(m.styles)
	m.habitForm.SetStyles(m.styles)
	m.settingsView.SetStyles(m.styles)
	m.settingsView.SetTheme(t)
	m.helpView.SetStyles(m.styles)
	m.commandView.SetStyles(m.styles)
	m.detailView.SetStyles(m.styles)
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "..."
	}

	header := m.layout.RenderHeader(m.styles, m.state.Translator.T("app.title"), m.tabs())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.styles, m.statusText())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewHabits:
		return m.habitList.View()
	case ViewSettings:
		return m.settingsView.View()
	case ViewCreate:
		return m.habitForm.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewDetail:
		return m.detailView.View()
	default:
		return ""
	}
}

// tabs renders the tab strip with the active tab highlighted.
func (m Model) tabs() string {
	tr := m.state.Translator
	active := m.currentView
	switch active {
	case ViewDetail:
		active = ViewHabits
	case ViewCreate, ViewHelp, ViewCommand:
		active = m.previousView
	}

	render := func(v ViewState, label string) string {
		if v == active {
			return m.styles.ActiveTab.Render(label)
		}
		return m.styles.Tab.Render(label)
	}
	return render(ViewHabits, tr.T("tabs.habits")) + render(ViewSettings, tr.T("tabs.settings"))
}

// statusText returns the status bar contents: a pending reminder, the
// storage warning, or keyboard hints.
func (m Model) statusText() string {
	switch {
	case m.notice != "":
		return m.styles.Notice.Render(m.notice)
	case m.storageErr:
		return m.styles.Error.Render(m.state.Translator.T("status.storage_error"))
	default:
		return m.keyHints()
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	var bindings []key.Binding
	switch m.currentView {
	case ViewCreate:
		return m.state.Translator.T("hints.create")
	case ViewCommand:
		return m.state.Translator.T("hints.command")
	case ViewDetail:
		bindings = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Back, m.keys.Quit}
	case ViewHelp:
		bindings = []key.Binding{m.keys.Help, m.keys.Back}
	case ViewSettings:
		bindings = []key.Binding{m.keys.ToggleTheme, m.keys.NextTab, m.keys.Back, m.keys.Quit}
	default:
		bindings = m.keys.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	return strings.Join(hints, " | ")
}
