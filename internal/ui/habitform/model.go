package habitform

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/habits/internal/i18n"
	"github.com/nhle/habits/internal/model"
	"github.com/nhle/habits/internal/theme"
)

// HabitSubmittedMsg is dispatched when the create form is saved.
type HabitSubmittedMsg struct {
	Input model.NewHabit
}

// FormCancelMsg is dispatched when the user cancels the form.
type FormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name      string
	frequency model.Frequency
	startDate string
	reminder  string
}

// Model is the Bubble Tea model for the create-habit form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	tr     i18n.Translator
	styles theme.Styles
	now    func() time.Time
	width  int
	height int
}

// New creates a new habit form model.
func New(tr i18n.Translator, styles theme.Styles, now func() time.Time, width, height int) Model {
	return Model{
		fb:     &formBindings{frequency: model.FrequencyDaily},
		tr:     tr,
		styles: styles,
		now:    now,
		width:  width,
		height: height,
	}
}

// Start resets the fields and builds a fresh form. The start date
// defaults to today.
func (m *Model) Start() tea.Cmd {
	m.fb.name = ""
	m.fb.frequency = model.FrequencyDaily
	m.fb.startDate = m.now().Format(model.DayLayout)
	m.fb.reminder = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the habit form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m, m.handleSubmit()
	case huh.StateAborted:
		return m, func() tea.Msg { return FormCancelMsg{} }
	}

	return m, cmd
}

// View renders the habit form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	content := m.styles.Title.Render(m.tr.T("create.title")) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.form != nil {
		m.form = m.form.WithWidth(m.formWidth()).WithHeight(m.formHeight())
	}
}

// SetStyles swaps the styles after a theme change.
func (m *Model) SetStyles(s theme.Styles) {
	m.styles = s
}

func (m *Model) buildForm() *huh.Form {
	loc := m.now().Location()

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(m.tr.T("create.name")).
				Placeholder(m.tr.T("create.name_placeholder")).
				Value(&m.fb.name).
				Validate(validateName(m.tr)),
			huh.NewSelect[model.Frequency]().
				Title(m.tr.T("create.frequency")).
				Options(
					huh.NewOption(m.tr.T("create.daily"), model.FrequencyDaily),
					huh.NewOption(m.tr.T("create.weekly"), model.FrequencyWeekly),
				).
				Value(&m.fb.frequency),
			huh.NewInput().
				Title(m.tr.T("create.start_date")).
				Placeholder(model.DayLayout).
				Value(&m.fb.startDate).
				Validate(validateDate(m.tr, loc)),
			huh.NewInput().
				Title(m.tr.T("create.reminder")).
				Placeholder(m.tr.T("create.select_time")+" (HH:MM)").
				Value(&m.fb.reminder).
				Validate(validateOptionalClock(m.tr)),
		),
	).
		WithWidth(m.formWidth()).
		WithHeight(m.formHeight()).
		WithShowHelp(true)
}

func (m Model) handleSubmit() tea.Cmd {
	input, err := m.input()
	if err != nil {
		// The validators reject bad input before completion; reaching
		// here means the bindings changed underneath the form.
		return func() tea.Msg { return FormCancelMsg{} }
	}
	return func() tea.Msg { return HabitSubmittedMsg{Input: input} }
}

// input converts the bound field values into a model.NewHabit.
func (m Model) input() (model.NewHabit, error) {
	now := m.now()

	start, err := model.ParseDay(strings.TrimSpace(m.fb.startDate), now.Location())
	if err != nil {
		return model.NewHabit{}, err
	}

	in := model.NewHabit{
		Name:      strings.TrimSpace(m.fb.name),
		Frequency: m.fb.frequency,
		StartDate: start,
	}

	if r := strings.TrimSpace(m.fb.reminder); r != "" {
		c, err := model.ParseClock(r, now)
		if err != nil {
			return model.NewHabit{}, err
		}
		in.ReminderTime = &c
	}

	return in, nil
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 100)
}

func (m Model) formHeight() int {
	return max(m.height-4, 10)
}

func validateName(tr i18n.Translator) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(tr.T("create.error.empty_name"))
		}
		return nil
	}
}

func validateDate(tr i18n.Translator, loc *time.Location) func(string) error {
	return func(s string) error {
		if _, err := model.ParseDay(strings.TrimSpace(s), loc); err != nil {
			return errors.New(tr.T("create.error.invalid_date"))
		}
		return nil
	}
}

func validateOptionalClock(tr i18n.Translator) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		if _, err := model.ParseClock(s, time.Now()); err != nil {
			return errors.New(tr.T("create.error.invalid_time"))
		}
		return nil
	}
}
