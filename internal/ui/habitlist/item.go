package habitlist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/habits/internal/i18n"
	"github.com/nhle/habits/internal/model"
	"github.com/nhle/habits/internal/streak"
	"github.com/nhle/habits/internal/theme"
)

// StreakGoal is the streak at which the progress bar is full.
const StreakGoal = 30

// Progress returns the filled fraction of the progress bar for a streak.
func Progress(s int) float64 {
	return min(float64(s)/StreakGoal, 1)
}

// Item wraps a model.Habit so it can be used in a bubbles/list.
type Item struct {
	Habit model.Habit
}

// FilterValue returns the string used for fuzzy filtering.
func (i Item) FilterValue() string { return i.Habit.Name }

// Delegate implements list.ItemDelegate for habit cards.
type Delegate struct {
	styles theme.Styles
	tr     i18n.Translator
	now    func() time.Time
	bar    progress.Model
}

func newDelegate(styles theme.Styles, tr i18n.Translator, now func() time.Time, width int) Delegate {
	bar := progress.New(
		progress.WithSolidFill(string(styles.Palette.Primary)),
		progress.WithoutPercentage(),
	)
	bar.Width = max(width-8, 10)
	bar.EmptyColor = string(styles.Palette.Border)

	return Delegate{styles: styles, tr: tr, now: now, bar: bar}
}

// Height returns the number of lines each item takes.
func (d Delegate) Height() int { return 2 }

// Spacing returns the number of blank lines between items.
func (d Delegate) Spacing() int { return 1 }

// Update handles per-item messages (unused).
func (d Delegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a habit card: name and completion mark on the first line,
// streak and progress bar on the second.
func (d Delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(Item)
	if !ok {
		return
	}
	h := it.Habit

	mark := "[ ]"
	status := ""
	if streak.CompletedOn(h.LastCompleted, d.now()) {
		mark = d.styles.Done.Render("[✓]")
		status = d.styles.Done.Render(" " + d.tr.T("habit.done_today"))
	}

	name := d.styles.HabitName.Render(h.Name)
	line1 := fmt.Sprintf("%s %s%s", mark, name, status)

	streakText := d.styles.Streak.Render("🔥 " + d.tr.T("habit.streak", "count", h.Streak))
	line2 := lipgloss.JoinHorizontal(lipgloss.Top,
		streakText, "  ", d.bar.ViewAs(Progress(h.Streak)))

	card := d.styles.Card
	if index == m.Index() {
		card = d.styles.SelectedCard
	}
	// The card border is drawn only on the left so each item stays two lines.
	card = card.Border(lipgloss.ThickBorder(), false, false, false, true).Padding(0, 1)

	fmt.Fprint(w, card.Render(line1+"\n"+line2))
}
