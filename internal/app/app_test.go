package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nhle/habits/internal/kv"
	"github.com/nhle/habits/internal/model"
	"github.com/nhle/habits/internal/reminder"
	"github.com/nhle/habits/internal/store"
	"github.com/nhle/habits/internal/ui/command"
	"github.com/nhle/habits/internal/ui/habitform"
	"github.com/nhle/habits/internal/ui/habitlist"
	"github.com/nhle/habits/internal/ui/settings"
)

var fixedNow = time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC)

// failingStorage reads nothing and fails every write.
type failingStorage struct{}

func (failingStorage) GetItem(context.Context, string) (string, bool, error) { return "", false, nil }
func (failingStorage) SetItem(context.Context, string, string) error {
	return errors.New("disk full")
}
func (failingStorage) RemoveItem(context.Context, string) error { return nil }

func testConfig() *model.AppConfig {
	return &model.AppConfig{
		Storage: model.StorageConfig{Path: ":memory:"},
		Display: model.DisplayConfig{Language: "en", Theme: "light"},
	}
}

func newTestState(t *testing.T, storage kv.Storage) *State {
	t.Helper()
	st := NewState(context.Background(), testConfig(), zap.NewNop(),
		WithStorage(storage),
		WithNow(func() time.Time { return fixedNow }),
	)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func newTestModel(t *testing.T, storage kv.Storage) (Model, *State) {
	t.Helper()
	st := newTestState(t, storage)
	m := New(st)
	mdl, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return mdl.(Model), st
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	mdl, cmd := m.Update(msg)
	out, ok := mdl.(Model)
	require.True(t, ok)
	return out, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewStateDefaults(t *testing.T) {
	st := newTestState(t, kv.NewMemoryStorage())

	assert.Empty(t, st.Habits.Habits())
	assert.Equal(t, model.ThemeLight, st.UI.Theme())
	assert.Equal(t, "en", st.Translator.Language().String())
	assert.False(t, st.StorageDegraded())
}

func TestNewStateOpensConfiguredDatabase(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Path = filepath.Join(t.TempDir(), "data", "habits.db")

	st := NewState(context.Background(), cfg, zap.NewNop())
	_, err := st.Habits.AddHabit(context.Background(), model.NewHabit{Name: "Walk", Frequency: model.FrequencyDaily})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	reopened := NewState(context.Background(), cfg, zap.NewNop())
	defer reopened.Close()
	require.Len(t, reopened.Habits.Habits(), 1)
	assert.Equal(t, "Walk", reopened.Habits.Habits()[0].Name)
}

func TestNewStateFallsBackToMemory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	cfg := testConfig()
	cfg.Storage.Path = filepath.Join(blocker, "sub", "habits.db")

	st := NewState(context.Background(), cfg, zap.NewNop())
	defer st.Close()

	_, ok := st.Storage.(*kv.MemoryStorage)
	assert.True(t, ok)
	_, err := st.Habits.AddHabit(context.Background(), model.NewHabit{Name: "Walk"})
	assert.NoError(t, err)

	assert.True(t, st.StorageDegraded())
	assert.ErrorContains(t, st.StorageErr(), "opening")
	assert.Error(t, st.Reset(context.Background()))
}

func TestNewStateUnreadableStateReportsCause(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemoryStorage()
	require.NoError(t, storage.SetItem(ctx, store.HabitStorageKey, `{"state":{"habits":[]},"version":9}`))

	st := newTestState(t, storage)
	assert.True(t, st.StorageDegraded())
	assert.ErrorIs(t, st.StorageErr(), store.ErrUnsupportedVersion)

	require.NoError(t, st.Reset(ctx))
	assert.False(t, st.StorageDegraded())
	assert.NoError(t, st.StorageErr())

	_, err := st.Habits.AddHabit(ctx, model.NewHabit{Name: "Walk"})
	require.NoError(t, err)
	_, ok, err := storage.GetItem(ctx, store.HabitStorageKey)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStorageErrAfterWriteFailure(t *testing.T) {
	st := newTestState(t, failingStorage{})
	assert.NoError(t, st.StorageErr())

	_, err := st.Habits.AddHabit(context.Background(), model.NewHabit{Name: "Walk"})
	require.Error(t, err)
	assert.ErrorIs(t, st.StorageErr(), ErrNotPersisting)
}

func TestNewStateSchedulesReminders(t *testing.T) {
	storage := kv.NewMemoryStorage()
	seed := newTestState(t, storage)
	at := time.Date(2024, time.May, 10, 7, 30, 0, 0, time.UTC)
	_, err := seed.Habits.AddHabit(context.Background(), model.NewHabit{Name: "Stretch", ReminderTime: &at})
	require.NoError(t, err)
	_, err = seed.Habits.AddHabit(context.Background(), model.NewHabit{Name: "Read"})
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Reminders.Enabled = true
	st := NewState(context.Background(), cfg, zap.NewNop(), WithStorage(storage))
	defer st.Close()

	entries := st.Reminders.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Stretch", entries[0].HabitName)
	assert.Equal(t, 7, entries[0].Hour)
	assert.Equal(t, 30, entries[0].Minute)
}

func TestSchemeDetectorSeed(t *testing.T) {
	th, ok := schemeDetector("dark")()
	assert.True(t, ok)
	assert.Equal(t, model.ThemeDark, th)

	th, ok = schemeDetector("light")()
	assert.True(t, ok)
	assert.Equal(t, model.ThemeLight, th)
}

func TestCreateHabitFlow(t *testing.T) {
	m, st := newTestModel(t, kv.NewMemoryStorage())

	m, cmd := update(t, m, runes("n"))
	assert.Equal(t, ViewCreate, m.currentView)
	assert.NotNil(t, cmd)

	m, cmd = update(t, m, habitform.HabitSubmittedMsg{Input: model.NewHabit{
		Name:      "Drink water",
		Frequency: model.FrequencyDaily,
		StartDate: fixedNow,
	}})
	assert.Equal(t, ViewHabits, m.currentView)
	require.NotNil(t, cmd)

	m, _ = update(t, m, cmd())
	require.Len(t, st.Habits.Habits(), 1)
	assert.Contains(t, m.View(), "Drink water")
	assert.Contains(t, m.View(), "0 day streak")
}

func TestCreateCancelReturnsToList(t *testing.T) {
	m, _ := newTestModel(t, kv.NewMemoryStorage())

	m, _ = update(t, m, runes("n"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewHabits, m.currentView)

	m, _ = update(t, m, runes("n"))
	m, _ = update(t, m, habitform.FormCancelMsg{})
	assert.Equal(t, ViewHabits, m.currentView)
}

func TestCompleteHabitFlow(t *testing.T) {
	m, st := newTestModel(t, kv.NewMemoryStorage())
	h, err := st.Habits.AddHabit(context.Background(), model.NewHabit{Name: "Walk"})
	require.NoError(t, err)

	m, cmd := update(t, m, habitlist.CompleteRequestMsg{HabitID: h.ID})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	got, ok := st.Habits.Habit(h.ID)
	require.True(t, ok)
	assert.Equal(t, 1, got.Streak)
	assert.Contains(t, m.View(), "1 day streak")
	assert.Contains(t, m.View(), "done today")
}

func TestToggleThemeFlow(t *testing.T) {
	m, st := newTestModel(t, kv.NewMemoryStorage())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ViewSettings, m.currentView)

	m, cmd := update(t, m, runes("t"))
	require.NotNil(t, cmd)
	assert.Equal(t, settings.ToggleThemeMsg{}, cmd())

	m, cmd = update(t, m, settings.ToggleThemeMsg{})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	assert.Equal(t, model.ThemeDark, st.UI.Theme())
	assert.Contains(t, m.View(), "Dark")
}

func TestStorageFailureShowsWarning(t *testing.T) {
	m, st := newTestModel(t, failingStorage{})

	m, cmd := update(t, m, habitform.HabitSubmittedMsg{Input: model.NewHabit{Name: "Walk"}})
	m, _ = update(t, m, cmd())

	assert.True(t, st.StorageDegraded())
	assert.Len(t, st.Habits.Habits(), 1)
	view := m.View()
	assert.Contains(t, view, "Walk")
	assert.Contains(t, view, "Storage unavailable")
}

func TestUnreadableStateShowsWarningAtStartup(t *testing.T) {
	storage := kv.NewMemoryStorage()
	require.NoError(t, storage.SetItem(context.Background(), store.UIStorageKey, `{"state":{"theme":"neon"},"version":1}`))

	m, _ := newTestModel(t, storage)
	assert.Contains(t, m.View(), "Storage unavailable")
}

func TestReminderNotice(t *testing.T) {
	m, _ := newTestModel(t, kv.NewMemoryStorage())

	m, cmd := update(t, m, reminder.FiredMsg{HabitID: "a", HabitName: "Stretch", At: fixedNow})
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "It's time for: Stretch")

	m, _ = update(t, m, runes("j"))
	assert.NotContains(t, m.View(), "It's time for")
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t, kv.NewMemoryStorage())

	m, _ = update(t, m, runes("?"))
	assert.Equal(t, ViewHelp, m.currentView)
	m, _ = update(t, m, runes("?"))
	assert.Equal(t, ViewHabits, m.currentView)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, kv.NewMemoryStorage())

	_, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestCommandPalette(t *testing.T) {
	m, st := newTestModel(t, kv.NewMemoryStorage())

	m, cmd := update(t, m, runes(":"))
	assert.Equal(t, ViewCommand, m.currentView)
	assert.NotNil(t, cmd)

	m, cmd = update(t, m, command.CommandMsg(command.CmdTheme))
	assert.Equal(t, ViewHabits, m.currentView)
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, model.ThemeDark, st.UI.Theme())

	m, _ = update(t, m, runes(":"))
	m, _ = update(t, m, command.CommandMsg(command.CmdSettings))
	assert.Equal(t, ViewSettings, m.currentView)

	m, _ = update(t, m, runes(":"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewSettings, m.currentView)

	m, _ = update(t, m, runes(":"))
	m, _ = update(t, m, command.CommandMsg("fly"))
	assert.Contains(t, m.View(), "unknown command: fly")
}

func TestPaletteTextFollowsLanguage(t *testing.T) {
	cfg := testConfig()
	cfg.Display.Language = "tr"
	st := NewState(context.Background(), cfg, zap.NewNop(),
		WithStorage(kv.NewMemoryStorage()),
		WithNow(func() time.Time { return fixedNow }),
	)
	defer st.Close()

	m, _ := update(t, New(st), tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = update(t, m, runes(":"))
	view := m.View()
	assert.Contains(t, view, "Komut")
	assert.Contains(t, view, "enter çalıştır")

	m, _ = update(t, m, command.CommandMsg("fly"))
	assert.Contains(t, m.View(), "bilinmeyen komut: fly")
}

func TestDetailView(t *testing.T) {
	m, st := newTestModel(t, kv.NewMemoryStorage())
	m, cmd := update(t, m, habitform.HabitSubmittedMsg{Input: model.NewHabit{
		Name: "Journal", Frequency: model.FrequencyWeekly, StartDate: fixedNow,
	}})
	m, _ = update(t, m, cmd())
	require.Len(t, st.Habits.Habits(), 1)

	m, _ = update(t, m, runes("i"))
	assert.Equal(t, ViewDetail, m.currentView)
	assert.Contains(t, m.View(), "Weekly")

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, ViewHabits, m.currentView)
}
