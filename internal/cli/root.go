// Package cli wires the habits command line: the interactive TUI by default
// and headless subcommands for scripting.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nhle/habits/internal/app"
	"github.com/nhle/habits/internal/logging"
	"github.com/nhle/habits/internal/model"
)

// runtime carries the flag values and the state built from them for one
// command invocation.
type runtime struct {
	configPath string
	dbPath     string
	lang       string

	now         func() time.Time
	interactive func() bool
	runTUI      func(*app.State) error

	state  *app.State
	logger *zap.Logger
}

func defaultRuntime() *runtime {
	return &runtime{
		now:         time.Now,
		interactive: stdinIsTerminal,
		runTUI:      runProgram,
	}
}

// Execute builds the root command and runs it against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand returns the habits command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(defaultRuntime())
}

func newRootCommand(rt *runtime) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "habits",
		Short: "Track daily habits and streaks",
		Long: `habits keeps a list of habits and counts how many consecutive days
each one was completed.

Run without arguments for the interactive view. When stdin is not a
terminal the habit list is printed instead.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return rt.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !rt.interactive() {
				return printHabits(cmd.OutOrStdout(), rt.state.Habits.Habits(), outputTable)
			}
			return rt.runTUI(rt.state)
		},
	}

	rootCmd.PersistentFlags().StringVar(&rt.configPath, "config", model.DefaultConfigPath(), "config file")
	rootCmd.PersistentFlags().StringVar(&rt.dbPath, "db", "", "database file (overrides storage.path)")
	rootCmd.PersistentFlags().StringVar(&rt.lang, "lang", "", "display language, e.g. en or tr (overrides display.language)")

	rootCmd.AddCommand(newAddCommand(rt))
	rootCmd.AddCommand(newCompleteCommand(rt))
	rootCmd.AddCommand(newListCommand(rt))
	rootCmd.AddCommand(newThemeCommand(rt))
	rootCmd.AddCommand(newConfigCommand(rt))
	rootCmd.AddCommand(newResetCommand(rt))

	return rootCmd
}

// open loads configuration and builds the application state. Commands
// annotated with skipState only need the flags.
func (rt *runtime) open(cmd *cobra.Command) error {
	if cmd.Annotations[skipState] == "true" {
		return nil
	}

	cfg, err := model.LoadConfig(rt.configPath)
	if err != nil {
		return err
	}
	if rt.dbPath != "" {
		cfg.Storage.Path = rt.dbPath
	}
	if rt.lang != "" {
		cfg.Display.Language = rt.lang
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	rt.logger = logger
	rt.state = app.NewState(ctx(cmd), cfg, logger, app.WithNow(rt.now))

	// The TUI shows storage problems in its status bar. Headless commands
	// would otherwise report success for changes that were never saved.
	if err := rt.state.StorageErr(); err != nil && !rt.tolerates(cmd) {
		_ = rt.close()
		return fmt.Errorf("storage unavailable (run 'habits reset' to discard unreadable data): %w", err)
	}
	return nil
}

// tolerates reports whether cmd can run while storage is degraded.
func (rt *runtime) tolerates(cmd *cobra.Command) bool {
	if cmd.Annotations[degradedOK] == "true" {
		return true
	}
	return !cmd.HasParent() && rt.interactive()
}

func (rt *runtime) close() error {
	if rt.state == nil {
		return nil
	}
	err := rt.state.Close()
	_ = rt.logger.Sync()
	rt.state = nil
	return err
}

// ctx returns the command context, which cobra leaves nil when Execute
// is used instead of ExecuteContext.
func ctx(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}

// Command annotations.
const (
	// skipState marks commands that must not open the database.
	skipState = "habits/skip-state"
	// degradedOK marks commands that still run when stored state is
	// unreadable.
	degradedOK = "habits/degraded-ok"
)

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func runProgram(st *app.State) error {
	p := tea.NewProgram(app.New(st), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
