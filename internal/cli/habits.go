package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/habits/internal/model"
	"github.com/nhle/habits/internal/streak"
)

func newAddCommand(rt *runtime) *cobra.Command {
	var (
		frequency string
		start     string
		reminder  string
	)

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a habit",
		Example: `  habits add "Drink water"
  habits add Stretch --reminder 07:30
  habits add "Long run" --frequency weekly --start 2024-06-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr := rt.state.Translator
			now := rt.now()

			name := strings.TrimSpace(args[0])
			if name == "" {
				return errors.New(tr.T("create.error.empty_name"))
			}

			freq, err := model.ParseFrequency(frequency)
			if err != nil {
				return err
			}

			in := model.NewHabit{Name: name, Frequency: freq, StartDate: streak.Midnight(now)}
			if start != "" {
				if in.StartDate, err = model.ParseDay(start, now.Location()); err != nil {
					return err
				}
			}
			if reminder != "" {
				r, err := model.ParseClock(reminder, now)
				if err != nil {
					return err
				}
				in.ReminderTime = &r
			}

			h, err := rt.state.Habits.AddHabit(ctx(cmd), in)
			if err != nil {
				return fmt.Errorf("saving habit: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", h.ID, h.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&frequency, "frequency", string(model.FrequencyDaily), "daily or weekly")
	cmd.Flags().StringVar(&start, "start", "", "start date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&reminder, "reminder", "", "daily reminder time, HH:MM")

	return cmd
}

func newCompleteCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "complete ID",
		Short: "Mark a habit as done today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, found, err := rt.state.Habits.CompleteHabit(ctx(cmd), args[0])
			if err != nil {
				return fmt.Errorf("saving completion: %w", err)
			}
			if !found {
				return fmt.Errorf("no habit with id %q", args[0])
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n",
				h.Name, rt.state.Translator.T("habit.streak", "count", h.Streak))
			return nil
		},
	}
}

func newListCommand(rt *runtime) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print all habits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(output)
			if err != nil {
				return err
			}
			return printHabits(cmd.OutOrStdout(), rt.state.Habits.Habits(), format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(outputTable), "table, json or yaml")

	return cmd
}

func newThemeCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Print the current theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), rt.state.UI.Theme())
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := rt.state.UI.ToggleTheme(ctx(cmd))
			if err != nil {
				return fmt.Errorf("saving theme: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t)
			return nil
		},
	})

	return cmd
}

func newConfigCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a default configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipState: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && fileExists(rt.configPath) {
				return fmt.Errorf("%s already exists (use --force to overwrite)", rt.configPath)
			}
			if err := model.SaveConfig(rt.configPath, model.DefaultAppConfig()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rt.configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}

func newResetCommand(rt *runtime) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all habits and the theme preference",
		Long: `reset removes every habit and the saved theme from the database. It
also discards stored state this version cannot read, such as data written
by a newer release.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{degradedOK: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset deletes all habits; pass --yes to confirm")
			}
			if err := rt.state.Reset(ctx(cmd)); err != nil {
				return fmt.Errorf("resetting: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "reset")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting all data")

	return cmd
}
