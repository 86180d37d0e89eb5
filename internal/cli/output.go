package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/nhle/habits/internal/model"
)

type outputFormat string

const (
	outputTable outputFormat = "table"
	outputJSON  outputFormat = "json"
	outputYAML  outputFormat = "yaml"
)

func parseOutputFormat(s string) (outputFormat, error) {
	switch f := outputFormat(s); f {
	case outputTable, outputJSON, outputYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

// printHabits writes habits to w in the given format. JSON uses the same
// field names as the persisted state.
func printHabits(w io.Writer, habits []model.Habit, format outputFormat) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(habits)

	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(habits); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()

	default:
		rows := make([][]string, len(habits))
		for i, h := range habits {
			rows[i] = []string{
				h.ID,
				h.Name,
				string(h.Frequency),
				strconv.Itoa(h.Streak),
				formatOptional(h.LastCompleted, model.DayLayout+" "+model.ClockLayout),
				formatOptional(h.ReminderTime, model.ClockLayout),
			}
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("ID", "NAME", "FREQUENCY", "STREAK", "LAST COMPLETED", "REMINDER").
			Rows(rows...)
		_, err := fmt.Fprintln(w, t.Render())
		return err
	}
}

func formatOptional(t *time.Time, layout string) string {
	if t == nil {
		return "-"
	}
	return t.Format(layout)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
