package model

import (
	"fmt"
	"time"
)

// Frequency is how often a habit is meant to be performed.
type Frequency string

// Frequency constants.
const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// ParseFrequency validates a frequency string.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case FrequencyDaily, FrequencyWeekly:
		return Frequency(s), nil
	default:
		return "", fmt.Errorf("unknown frequency %q (want daily or weekly)", s)
	}
}

// Habit is a user-defined recurring activity with a completion streak.
// ID, Frequency, StartDate and ReminderTime are fixed at creation; only
// completion changes Streak and LastCompleted.
type Habit struct {
	ID            string     `json:"id" yaml:"id"`
	Name          string     `json:"name" yaml:"name"`
	Streak        int        `json:"streak" yaml:"streak"`
	LastCompleted *time.Time `json:"lastCompleted" yaml:"last_completed"`
	Frequency     Frequency  `json:"frequency" yaml:"frequency"`
	StartDate     time.Time  `json:"startDate" yaml:"start_date"`

	// ReminderTime carries a time of day; only hour and minute are used.
	ReminderTime *time.Time `json:"reminderTime,omitempty" yaml:"reminder_time,omitempty"`
}

// NewHabit is the caller-supplied part of a habit. The store assigns the
// remaining fields.
type NewHabit struct {
	Name         string
	Frequency    Frequency
	StartDate    time.Time
	ReminderTime *time.Time
}

// HasReminder reports whether a reminder time was chosen at creation.
func (h Habit) HasReminder() bool {
	return h.ReminderTime != nil
}

// Input layouts for dates and times of day.
const (
	DayLayout   = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseDay parses a YYYY-MM-DD date as midnight in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// ParseClock parses an HH:MM time of day and places it on ref's calendar
// day in ref's location.
func ParseClock(s string, ref time.Time) (time.Time, error) {
	c, err := time.Parse(ClockLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (want HH:MM): %w", s, err)
	}
	y, m, d := ref.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, ref.Location()), nil
}
