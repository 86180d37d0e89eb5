package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(loc *time.Location, y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, loc)
}

func ptr(t time.Time) *time.Time { return &t }

func TestMidnight(t *testing.T) {
	got := Midnight(at(time.UTC, 2024, time.March, 5, 17, 42))
	assert.Equal(t, at(time.UTC, 2024, time.March, 5, 0, 0), got)
}

func TestDayDiff(t *testing.T) {
	now := at(time.UTC, 2024, time.March, 5, 7, 0)

	tests := []struct {
		name string
		last time.Time
		want int
	}{
		{"same day later hour", at(time.UTC, 2024, time.March, 5, 23, 0), 0},
		{"yesterday late", at(time.UTC, 2024, time.March, 4, 23, 59), 1},
		{"yesterday early", at(time.UTC, 2024, time.March, 4, 0, 1), 1},
		{"three days", at(time.UTC, 2024, time.March, 2, 12, 0), 3},
		{"tomorrow", at(time.UTC, 2024, time.March, 6, 8, 0), -1},
		{"across month", at(time.UTC, 2024, time.February, 29, 8, 0), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayDiff(tt.last, now))
		})
	}
}

func TestDayDiffAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// 2024-03-31 is 23 hours long in Berlin.
	last := at(loc, 2024, time.March, 31, 20, 0)
	now := at(loc, 2024, time.April, 1, 9, 0)
	assert.Equal(t, 1, DayDiff(last, now))

	// 2024-10-27 is 25 hours long.
	last = at(loc, 2024, time.October, 27, 20, 0)
	now = at(loc, 2024, time.October, 28, 9, 0)
	assert.Equal(t, 1, DayDiff(last, now))
}

func TestDayDiffUsesNowLocation(t *testing.T) {
	east := time.FixedZone("UTC+3", 3*3600)

	// 22:30 UTC on the 4th is 01:30 on the 5th at UTC+3.
	last := at(time.UTC, 2024, time.March, 4, 22, 30)
	now := at(east, 2024, time.March, 5, 10, 0)
	assert.Equal(t, 0, DayDiff(last, now))
}

func TestNext(t *testing.T) {
	now := at(time.UTC, 2024, time.March, 5, 18, 0)

	tests := []struct {
		name    string
		current int
		last    *time.Time
		want    int
	}{
		{"first completion", 0, nil, 1},
		{"consecutive day", 3, ptr(at(time.UTC, 2024, time.March, 4, 8, 0)), 4},
		{"gap resets", 5, ptr(at(time.UTC, 2024, time.March, 2, 8, 0)), 1},
		{"same day unchanged", 2, ptr(at(time.UTC, 2024, time.March, 5, 9, 0)), 2},
		{"clock went backwards", 7, ptr(at(time.UTC, 2024, time.March, 6, 9, 0)), 7},
		{"nil with stale streak", 9, nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Next(tt.current, tt.last, now))
		})
	}
}

func TestCompletedOn(t *testing.T) {
	now := at(time.UTC, 2024, time.March, 5, 18, 0)

	require.False(t, CompletedOn(nil, now))
	assert.True(t, CompletedOn(ptr(at(time.UTC, 2024, time.March, 5, 0, 0)), now))
	assert.False(t, CompletedOn(ptr(at(time.UTC, 2024, time.March, 4, 23, 59)), now))
	assert.False(t, CompletedOn(ptr(at(time.UTC, 2023, time.March, 5, 12, 0)), now))
}
