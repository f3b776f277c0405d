package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jummah-prayer/server/internal/model"
)

func TestHijriYear(t *testing.T) {
	assert.Equal(t, 1446, HijriYear(2025))
	assert.Equal(t, 1445, HijriYear(2024))
}

func TestRamadanDates(t *testing.T) {
	start, end := RamadanDates(2025, time.UTC)
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.April, 9, 0, 0, 0, 0, time.UTC), end)
}

func TestRamadanCountdownBefore(t *testing.T) {
	now := time.Date(2025, time.March, 8, 12, 0, 0, 0, time.UTC)
	cd := RamadanCountdown(now)
	assert.False(t, cd.Started)
	assert.Equal(t, 1, cd.Days)
	assert.Equal(t, 12, cd.Hours)
	assert.Equal(t, 0, cd.Minutes)
}

func TestRamadanCountdownDuringPointsToNextYear(t *testing.T) {
	now := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	cd := RamadanCountdown(now)
	assert.False(t, cd.Started)
	// counts down to March 10 of the following year
	assert.Equal(t, 360, cd.Days)
}

func TestRamadanDay(t *testing.T) {
	assert.Equal(t, 0, RamadanDay(time.Date(2025, time.March, 9, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, RamadanDay(time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 6, RamadanDay(time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, RamadanDay(time.Date(2025, time.April, 10, 12, 0, 0, 0, time.UTC)))
}

func TestUpcomingBeforeRamadan(t *testing.T) {
	now := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	events := Upcoming(now)
	require.NotEmpty(t, events)

	// sorted by proximity, ramadan first
	assert.Equal(t, "Ramadan", events[0].Name)
	assert.Equal(t, "10.03.2025", events[0].Date)
	for i := 1; i < len(events); i++ {
		assert.GreaterOrEqual(t, events[i].DaysLeft, events[i-1].DaysLeft)
	}

	names := make(map[string]bool)
	for _, e := range events {
		names[e.Name] = true
	}
	assert.True(t, names["Лайлат аль-Кадр"])
	assert.True(t, names["Ид аль-Фитр"])
	assert.True(t, names["Ид аль-Адха"])
}

func TestUpcomingAfterRamadanStart(t *testing.T) {
	now := time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)
	events := Upcoming(now)

	for _, e := range events {
		assert.Greater(t, e.DaysLeft, 0)
		// laylat al-qadr is only listed before ramadan begins
		assert.NotEqual(t, "Лайлат аль-Кадр", e.Name)
	}

	// ramadan itself now points at next year
	for _, e := range events {
		if e.Name == "Ramadan" {
			assert.Equal(t, "10.03.2026", e.Date)
		}
	}
}

func TestFasting(t *testing.T) {
	sched := model.Schedule{Fajr: "05:30", Maghrib: "18:00"}
	ft := Fasting(sched)
	assert.Equal(t, "05:30", ft.Suhur)
	assert.Equal(t, "18:00", ft.Iftar)
}
