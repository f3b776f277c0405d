package praytime

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jummah-prayer/server/internal/model"
)

// State is the derived position of the clock within the day's schedule.
type State struct {
	Current          model.PrayerName `json:"current"`
	Next             model.PrayerName `json:"next"`
	SecondsUntilNext int              `json:"secondsUntilNext"`
}

// ParseClock parses an "HH:MM" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	// upstream sometimes appends a timezone suffix like " (MSK)"
	if idx := strings.Index(s, " "); idx != -1 {
		s = s[:idx]
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return h*60 + m, nil
}

// Validate checks that all six times parse and are non-decreasing in
// prayer order within the day.
func Validate(s model.Schedule) error {
	prev := -1
	for _, name := range model.PrayerOrder {
		mins, err := ParseClock(s.Time(name))
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if mins < prev {
			return fmt.Errorf("%s is earlier than the preceding prayer", name)
		}
		prev = mins
	}
	return nil
}

// DeriveState determines the current and next prayer and the countdown to
// the next one. It is a pure function of the schedule and the clock;
// callers re-invoke it once per second for display.
//
// Before Fajr the current prayer is Isha (yesterday's carries over); after
// Isha the next is tomorrow's Fajr.
func DeriveState(s model.Schedule, now time.Time) (State, error) {
	nowMins := now.Hour()*60 + now.Minute()

	st := State{Current: model.Isha, Next: model.Fajr}
	for _, name := range model.PrayerOrder {
		mins, err := ParseClock(s.Time(name))
		if err != nil {
			return State{}, err
		}
		if mins <= nowMins {
			st.Current = name
		}
	}
	for _, name := range model.PrayerOrder {
		mins, err := ParseClock(s.Time(name))
		if err != nil {
			return State{}, err
		}
		if mins > nowMins {
			st.Next = name
			break
		}
	}

	nextMins, err := ParseClock(s.Time(st.Next))
	if err != nil {
		return State{}, err
	}
	next := time.Date(now.Year(), now.Month(), now.Day(), nextMins/60, nextMins%60, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	st.SecondsUntilNext = int(next.Sub(now) / time.Second)
	return st, nil
}

// Fallback is the static placeholder schedule used when no real schedule
// can be obtained, so callers never have to render a blank state.
func Fallback(date time.Time) model.Schedule {
	return model.Schedule{
		Fajr:    "05:00",
		Sunrise: "06:30",
		Dhuhr:   "12:00",
		Asr:     "15:00",
		Maghrib: "18:00",
		Isha:    "19:30",
		Date:    FormatDate(date),
	}
}

// FormatDate renders a date as DD.MM.YYYY, the display format the clients
// have always used.
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}
