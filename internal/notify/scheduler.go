// Package notify turns a day's schedule into one-shot prayer alerts and
// delivers them through a pluggable sender.
package notify

import (
	"strconv"
	"time"

	"github.com/jummah-prayer/server/internal/model"
	"github.com/jummah-prayer/server/internal/praytime"
)

// DefaultWarningMinutes is the pre-prayer warning lead time when the user
// has not configured one.
const DefaultWarningMinutes = 15

// Entry is one pending alert. Entries are ephemeral: recomputed from the
// schedule on every run and never persisted.
type Entry struct {
	FireAt time.Time        `json:"fireAt"`
	Prayer model.PrayerName `json:"prayer"`
	Title  string           `json:"title"`
	Body   string           `json:"body"`
	Sound  bool             `json:"sound"`
}

// ScheduleAll computes the alert entries for the five obligatory prayers.
// A prayer whose time-of-day has already passed is rolled forward to
// tomorrow's occurrence. Disabled notifications yield no entries at all.
//
// Each prayer gets up to three entries: a configurable warning, a fixed
// five-minute warning (skipped when it would coincide with the first),
// and one exactly at prayer time.
func ScheduleAll(sched model.Schedule, prefs model.NotificationSettings, now time.Time) []Entry {
	if !prefs.Enabled {
		return nil
	}
	warning := prefs.WarningMinutes
	if warning <= 0 {
		warning = DefaultWarningMinutes
	}

	var entries []Entry
	for _, prayer := range model.ObligatoryPrayers {
		mins, err := praytime.ParseClock(sched.Time(prayer))
		if err != nil {
			continue
		}
		at := time.Date(now.Year(), now.Month(), now.Day(), mins/60, mins%60, 0, 0, now.Location())
		if !at.After(now) {
			at = at.AddDate(0, 0, 1)
		}

		warnAt := at.Add(-time.Duration(warning) * time.Minute)
		if warnAt.After(now) {
			entries = append(entries, Entry{
				FireAt: warnAt,
				Prayer: prayer,
				Title:  string(prayer),
				Body:   minutesBody(warning),
				Sound:  prefs.Sound,
			})
		}

		fiveAt := at.Add(-5 * time.Minute)
		if fiveAt.After(now) && !fiveAt.Equal(warnAt) {
			entries = append(entries, Entry{
				FireAt: fiveAt,
				Prayer: prayer,
				Title:  string(prayer),
				Body:   "Prayer in 5 minutes",
				Sound:  prefs.Sound,
			})
		}

		entries = append(entries, Entry{
			FireAt: at,
			Prayer: prayer,
			Title:  string(prayer),
			Body:   "Time for prayer",
			Sound:  prefs.Sound,
		})
	}
	return entries
}

func minutesBody(minutes int) string {
	return "Prayer in " + strconv.Itoa(minutes) + " minutes"
}
