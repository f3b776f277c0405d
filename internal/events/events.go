// Package events derives the Islamic events calendar: the Ramadan
// countdown, upcoming holidays, and the day's fasting window.
//
// The date arithmetic here is the same deliberately simplified,
// approximate formula the app has always used (a linear year conversion
// and placeholder Ramadan dates), not a true astronomical Hijri
// conversion.
package events

import (
	"math"
	"sort"
	"time"

	"github.com/jummah-prayer/server/internal/model"
)

// Event is one calendar item with a day countdown.
type Event struct {
	Name     string `json:"name"`
	Date     string `json:"date"` // DD.MM.YYYY
	Icon     string `json:"icon"`
	DaysLeft int    `json:"daysLeft"`
}

// Countdown is the time remaining until the next Ramadan.
type Countdown struct {
	Started bool `json:"started"`
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
}

// FastingTimes is the day's suhur/iftar window, keyed to fajr and maghrib.
type FastingTimes struct {
	Suhur string `json:"suhur"`
	Iftar string `json:"iftar"`
}

// HijriYear approximates the Hijri year for a Gregorian year with the
// fixed linear multiplier.
func HijriYear(gregorianYear int) int {
	return int(math.Floor(float64(gregorianYear-622) * 1.030684))
}

// RamadanDates returns the placeholder Ramadan window for a year
// (March 10 through April 9).
func RamadanDates(year int, loc *time.Location) (start, end time.Time) {
	start = time.Date(year, time.March, 10, 0, 0, 0, 0, loc)
	end = time.Date(year, time.April, 9, 0, 0, 0, 0, loc)
	return start, end
}

// nextRamadanStart returns the first Ramadan start after now.
func nextRamadanStart(now time.Time) time.Time {
	start, _ := RamadanDates(now.Year(), now.Location())
	if !now.Before(start) {
		start, _ = RamadanDates(now.Year()+1, now.Location())
	}
	return start
}

// RamadanCountdown counts down to the next Ramadan start.
func RamadanCountdown(now time.Time) Countdown {
	start := nextRamadanStart(now)
	diff := start.Sub(now)
	if diff <= 0 {
		return Countdown{Started: true}
	}
	return Countdown{
		Days:    int(diff / (24 * time.Hour)),
		Hours:   int(diff/time.Hour) % 24,
		Minutes: int(diff/time.Minute) % 60,
		Seconds: int(diff/time.Second) % 60,
	}
}

// Upcoming lists the next occurrences of the tracked events, sorted by
// proximity: Ramadan, Eid al-Fitr (the Ramadan end), Eid al-Adha
// (approximately 70 days after Eid al-Fitr), and Laylat al-Qadr
// (approximately the 27th night of Ramadan).
func Upcoming(now time.Time) []Event {
	loc := now.Location()
	startThis, endThis := RamadanDates(now.Year(), loc)
	startNext, endNext := RamadanDates(now.Year()+1, loc)

	nextRamadan := startThis
	if !now.Before(startThis) {
		nextRamadan = startNext
	}
	eidAlFitr := endThis
	if !now.Before(endThis) {
		eidAlFitr = endNext
	}

	events := []Event{{
		Name:     "Ramadan",
		Date:     nextRamadan.Format("02.01.2006"),
		Icon:     "🌙",
		DaysLeft: daysUntil(now, nextRamadan),
	}}

	if left := daysUntil(now, eidAlFitr); left > 0 {
		events = append(events, Event{
			Name:     "Ид аль-Фитр",
			Date:     eidAlFitr.Format("02.01.2006"),
			Icon:     "🎉",
			DaysLeft: left,
		})
	}

	eidAlAdha := eidAlFitr.AddDate(0, 0, 70)
	if left := daysUntil(now, eidAlAdha); left > 0 {
		events = append(events, Event{
			Name:     "Ид аль-Адха",
			Date:     eidAlAdha.Format("02.01.2006"),
			Icon:     "🕌",
			DaysLeft: left,
		})
	}

	laylatAlQadr := nextRamadan.AddDate(0, 0, 27)
	if left := daysUntil(now, laylatAlQadr); left > 0 && now.Before(nextRamadan) {
		events = append(events, Event{
			Name:     "Лайлат аль-Кадр",
			Date:     laylatAlQadr.Format("02.01.2006"),
			Icon:     "⭐",
			DaysLeft: left,
		})
	}

	sort.Slice(events, func(i, j int) bool { return events[i].DaysLeft < events[j].DaysLeft })
	return events
}

// RamadanDay returns the 1-based day of Ramadan, or 0 outside it.
func RamadanDay(now time.Time) int {
	start, end := RamadanDates(now.Year(), now.Location())
	if now.Before(start) || now.After(end) {
		return 0
	}
	return int(now.Sub(start)/(24*time.Hour)) + 1
}

// Fasting pulls the day's suhur/iftar times from the schedule.
func Fasting(sched model.Schedule) FastingTimes {
	return FastingTimes{Suhur: sched.Fajr, Iftar: sched.Maghrib}
}

func daysUntil(now, target time.Time) int {
	return int(math.Ceil(target.Sub(now).Hours() / 24))
}
