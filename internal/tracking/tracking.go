// Package tracking keeps the per-user prayer completion log and derives
// weekly and monthly statistics from it.
package tracking

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jummah-prayer/server/internal/model"
)

// StorageKey is the fixed key the log is persisted under.
const StorageKey = "prayerTracking"

// Log maps a YYYY-MM-DD date key to the marks for that day. true means
// completed, false means explicitly missed; an absent prayer is unmarked.
// A day with no marks is pruned rather than kept as an empty map.
type Log map[string]map[string]bool

// Stats is an aggregate over explicitly marked (day, prayer) pairs.
// Unmarked pairs are excluded from the total, not counted as missed.
type Stats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Missed     int `json:"missed"`
	Percentage int `json:"percentage"`
}

// DayBreakdown is one day's slice of a week aggregate.
type DayBreakdown struct {
	Date    string          `json:"date"`
	Prayers map[string]bool `json:"prayers"`
}

// WeekStats is the aggregate over a fixed 7-day window.
type WeekStats struct {
	Stats
	Days []DayBreakdown `json:"weekData"`
}

// DateKey formats a date the way log entries are keyed.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// obligatory reports whether name (case-insensitive) is one of the five
// tracked prayers, and returns its canonical lower-case form.
func obligatory(name string) (string, bool) {
	n := strings.ToLower(name)
	for _, p := range model.ObligatoryPrayers {
		if n == strings.ToLower(string(p)) {
			return n, true
		}
	}
	return "", false
}

func (l Log) set(date, prayer string, completed bool) {
	name, ok := obligatory(prayer)
	if !ok {
		return
	}
	day, ok := l[date]
	if !ok {
		day = make(map[string]bool)
		l[date] = day
	}
	day[name] = completed
}

func (l Log) clear(date, prayer string) {
	name, ok := obligatory(prayer)
	if !ok {
		return
	}
	day, ok := l[date]
	if !ok {
		return
	}
	delete(day, name)
	if len(day) == 0 {
		delete(l, date)
	}
}

// DayData returns the marks for a date. It never returns a nil map.
func (l Log) DayData(date string) map[string]bool {
	day := make(map[string]bool, len(l[date]))
	for k, v := range l[date] {
		day[k] = v
	}
	return day
}

// MonthStats aggregates every calendar day of the month (1-based).
func (l Log) MonthStats(year int, month time.Month) Stats {
	var s Stats
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	for day := 1; day <= daysInMonth; day++ {
		key := DateKey(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
		l.tally(key, &s, nil)
	}
	s.finish()
	return s
}

// WeekStats aggregates a 7-day window starting at startDate. The caller
// supplies the window's Monday; no normalization happens here.
func (l Log) WeekStats(startDate time.Time) WeekStats {
	var w WeekStats
	w.Days = make([]DayBreakdown, 0, 7)
	for i := 0; i < 7; i++ {
		key := DateKey(startDate.AddDate(0, 0, i))
		day := DayBreakdown{Date: key, Prayers: make(map[string]bool)}
		l.tally(key, &w.Stats, day.Prayers)
		w.Days = append(w.Days, day)
	}
	w.Stats.finish()
	return w
}

func (l Log) tally(dateKey string, s *Stats, out map[string]bool) {
	day := l[dateKey]
	for _, p := range model.ObligatoryPrayers {
		name := strings.ToLower(string(p))
		completed, marked := day[name]
		if !marked {
			continue
		}
		s.Total++
		if completed {
			s.Completed++
		}
		if out != nil {
			out[name] = completed
		}
	}
}

func (s *Stats) finish() {
	s.Missed = s.Total - s.Completed
	if s.Total > 0 {
		s.Percentage = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
}

// StateStore is the slice of the persistence layer the tracker needs.
type StateStore interface {
	GetState(userID int, key string) ([]byte, error)
	SetState(userID int, key string, value []byte) error
}

// Tracker persists a user's completion log through a state store. Every
// mutation writes the full log back synchronously before returning, the
// same whole-value semantics the storage has always had; concurrent
// writers are not coordinated and the last one wins.
type Tracker struct {
	store StateStore
}

func NewTracker(store StateStore) *Tracker {
	return &Tracker{store: store}
}

// load returns the stored log, degrading to an empty log on a missing or
// corrupt value.
func (t *Tracker) load(userID int) Log {
	raw, err := t.store.GetState(userID, StorageKey)
	if err != nil || len(raw) == 0 {
		return Log{}
	}
	var l Log
	if err := json.Unmarshal(raw, &l); err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("corrupt tracking log, resetting")
		return Log{}
	}
	if l == nil {
		l = Log{}
	}
	return l
}

func (t *Tracker) save(userID int, l Log) error {
	raw, err := json.Marshal(l)
	if err != nil {
		return err
	}
	return t.store.SetState(userID, StorageKey, raw)
}

// MarkCompleted records a completed prayer. Unknown prayer names are a
// silent no-op.
func (t *Tracker) MarkCompleted(userID int, date, prayer string) error {
	l := t.load(userID)
	l.set(date, prayer, true)
	return t.save(userID, l)
}

// MarkMissed records an explicitly missed prayer.
func (t *Tracker) MarkMissed(userID int, date, prayer string) error {
	l := t.load(userID)
	l.set(date, prayer, false)
	return t.save(userID, l)
}

// ClearMark removes a mark; an emptied day is pruned from the log.
func (t *Tracker) ClearMark(userID int, date, prayer string) error {
	l := t.load(userID)
	l.clear(date, prayer)
	return t.save(userID, l)
}

func (t *Tracker) DayData(userID int, date string) map[string]bool {
	return t.load(userID).DayData(date)
}

func (t *Tracker) MonthStats(userID, year int, month time.Month) Stats {
	return t.load(userID).MonthStats(year, month)
}

func (t *Tracker) WeekStats(userID int, startDate time.Time) WeekStats {
	return t.load(userID).WeekStats(startDate)
}
