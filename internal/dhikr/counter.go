// Package dhikr maintains per-user tap counters for a fixed list of
// adhkar, with a daily history and derived statistics.
package dhikr

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
)

// Fixed storage keys, one per logical store.
const (
	CountsKey  = "dhikrCounts"
	HistoryKey = "dhikrHistory"
)

// HistoryEntry records one day's interaction with a dhikr. There is at
// most one entry per (dhikr, date); re-interaction the same day updates
// the entry in place.
type HistoryEntry struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Count     int    `json:"count"`
	Completed bool   `json:"completed"`
}

// Stats is derived by scanning a dhikr's history list.
type Stats struct {
	TotalCompletedDays  int `json:"totalCompletedDays"`
	TotalActiveDays     int `json:"totalActiveDays"`
	Last30DaysActive    int `json:"last30DaysActiveCount"`
	CompletionRate      int `json:"completionRatePercent"`
}

// StateStore is the slice of the persistence layer the counter needs.
type StateStore interface {
	GetState(userID int, key string) ([]byte, error)
	SetState(userID int, key string, value []byte) error
}

// Counter persists per-dhikr running counts and history for a user.
type Counter struct {
	store StateStore
	now   func() time.Time
}

func NewCounter(store StateStore) *Counter {
	return &Counter{store: store, now: time.Now}
}

func (c *Counter) loadCounts(userID int) map[int]int {
	counts := map[int]int{}
	raw, err := c.store.GetState(userID, CountsKey)
	if err != nil || len(raw) == 0 {
		return counts
	}
	if err := json.Unmarshal(raw, &counts); err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("corrupt dhikr counts, resetting")
		return map[int]int{}
	}
	return counts
}

func (c *Counter) saveCounts(userID int, counts map[int]int) error {
	raw, err := json.Marshal(counts)
	if err != nil {
		return err
	}
	return c.store.SetState(userID, CountsKey, raw)
}

func (c *Counter) loadHistory(userID int) map[int][]HistoryEntry {
	history := map[int][]HistoryEntry{}
	raw, err := c.store.GetState(userID, HistoryKey)
	if err != nil || len(raw) == 0 {
		return history
	}
	if err := json.Unmarshal(raw, &history); err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("corrupt dhikr history, resetting")
		return map[int][]HistoryEntry{}
	}
	return history
}

func (c *Counter) saveHistory(userID int, history map[int][]HistoryEntry) error {
	raw, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return c.store.SetState(userID, HistoryKey, raw)
}

func checkIndex(index int) error {
	if index < 0 || index >= len(Definitions) {
		return fmt.Errorf("dhikr: no such dhikr index %d", index)
	}
	return nil
}

// Increment advances the counter by one and upserts today's history entry.
// When the goal is reached the overshoot count is kept (and returned with
// goalReached=true) so the caller can show the acknowledgment; the reset
// to zero happens only in Acknowledge.
func (c *Counter) Increment(userID, index int) (newCount int, goalReached bool, err error) {
	if err := checkIndex(index); err != nil {
		return 0, false, err
	}
	goal := Definitions[index].Goal

	counts := c.loadCounts(userID)
	newCount = counts[index] + 1
	counts[index] = newCount
	if err := c.saveCounts(userID, counts); err != nil {
		return 0, false, err
	}

	today := c.now().Format("2006-01-02")
	if err := c.RecordHistory(userID, index, today, newCount, goal); err != nil {
		return 0, false, err
	}
	return newCount, newCount >= goal, nil
}

// Acknowledge zeroes the counter after a goal-reached acknowledgment.
func (c *Counter) Acknowledge(userID, index int) error {
	return c.Reset(userID, index)
}

// Reset forces the counter to zero unconditionally. No history entry is
// written for an explicit reset.
func (c *Counter) Reset(userID, index int) error {
	if err := checkIndex(index); err != nil {
		return err
	}
	counts := c.loadCounts(userID)
	counts[index] = 0
	return c.saveCounts(userID, counts)
}

// Commit writes a count back when the counter dialog closes; in-dialog
// taps are held client-side until then.
func (c *Counter) Commit(userID, index, count int) error {
	if err := checkIndex(index); err != nil {
		return err
	}
	if count < 0 {
		count = 0
	}
	counts := c.loadCounts(userID)
	counts[index] = count
	return c.saveCounts(userID, counts)
}

// Counts returns the persisted per-dhikr counts.
func (c *Counter) Counts(userID int) map[int]int {
	return c.loadCounts(userID)
}

// RecordHistory upserts the entry for (index, date). An existing entry for
// that date is replaced in place, never duplicated.
func (c *Counter) RecordHistory(userID, index int, date string, count, goal int) error {
	if err := checkIndex(index); err != nil {
		return err
	}
	history := c.loadHistory(userID)
	entries := history[index]

	entry := HistoryEntry{Date: date, Count: count, Completed: count >= goal}
	replaced := false
	for i := range entries {
		if entries[i].Date == date {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}
	history[index] = entries
	return c.saveHistory(userID, history)
}

// GetStats derives completion statistics from a dhikr's history.
func (c *Counter) GetStats(userID, index int) (Stats, error) {
	if err := checkIndex(index); err != nil {
		return Stats{}, err
	}
	entries := c.loadHistory(userID)[index]

	var s Stats
	cutoff := c.now().AddDate(0, 0, -30)
	for _, e := range entries {
		s.TotalActiveDays++
		if e.Completed {
			s.TotalCompletedDays++
		}
		if d, err := time.Parse("2006-01-02", e.Date); err == nil && !d.Before(cutoff) {
			s.Last30DaysActive++
		}
	}
	if s.TotalActiveDays > 0 {
		s.CompletionRate = int(math.Round(float64(s.TotalCompletedDays) / float64(s.TotalActiveDays) * 100))
	}
	return s, nil
}
