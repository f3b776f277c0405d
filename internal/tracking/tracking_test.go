package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	data map[int]map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[int]map[string][]byte{}}
}

func (m *memoryStore) GetState(userID int, key string) ([]byte, error) {
	return m.data[userID][key], nil
}

func (m *memoryStore) SetState(userID int, key string, value []byte) error {
	if m.data[userID] == nil {
		m.data[userID] = map[string][]byte{}
	}
	m.data[userID][key] = value
	return nil
}

const user = 1

func TestMarkAndDayData(t *testing.T) {
	tracker := NewTracker(newMemoryStore())

	require.NoError(t, tracker.MarkCompleted(user, "2025-01-15", "Fajr"))
	require.NoError(t, tracker.MarkMissed(user, "2025-01-15", "dhuhr"))

	day := tracker.DayData(user, "2025-01-15")
	assert.Equal(t, map[string]bool{"fajr": true, "dhuhr": false}, day)

	// other days stay empty but never nil
	other := tracker.DayData(user, "2025-01-16")
	assert.NotNil(t, other)
	assert.Empty(t, other)
}

func TestMarkIdempotent(t *testing.T) {
	tracker := NewTracker(newMemoryStore())

	require.NoError(t, tracker.MarkCompleted(user, "2025-01-15", "Fajr"))
	require.NoError(t, tracker.MarkCompleted(user, "2025-01-15", "Fajr"))

	stats := tracker.MonthStats(user, 2025, time.January)
	assert.Equal(t, Stats{Total: 1, Completed: 1, Missed: 0, Percentage: 100}, stats)
}

func TestMarkOverwrites(t *testing.T) {
	tracker := NewTracker(newMemoryStore())

	require.NoError(t, tracker.MarkCompleted(user, "2025-01-15", "Fajr"))
	require.NoError(t, tracker.MarkMissed(user, "2025-01-15", "Fajr"))

	day := tracker.DayData(user, "2025-01-15")
	assert.Equal(t, map[string]bool{"fajr": false}, day)
}

func TestSunriseNotTracked(t *testing.T) {
	tracker := NewTracker(newMemoryStore())

	require.NoError(t, tracker.MarkCompleted(user, "2025-01-15", "Sunrise"))
	require.NoError(t, tracker.MarkCompleted(user, "2025-01-15", "nonsense"))

	assert.Empty(t, tracker.DayData(user, "2025-01-15"))
}

func TestClearMarkPrunesEmptyDay(t *testing.T) {
	store := newMemoryStore()
	tracker := NewTracker(store)

	require.NoError(t, tracker.MarkCompleted(user, "2025-01-15", "Fajr"))
	require.NoError(t, tracker.ClearMark(user, "2025-01-15", "Fajr"))

	assert.Empty(t, tracker.DayData(user, "2025-01-15"))
	assert.Equal(t, "{}", string(store.data[user][StorageKey]))
}

func TestMonthStatsEmpty(t *testing.T) {
	tracker := NewTracker(newMemoryStore())
	stats := tracker.MonthStats(user, 2025, time.February)
	assert.Equal(t, Stats{}, stats)
}

func TestMonthStatsLeapFebruary(t *testing.T) {
	tracker := NewTracker(newMemoryStore())

	// Feb 29 exists in 2024 and must be counted
	require.NoError(t, tracker.MarkCompleted(user, "2024-02-29", "Fajr"))
	require.NoError(t, tracker.MarkMissed(user, "2024-02-29", "Isha"))

	stats := tracker.MonthStats(user, 2024, time.February)
	assert.Equal(t, Stats{Total: 2, Completed: 1, Missed: 1, Percentage: 50}, stats)
}

func TestMonthStatsRounding(t *testing.T) {
	tracker := NewTracker(newMemoryStore())

	require.NoError(t, tracker.MarkCompleted(user, "2025-01-01", "Fajr"))
	require.NoError(t, tracker.MarkCompleted(user, "2025-01-01", "Dhuhr"))
	require.NoError(t, tracker.MarkMissed(user, "2025-01-01", "Asr"))

	stats := tracker.MonthStats(user, 2025, time.January)
	// 2/3 rounds to 67
	assert.Equal(t, 67, stats.Percentage)
}

func TestWeekStats(t *testing.T) {
	tracker := NewTracker(newMemoryStore())

	monday := time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC)
	require.NoError(t, tracker.MarkCompleted(user, "2025-01-13", "Fajr"))
	require.NoError(t, tracker.MarkMissed(user, "2025-01-15", "Isha"))
	// outside the window
	require.NoError(t, tracker.MarkCompleted(user, "2025-01-20", "Fajr"))

	week := tracker.WeekStats(user, monday)
	assert.Equal(t, 2, week.Total)
	assert.Equal(t, 1, week.Completed)
	assert.Equal(t, 1, week.Missed)
	assert.Equal(t, 50, week.Percentage)

	require.Len(t, week.Days, 7)
	assert.Equal(t, "2025-01-13", week.Days[0].Date)
	assert.Equal(t, map[string]bool{"fajr": true}, week.Days[0].Prayers)
	assert.Equal(t, "2025-01-19", week.Days[6].Date)
	assert.Empty(t, week.Days[6].Prayers)
}

func TestCorruptLogResets(t *testing.T) {
	store := newMemoryStore()
	require.NoError(t, store.SetState(user, StorageKey, []byte("{broken")))
	tracker := NewTracker(store)

	assert.Empty(t, tracker.DayData(user, "2025-01-15"))
	require.NoError(t, tracker.MarkCompleted(user, "2025-01-15", "Fajr"))
	assert.Equal(t, map[string]bool{"fajr": true}, tracker.DayData(user, "2025-01-15"))
}

func TestUsersIsolated(t *testing.T) {
	tracker := NewTracker(newMemoryStore())

	require.NoError(t, tracker.MarkCompleted(1, "2025-01-15", "Fajr"))
	assert.Empty(t, tracker.DayData(2, "2025-01-15"))
}
