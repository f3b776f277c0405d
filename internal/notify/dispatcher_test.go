package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jummah-prayer/server/internal/model"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []Entry
}

func (r *recordingSender) Send(userID int, e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, e)
	return nil
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func entryIn(d time.Duration, now time.Time) Entry {
	return Entry{FireAt: now.Add(d), Prayer: model.Fajr, Title: "Fajr", Body: "Time for prayer"}
}

func TestArmSkipsPastEntries(t *testing.T) {
	d := NewDispatcher(&recordingSender{})
	now := time.Now()

	d.Arm(1, []Entry{entryIn(-time.Minute, now), entryIn(time.Hour, now)}, now)
	assert.Equal(t, 1, d.Pending(1))
}

func TestArmReplacesPrevious(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender)
	now := time.Now()

	d.Arm(1, []Entry{entryIn(time.Hour, now), entryIn(2*time.Hour, now)}, now)
	require.Equal(t, 2, d.Pending(1))

	// re-arming never stacks timers from the previous batch
	d.Arm(1, []Entry{entryIn(3 * time.Hour, now)}, now)
	assert.Equal(t, 1, d.Pending(1))
}

func TestCancel(t *testing.T) {
	d := NewDispatcher(&recordingSender{})
	now := time.Now()

	d.Arm(1, []Entry{entryIn(time.Hour, now)}, now)
	d.Cancel(1)
	assert.Equal(t, 0, d.Pending(1))
}

func TestTimersFire(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender)
	now := time.Now()

	d.Arm(1, []Entry{entryIn(10*time.Millisecond, now)}, now)
	assert.Eventually(t, func() bool { return sender.count() == 1 },
		time.Second, 5*time.Millisecond)
}

func TestUsersIndependent(t *testing.T) {
	d := NewDispatcher(&recordingSender{})
	now := time.Now()

	d.Arm(1, []Entry{entryIn(time.Hour, now)}, now)
	d.Arm(2, []Entry{entryIn(time.Hour, now), entryIn(2*time.Hour, now)}, now)
	d.Cancel(1)

	assert.Equal(t, 0, d.Pending(1))
	assert.Equal(t, 2, d.Pending(2))
}

func refreshSchedule() model.Schedule {
	return model.Schedule{
		Fajr:    "05:30",
		Sunrise: "07:00",
		Dhuhr:   "12:30",
		Asr:     "15:00",
		Maghrib: "18:00",
		Isha:    "19:30",
	}
}

func TestRefreshArms(t *testing.T) {
	d := NewDispatcher(&recordingSender{})
	now := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.Local)

	fetch := func(ctx context.Context) (model.Schedule, error) {
		return refreshSchedule(), nil
	}
	err := d.Refresh(context.Background(), 1, model.NotificationSettings{Enabled: true, WarningMinutes: 15}, fetch, now)
	require.NoError(t, err)
	assert.Equal(t, 15, d.Pending(1))
}

func TestRefreshDisabledCancels(t *testing.T) {
	d := NewDispatcher(&recordingSender{})
	now := time.Now()
	d.Arm(1, []Entry{entryIn(time.Hour, now)}, now)

	fetchCalled := false
	fetch := func(ctx context.Context) (model.Schedule, error) {
		fetchCalled = true
		return refreshSchedule(), nil
	}
	err := d.Refresh(context.Background(), 1, model.NotificationSettings{Enabled: false}, fetch, now)
	require.NoError(t, err)
	assert.False(t, fetchCalled)
	assert.Equal(t, 0, d.Pending(1))
}

func TestRefreshDiscardsStaleGeneration(t *testing.T) {
	d := NewDispatcher(&recordingSender{})
	now := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.Local)
	enabled := model.NotificationSettings{Enabled: true, WarningMinutes: 15}

	release := make(chan struct{})
	slowDone := make(chan error)
	go func() {
		slowFetch := func(ctx context.Context) (model.Schedule, error) {
			<-release
			return refreshSchedule(), nil
		}
		slowDone <- d.Refresh(context.Background(), 1, enabled, slowFetch, now)
	}()

	// a newer refresh for the same user lands while the old fetch hangs
	time.Sleep(10 * time.Millisecond)
	fastFetch := func(ctx context.Context) (model.Schedule, error) {
		s := refreshSchedule()
		s.Fajr = "05:45"
		return s, nil
	}
	require.NoError(t, d.Refresh(context.Background(), 1, enabled, fastFetch, now))
	armed := d.Pending(1)

	close(release)
	require.NoError(t, <-slowDone)

	// the stale result must not replace the newer batch
	assert.Equal(t, armed, d.Pending(1))
}
