package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jummah-prayer/server/internal/model"
)

// Sender delivers a fired alert to the user's device channel.
type Sender interface {
	Send(userID int, e Entry) error
}

// ScheduleFunc produces the schedule a refresh should plan against.
type ScheduleFunc func(ctx context.Context) (model.Schedule, error)

// Dispatcher realizes alert entries as one-shot timers, one batch per
// user. Arming a new batch stops every pending timer from the previous
// one first, so re-running on a settings change or date rollover never
// stacks duplicate alerts.
type Dispatcher struct {
	sender Sender

	mu      sync.Mutex
	pending map[int][]*time.Timer
	gen     map[int]uint64
}

func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{
		sender:  sender,
		pending: make(map[int][]*time.Timer),
		gen:     make(map[int]uint64),
	}
}

// Arm replaces the user's pending alerts with timers for the given
// entries. Entries whose fire time is not in the future are skipped.
func (d *Dispatcher) Arm(userID int, entries []Entry, now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.armLocked(userID, entries, now)
}

func (d *Dispatcher) armLocked(userID int, entries []Entry, now time.Time) {
	d.cancelLocked(userID)

	timers := make([]*time.Timer, 0, len(entries))
	for _, e := range entries {
		delay := e.FireAt.Sub(now)
		if delay <= 0 {
			continue
		}
		entry := e
		timers = append(timers, time.AfterFunc(delay, func() {
			if err := d.sender.Send(userID, entry); err != nil {
				log.Error().Err(err).Int("user_id", userID).Str("prayer", string(entry.Prayer)).Msg("failed to deliver prayer alert")
			}
		}))
	}
	d.pending[userID] = timers
}

// Cancel drops all pending alerts for the user.
func (d *Dispatcher) Cancel(userID int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked(userID)
}

func (d *Dispatcher) cancelLocked(userID int) {
	for _, t := range d.pending[userID] {
		t.Stop()
	}
	delete(d.pending, userID)
}

// Pending reports how many timers are armed for the user.
func (d *Dispatcher) Pending(userID int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending[userID])
}

// Refresh fetches a schedule and arms alerts for it. Each call takes a
// new generation number; a fetch that completes after a newer Refresh has
// started for the same user is discarded instead of overwriting the newer
// state.
func (d *Dispatcher) Refresh(ctx context.Context, userID int, prefs model.NotificationSettings, fetch ScheduleFunc, now time.Time) error {
	d.mu.Lock()
	d.gen[userID]++
	gen := d.gen[userID]
	d.mu.Unlock()

	if !prefs.Enabled {
		d.Cancel(userID)
		return nil
	}

	sched, err := fetch(ctx)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gen[userID] != gen {
		log.Debug().Int("user_id", userID).Msg("discarding stale schedule refresh")
		return nil
	}
	d.armLocked(userID, ScheduleAll(sched, prefs, now), now)
	return nil
}
