package praytime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jummah-prayer/server/internal/aladhan"
	"github.com/jummah-prayer/server/internal/model"
)

// Cache keeps upstream schedules between requests so the Al Adhan API
// is hit at most once per (location, date, method, madhhab).
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value any, ttl time.Duration)
}

// Source resolves a day's schedule, falling back through three tiers:
// cached upstream response, live Al Adhan fetch, local astronomical
// calculation, and finally the static table. It never returns an error,
// only a progressively coarser schedule.
type Source struct {
	client *aladhan.Client
	cache  Cache
	ttl    time.Duration
}

func NewSource(client *aladhan.Client, cache Cache, ttl time.Duration) *Source {
	return &Source{client: client, cache: cache, ttl: ttl}
}

func cacheKey(date time.Time, loc model.Location) string {
	return fmt.Sprintf("timings:%s:%.4f:%.4f:%d:%d",
		date.Format("2006-01-02"), loc.Latitude, loc.Longitude,
		loc.CalculationMethod, loc.Madhhab)
}

// Schedule returns the times for date at loc. City, coordinates and
// current/next markers on the result are left for the caller to fill.
func (s *Source) Schedule(ctx context.Context, date time.Time, loc model.Location) model.Schedule {
	key := cacheKey(date, loc)

	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, key); ok {
			var cached model.Schedule
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached
			}
			log.Error().Str("key", key).Msg("discarding corrupt cached schedule")
		}
	}

	if s.client != nil {
		sched, err := s.client.Timings(ctx, date, loc)
		if err == nil {
			err = Validate(sched)
			if err == nil {
				s.store(ctx, key, sched)
				return sched
			}
		}
		log.Warn().Err(err).Msg("upstream timings unavailable, computing locally")
	}

	calc := Calculator{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Method:    loc.CalculationMethod,
		Madhhab:   loc.Madhhab,
	}
	sched := calc.Compute(date)
	if err := Validate(sched); err != nil {
		// polar latitudes can leave the solar equations without a solution
		log.Warn().Err(err).Float64("lat", loc.Latitude).Msg("computed schedule invalid, using static table")
		return Fallback(date)
	}
	s.store(ctx, key, sched)
	return sched
}

func (s *Source) store(ctx context.Context, key string, sched model.Schedule) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(sched)
	if err != nil {
		return
	}
	s.cache.Set(ctx, key, string(raw), s.ttl)
}
