package endpoints

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jummah-prayer/server/internal/http/api"
	"github.com/jummah-prayer/server/internal/http/api/prayer/packets"
	"github.com/jummah-prayer/server/internal/model"
	"github.com/jummah-prayer/server/internal/notify"
	"github.com/jummah-prayer/server/internal/praytime"
	"github.com/jummah-prayer/server/internal/settings"
)

// PrayerModule mounts the schedule and settings endpoints (JWT required).
func PrayerModule(source *praytime.Source, mgr *settings.Manager, alerts *notify.Dispatcher) api.Module {
	ctl := newPrayerController(source, mgr, alerts)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/prayer-times", ctl.getPrayerTimes)
		c.GET("/settings/location", ctl.getLocation)
		c.PUT("/settings/location", ctl.updateLocation)
		c.GET("/settings/notifications", ctl.getNotifications)
		c.PUT("/settings/notifications", ctl.updateNotifications)
	})
}

type PrayerController struct {
	source *praytime.Source
	mgr    *settings.Manager
	alerts *notify.Dispatcher
}

func newPrayerController(source *praytime.Source, mgr *settings.Manager, alerts *notify.Dispatcher) *PrayerController {
	return &PrayerController{source: source, mgr: mgr, alerts: alerts}
}

// requestLocation starts from the user's saved profile and lets query
// parameters override individual fields, the way clients have always
// passed explicit coordinates.
func (p *PrayerController) requestLocation(ctx *gin.Context, userID int) model.Location {
	loc := p.mgr.Location(userID)
	if v, err := strconv.ParseFloat(ctx.Query("lat"), 64); err == nil {
		loc.Latitude = v
	}
	if v, err := strconv.ParseFloat(ctx.Query("lon"), 64); err == nil {
		loc.Longitude = v
	}
	if city := ctx.Query("city"); city != "" {
		loc.City = city
	}
	if v, err := strconv.Atoi(ctx.Query("method")); err == nil {
		loc.CalculationMethod = v
	}
	if v, err := strconv.Atoi(ctx.Query("madhhab")); err == nil {
		loc.Madhhab = v
	}
	if !loc.Valid() {
		loc = model.DefaultLocation()
	}
	return loc
}

// requestDate reads year/month/day overrides, defaulting to today.
func requestDate(ctx *gin.Context, now time.Time) time.Time {
	year, month, day := now.Date()
	if v, err := strconv.Atoi(ctx.Query("year")); err == nil {
		year = v
	}
	if v, err := strconv.Atoi(ctx.Query("month")); err == nil && v >= 1 && v <= 12 {
		month = time.Month(v)
	}
	if v, err := strconv.Atoi(ctx.Query("day")); err == nil && v >= 1 && v <= 31 {
		day = v
	}
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location())
}

// GET /api/prayer-times
func (p *PrayerController) getPrayerTimes(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	now := time.Now()
	loc := p.requestLocation(ctx, user.ID)
	date := requestDate(ctx, now)

	sched := p.source.Schedule(ctx.Request.Context(), date, loc)
	sched.Date = praytime.FormatDate(date)
	sched.City = loc.City
	sched.Latitude = loc.Latitude
	sched.Longitude = loc.Longitude

	if state, err := praytime.DeriveState(sched, now); err == nil {
		sched.CurrentPrayer = string(state.Current)
		sched.NextPrayer = string(state.Next)
	}

	ctx.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	return packets.PrayerTimesResponse{Success: true, Data: sched}, nil
}

// GET /api/settings/location
func (p *PrayerController) getLocation(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return p.mgr.Location(user.ID), nil
}

// PUT /api/settings/location
func (p *PrayerController) updateLocation(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.UpdateLocationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	loc := p.mgr.Location(user.ID)
	loc.Latitude = *request.Latitude
	loc.Longitude = *request.Longitude
	if request.City != "" {
		loc.City = request.City
	}
	if request.CalculationMethod != nil {
		loc.CalculationMethod = *request.CalculationMethod
	}
	if request.Madhhab != nil {
		loc.Madhhab = *request.Madhhab
	}
	if !loc.Valid() {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid location settings"}
	}

	if err := p.mgr.SaveLocation(user.ID, loc); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save location"}
	}
	p.rearm(ctx.Request.Context(), user.ID)
	return loc, nil
}

// GET /api/settings/notifications
func (p *PrayerController) getNotifications(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return p.mgr.Notifications(user.ID), nil
}

// PUT /api/settings/notifications
func (p *PrayerController) updateNotifications(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.UpdateNotificationsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	prefs := p.mgr.Notifications(user.ID)
	prefs.Enabled = *request.Enabled
	if request.WarningMinutes != nil {
		if *request.WarningMinutes < 1 || *request.WarningMinutes > 120 {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "warningMinutes must be between 1 and 120"}
		}
		prefs.WarningMinutes = *request.WarningMinutes
	}
	if request.Sound != nil {
		prefs.Sound = *request.Sound
	}

	if err := p.mgr.SaveNotifications(user.ID, prefs); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save notification settings"}
	}
	p.rearm(ctx.Request.Context(), user.ID)
	return prefs, nil
}

// rearm re-plans the user's alert timers against the schedule implied
// by their current settings. Stale in-flight refreshes are discarded by
// the dispatcher's generation counter.
func (p *PrayerController) rearm(ctx context.Context, userID int) {
	if p.alerts == nil {
		return
	}
	prefs := p.mgr.Notifications(userID)
	fetch := func(fctx context.Context) (model.Schedule, error) {
		loc := p.mgr.Location(userID)
		now := time.Now()
		sched := p.source.Schedule(fctx, now, loc)
		sched.Date = praytime.FormatDate(now)
		return sched, nil
	}
	if err := p.alerts.Refresh(ctx, userID, prefs, fetch, time.Now()); err != nil {
		log.Error().Err(err).Int("user", userID).Msg("could not refresh alert timers")
	}
}
