package endpoints

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jummah-prayer/server/internal/events"
	"github.com/jummah-prayer/server/internal/http/api"
	"github.com/jummah-prayer/server/internal/model"
	"github.com/jummah-prayer/server/internal/praytime"
)

// CalendarModule mounts the public Islamic calendar endpoints.
func CalendarModule(source *praytime.Source) api.Module {
	ctl := &CalendarController{source: source}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/events", ctl.listEvents)
		c.PUBLIC_GET("/events/ramadan", ctl.getRamadan)
	})
}

type CalendarController struct {
	source *praytime.Source
}

// GET /api/events
func (e *CalendarController) listEvents(ctx *gin.Context) (any, *api.APIError) {
	now := time.Now()
	return gin.H{
		"hijriYear": events.HijriYear(now.Year()),
		"events":    events.Upcoming(now),
	}, nil
}

// GET /api/events/ramadan
// With lat/lon query parameters the response also carries the fasting
// window for today at that location.
func (e *CalendarController) getRamadan(ctx *gin.Context) (any, *api.APIError) {
	now := time.Now()
	resp := gin.H{
		"countdown": events.RamadanCountdown(now),
	}
	if day := events.RamadanDay(now); day > 0 {
		resp["day"] = day
	}

	lat, errLat := strconv.ParseFloat(ctx.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(ctx.Query("lon"), 64)
	if errLat == nil && errLon == nil {
		loc := model.DefaultLocation()
		loc.Latitude = lat
		loc.Longitude = lon
		if loc.Valid() {
			sched := e.source.Schedule(ctx.Request.Context(), now, loc)
			resp["fasting"] = events.Fasting(sched)
		}
	}
	return resp, nil
}
