package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jummah-prayer/server/internal/http/api"
	"github.com/jummah-prayer/server/internal/http/api/tracker/packets"
	"github.com/jummah-prayer/server/internal/model"
	"github.com/jummah-prayer/server/internal/tracking"
)

// TrackerModule mounts the completion-log endpoints (JWT required).
func TrackerModule(tracker *tracking.Tracker) api.Module {
	ctl := &TrackerController{tracker: tracker}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/tracker/mark", ctl.markPrayer)
		c.DELETE("/tracker/mark", ctl.clearMark)
		c.GET("/tracker/day", ctl.getDay)
		c.GET("/tracker/stats/month", ctl.getMonthStats)
		c.GET("/tracker/stats/week", ctl.getWeekStats)
	})
}

type TrackerController struct {
	tracker *tracking.Tracker
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// POST /api/tracker/mark
func (t *TrackerController) markPrayer(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.MarkRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if !validDate(request.Date) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "date must be YYYY-MM-DD"}
	}

	var err error
	if *request.Completed {
		err = t.tracker.MarkCompleted(user.ID, request.Date, request.Prayer)
	} else {
		err = t.tracker.MarkMissed(user.ID, request.Date, request.Prayer)
	}
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save mark"}
	}
	return packets.DayResponse{Date: request.Date, Prayers: t.tracker.DayData(user.ID, request.Date)}, nil
}

// DELETE /api/tracker/mark
func (t *TrackerController) clearMark(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.ClearMarkRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if !validDate(request.Date) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "date must be YYYY-MM-DD"}
	}

	if err := t.tracker.ClearMark(user.ID, request.Date, request.Prayer); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not clear mark"}
	}
	return packets.DayResponse{Date: request.Date, Prayers: t.tracker.DayData(user.ID, request.Date)}, nil
}

// GET /api/tracker/day?date=YYYY-MM-DD
func (t *TrackerController) getDay(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	date := ctx.Query("date")
	if date == "" {
		date = tracking.DateKey(time.Now())
	}
	if !validDate(date) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "date must be YYYY-MM-DD"}
	}
	return packets.DayResponse{Date: date, Prayers: t.tracker.DayData(user.ID, date)}, nil
}

// GET /api/tracker/stats/month?year=&month=
func (t *TrackerController) getMonthStats(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())
	if v, err := strconv.Atoi(ctx.Query("year")); err == nil {
		year = v
	}
	if v, err := strconv.Atoi(ctx.Query("month")); err == nil {
		month = v
	}
	if month < 1 || month > 12 {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "month must be between 1 and 12"}
	}

	stats := t.tracker.MonthStats(user.ID, year, time.Month(month))
	return packets.MonthStatsResponse{Year: year, Month: month, Stats: stats}, nil
}

// GET /api/tracker/stats/week?start=YYYY-MM-DD
func (t *TrackerController) getWeekStats(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	start := ctx.Query("start")
	if start == "" {
		// default to the Monday of the current week
		now := time.Now()
		offset := (int(now.Weekday()) + 6) % 7
		start = tracking.DateKey(now.AddDate(0, 0, -offset))
	}
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "start must be YYYY-MM-DD"}
	}

	stats := t.tracker.WeekStats(user.ID, startDate)
	return packets.WeekStatsResponse{Start: start, Stats: stats}, nil
}
