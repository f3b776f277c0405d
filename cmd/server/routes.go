package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jummah-prayer/server/internal/db"
	"github.com/jummah-prayer/server/internal/dhikr"
	"github.com/jummah-prayer/server/internal/geocode"
	"github.com/jummah-prayer/server/internal/http/api"
	adhkarapi "github.com/jummah-prayer/server/internal/http/api/adhkar/endpoints"
	authapi "github.com/jummah-prayer/server/internal/http/api/auth/endpoints"
	calendarapi "github.com/jummah-prayer/server/internal/http/api/calendar/endpoints"
	placesapi "github.com/jummah-prayer/server/internal/http/api/places/endpoints"
	prayerapi "github.com/jummah-prayer/server/internal/http/api/prayer/endpoints"
	trackerapi "github.com/jummah-prayer/server/internal/http/api/tracker/endpoints"
	"github.com/jummah-prayer/server/internal/notify"
	"github.com/jummah-prayer/server/internal/praytime"
	"github.com/jummah-prayer/server/internal/settings"
	"github.com/jummah-prayer/server/internal/tracking"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store,
	source *praytime.Source, geocoder *geocode.Client, alerts *notify.Dispatcher) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	mgr := settings.NewManager(store)
	tracker := tracking.NewTracker(store)
	counter := dhikr.NewCounter(store)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
		Auth:   false,
	},
		authapi.AuthPublicModule(env.SecretKey, store),
		placesapi.PlacesModule(geocoder),
		calendarapi.CalendarModule(source),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api",
		Auth:      true,
		SecretKey: env.SecretKey,
	},
		authapi.AuthSessionModule(env.SecretKey, store),
		prayerapi.PrayerModule(source, mgr, alerts),
		trackerapi.TrackerModule(tracker),
		adhkarapi.AdhkarModule(counter),
	)
}
