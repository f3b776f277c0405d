package endpoints

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jummah-prayer/server/internal/geocode"
	"github.com/jummah-prayer/server/internal/http/api"
	"github.com/jummah-prayer/server/internal/http/api/places/packets"
	"github.com/jummah-prayer/server/internal/qibla"
)

// PlacesModule mounts the public geocoding and qibla endpoints.
func PlacesModule(geocoder *geocode.Client) api.Module {
	ctl := &PlacesController{geocoder: geocoder}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/cities/search", ctl.searchCities)
		c.PUBLIC_GET("/cities/nearest", ctl.nearestCity)
		c.PUBLIC_GET("/qibla", ctl.getQibla)
	})
}

type PlacesController struct {
	geocoder *geocode.Client
}

func coordParams(ctx *gin.Context) (lat, lon float64, apiErr *api.APIError) {
	latStr, lonStr := ctx.Query("lat"), ctx.Query("lon")
	if latStr == "" || lonStr == "" {
		return 0, 0, &api.APIError{Code: http.StatusBadRequest, Message: "lat and lon parameters are required"}
	}
	lat, errLat := strconv.ParseFloat(latStr, 64)
	lon, errLon := strconv.ParseFloat(lonStr, 64)
	if errLat != nil || errLon != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, &api.APIError{Code: http.StatusBadRequest, Message: "invalid latitude or longitude"}
	}
	return lat, lon, nil
}

// GET /api/cities/search
func (p *PlacesController) searchCities(ctx *gin.Context) (any, *api.APIError) {
	query := ctx.Query("q")
	if query == "" {
		query = ctx.Query("query")
	}

	limit := 20
	if v, err := strconv.Atoi(ctx.Query("limit")); err == nil {
		limit = v
	}

	cities, err := p.geocoder.Search(ctx.Request.Context(), query, limit)
	if err != nil {
		if errors.Is(err, geocode.ErrQueryTooShort) {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "query must be at least 2 characters"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to fetch cities from external API"}
	}

	return packets.CitySearchResponse{
		Success: true,
		Query:   query,
		Data:    packets.CitySearchData{Cities: cities},
	}, nil
}

// GET /api/cities/nearest
func (p *PlacesController) nearestCity(ctx *gin.Context) (any, *api.APIError) {
	lat, lon, apiErr := coordParams(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	city, err := p.geocoder.Reverse(ctx.Request.Context(), lat, lon)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to fetch city from external API"}
	}
	return packets.NearestCityResponse{Success: true, Data: city}, nil
}

// GET /api/qibla
func (p *PlacesController) getQibla(ctx *gin.Context) (any, *api.APIError) {
	lat, lon, apiErr := coordParams(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	km := qibla.Distance(lat, lon)
	return packets.QiblaResponse{
		Bearing:    qibla.Bearing(lat, lon),
		DistanceKm: km,
		Distance:   qibla.FormatDistance(km),
	}, nil
}
