package packets

import "github.com/jummah-prayer/server/internal/geocode"

type CitySearchResponse struct {
	Success bool           `json:"success"`
	Query   string         `json:"query"`
	Data    CitySearchData `json:"data"`
}

type CitySearchData struct {
	Cities []geocode.City `json:"cities"`
}

type NearestCityResponse struct {
	Success bool         `json:"success"`
	Data    geocode.City `json:"data"`
}

type QiblaResponse struct {
	Bearing    float64 `json:"bearing"`
	DistanceKm float64 `json:"distanceKm"`
	Distance   string  `json:"distance"`
}
