// Package geocode wraps the Nominatim (OpenStreetMap) geocoding API used
// for city search and reverse lookup.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// ErrQueryTooShort is returned before any network call for queries under
// two characters.
var ErrQueryTooShort = errors.New("geocode: query must be at least 2 characters")

// City is the normalized search result the rest of the system works with.
type City struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lon"`
	DisplayName string  `json:"display_name"`
	Country     string  `json:"country,omitempty"`
}

// place mirrors the Nominatim wire shape. Coordinates arrive as strings.
type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		City         string `json:"city"`
		Town         string `json:"town"`
		Village      string `json:"village"`
		Municipality string `json:"municipality"`
		Country      string `json:"country"`
	} `json:"address"`
}

// Client talks to Nominatim. Requests are serialized and spaced at least
// one second apart, per the Nominatim usage policy.
type Client struct {
	httpClient *http.Client
	BaseURL    string

	mu   sync.Mutex
	last time.Time
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    defaultBaseURL,
	}
}

// Search looks up cities matching the query. The limit is clamped to
// Nominatim's 1..50 range.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]City, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < 2 {
		return nil, ErrQueryTooShort
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 50 {
		limit = 50
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("addressdetails", "1")
	params.Set("accept-language", "ru,en")

	var places []place
	if err := c.get(ctx, "/search", params, &places); err != nil {
		return nil, err
	}

	cities := make([]City, 0, len(places))
	for _, p := range places {
		cities = append(cities, normalizePlace(p))
	}
	return cities, nil
}

// Reverse resolves coordinates to the nearest named place.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (City, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lon))
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("accept-language", "ru,en")

	var p place
	if err := c.get(ctx, "/reverse", params, &p); err != nil {
		return City{}, err
	}
	city := normalizePlace(p)
	if city.Name == "" {
		// coordinate-only labeling when reverse geocoding yields nothing
		city.Name = fmt.Sprintf("%.2f°N, %.2f°E", lat, lon)
		city.Latitude = lat
		city.Longitude = lon
	}
	return city, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	c.throttle()

	reqURL := c.BaseURL + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "JummahPrayer/1.0 (https://github.com/jummah-prayer; contact@jummahprayer.app)")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("nominatim request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	return nil
}

// throttle enforces the one-request-per-second policy.
func (c *Client) throttle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if wait := time.Second - time.Since(c.last); wait > 0 {
		log.Debug().Dur("wait", wait).Msg("throttling nominatim request")
		time.Sleep(wait)
	}
	c.last = time.Now()
}

// normalizePlace picks the best available name, in the same preference
// order the clients used: city, town, village, municipality, then the
// first segment of display_name.
func normalizePlace(p place) City {
	lat, _ := strconv.ParseFloat(p.Lat, 64)
	lon, _ := strconv.ParseFloat(p.Lon, 64)

	name := p.Address.City
	if name == "" {
		name = p.Address.Town
	}
	if name == "" {
		name = p.Address.Village
	}
	if name == "" {
		name = p.Address.Municipality
	}
	if name == "" && p.DisplayName != "" {
		name = strings.TrimSpace(strings.SplitN(p.DisplayName, ",", 2)[0])
	}

	return City{
		Name:        name,
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: p.DisplayName,
		Country:     p.Address.Country,
	}
}
