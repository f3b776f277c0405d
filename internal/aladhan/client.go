// Package aladhan wraps the Al Adhan timings API, the upstream source of
// astronomically correct prayer times.
package aladhan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jummah-prayer/server/internal/model"
)

const defaultBaseURL = "https://api.aladhan.com/v1"

// methodCodes maps the calculation-method ids the clients send to the
// Al Adhan method parameter.
var methodCodes = map[int]string{
	model.MethodMWL:     "3",
	model.MethodISNA:    "2",
	model.MethodEgypt:   "5",
	model.MethodMakkah:  "4",
	model.MethodKarachi: "1",
	model.MethodTehran:  "7",
}

// ParseError reports an upstream response that does not match the expected
// shape. The caller treats it the same as a network failure.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "aladhan: unexpected response shape: " + e.Reason
}

type response struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   struct {
		Timings struct {
			Fajr    string `json:"Fajr"`
			Sunrise string `json:"Sunrise"`
			Dhuhr   string `json:"Dhuhr"`
			Asr     string `json:"Asr"`
			Maghrib string `json:"Maghrib"`
			Isha    string `json:"Isha"`
		} `json:"timings"`
	} `json:"data"`
}

// Client talks to the Al Adhan API.
type Client struct {
	httpClient *http.Client
	BaseURL    string
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    defaultBaseURL,
	}
}

// Timings fetches the schedule for the given date, coordinates, method and
// madhhab. The date goes into the path as DD-MM-YYYY: Al Adhan reads that
// format as Gregorian, while YYYY-MM-DD would be read as Hijri.
func (c *Client) Timings(ctx context.Context, date time.Time, loc model.Location) (model.Schedule, error) {
	code, ok := methodCodes[loc.CalculationMethod]
	if !ok {
		code = methodCodes[model.MethodMakkah]
	}
	school := "0"
	if loc.Madhhab == model.MadhhabHanafi {
		school = "1"
	}

	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", loc.Latitude))
	params.Set("longitude", fmt.Sprintf("%f", loc.Longitude))
	params.Set("method", code)
	params.Set("school", school)
	params.Set("calendar", "gregorian")

	reqURL := fmt.Sprintf("%s/timings/%s?%s", c.BaseURL, date.Format("02-01-2006"), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return model.Schedule{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store, must-revalidate")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Schedule{}, fmt.Errorf("aladhan request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return model.Schedule{}, fmt.Errorf("aladhan returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return model.Schedule{}, &ParseError{Reason: err.Error()}
	}
	if apiResp.Code != http.StatusOK {
		return model.Schedule{}, fmt.Errorf("aladhan error: code=%d status=%s", apiResp.Code, apiResp.Status)
	}
	return normalize(apiResp, date, loc)
}

// normalize is the single point where the upstream shape is mapped into
// the fixed Schedule type. Anything that does not match is rejected.
func normalize(r response, date time.Time, loc model.Location) (model.Schedule, error) {
	t := r.Data.Timings
	sched := model.Schedule{
		Fajr:      clock(t.Fajr),
		Sunrise:   clock(t.Sunrise),
		Dhuhr:     clock(t.Dhuhr),
		Asr:       clock(t.Asr),
		Maghrib:   clock(t.Maghrib),
		Isha:      clock(t.Isha),
		Date:      date.Format("02.01.2006"),
		City:      loc.City,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}
	for _, name := range model.PrayerOrder {
		if sched.Time(name) == "" {
			return model.Schedule{}, &ParseError{Reason: fmt.Sprintf("missing %s timing", name)}
		}
	}
	return sched, nil
}

// clock trims a timing value like "05:12 (MSK)" down to "HH:MM".
func clock(s string) string {
	if len(s) >= 5 {
		return s[:5]
	}
	return ""
}
