package endpoints

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jummah-prayer/server/internal/http/api"
	"github.com/jummah-prayer/server/internal/model"
	"github.com/jummah-prayer/server/internal/tracking"
)

type memoryStore struct {
	data map[int]map[string][]byte
}

func (m *memoryStore) GetState(userID int, key string) ([]byte, error) {
	return m.data[userID][key], nil
}

func (m *memoryStore) SetState(userID int, key string, value []byte) error {
	if m.data[userID] == nil {
		m.data[userID] = map[string][]byte{}
	}
	m.data[userID][key] = value
	return nil
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	tracker := tracking.NewTracker(&memoryStore{data: map[int]map[string][]byte{}})
	user := &model.User{ID: 1, Email: "user@example.com"}

	r := gin.New()
	api.MountGroup(r, api.GroupConfig{
		Prefix:     "/api",
		Middleware: []gin.HandlerFunc{func(c *gin.Context) { c.Set("currentUser", user) }},
	}, TrackerModule(tracker))
	return r
}

func do(t *testing.T, router *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMarkAndGetDay(t *testing.T) {
	router := testRouter()

	w := do(t, router, http.MethodPost, "/api/tracker/mark", gin.H{
		"date": "2025-01-15", "prayer": "Fajr", "completed": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, router, http.MethodPost, "/api/tracker/mark", gin.H{
		"date": "2025-01-15", "prayer": "Isha", "completed": false,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodGet, "/api/tracker/day?date=2025-01-15", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Date    string          `json:"date"`
		Prayers map[string]bool `json:"prayers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, map[string]bool{"fajr": true, "isha": false}, resp.Prayers)
}

func TestMarkValidation(t *testing.T) {
	router := testRouter()

	w := do(t, router, http.MethodPost, "/api/tracker/mark", gin.H{
		"date": "15.01.2025", "prayer": "Fajr", "completed": true,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodPost, "/api/tracker/mark", gin.H{
		"date": "2025-01-15", "prayer": "Fajr",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "completed is required")
}

func TestClearMark(t *testing.T) {
	router := testRouter()

	do(t, router, http.MethodPost, "/api/tracker/mark", gin.H{
		"date": "2025-01-15", "prayer": "Fajr", "completed": true,
	})
	w := do(t, router, http.MethodDelete, "/api/tracker/mark", gin.H{
		"date": "2025-01-15", "prayer": "Fajr",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Prayers map[string]bool `json:"prayers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Prayers)
}

func TestMonthStats(t *testing.T) {
	router := testRouter()

	do(t, router, http.MethodPost, "/api/tracker/mark", gin.H{
		"date": "2025-01-10", "prayer": "Fajr", "completed": true,
	})
	do(t, router, http.MethodPost, "/api/tracker/mark", gin.H{
		"date": "2025-01-11", "prayer": "Dhuhr", "completed": false,
	})

	w := do(t, router, http.MethodGet, "/api/tracker/stats/month?year=2025&month=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Year  int            `json:"year"`
		Month int            `json:"month"`
		Stats tracking.Stats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2025, resp.Year)
	assert.Equal(t, tracking.Stats{Total: 2, Completed: 1, Missed: 1, Percentage: 50}, resp.Stats)

	w = do(t, router, http.MethodGet, "/api/tracker/stats/month?year=2025&month=13", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWeekStats(t *testing.T) {
	router := testRouter()

	do(t, router, http.MethodPost, "/api/tracker/mark", gin.H{
		"date": "2025-01-13", "prayer": "Fajr", "completed": true,
	})

	w := do(t, router, http.MethodGet, "/api/tracker/stats/week?start=2025-01-13", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Start string `json:"start"`
		Stats struct {
			Total    int `json:"total"`
			WeekData []struct {
				Date string `json:"date"`
			} `json:"weekData"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Stats.Total)
	require.Len(t, resp.Stats.WeekData, 7)
	assert.Equal(t, "2025-01-13", resp.Stats.WeekData[0].Date)

	w = do(t, router, http.MethodGet, "/api/tracker/stats/week?start=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
