package endpoints

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jummah-prayer/server/internal/aladhan"
	"github.com/jummah-prayer/server/internal/http/api"
	"github.com/jummah-prayer/server/internal/model"
	"github.com/jummah-prayer/server/internal/notify"
	"github.com/jummah-prayer/server/internal/praytime"
	"github.com/jummah-prayer/server/internal/settings"
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

const timingsBody = `{"code":200,"status":"OK","data":{"timings":{
	"Fajr":"05:10","Sunrise":"06:40","Dhuhr":"12:20",
	"Asr":"15:05","Maghrib":"17:55","Isha":"19:25"}}}`

func testRouter(t *testing.T) (*gin.Engine, *settings.Manager, *notify.Dispatcher) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(timingsBody))
	}))
	t.Cleanup(srv.Close)
	client := aladhan.NewClient()
	client.BaseURL = srv.URL

	source := praytime.NewSource(client, nil, time.Hour)
	mgr := settings.NewManager(&memoryStore{data: map[int]map[string][]byte{}})
	alerts := notify.NewDispatcher(notify.LogSender{})
	user := &model.User{ID: 1}

	r := gin.New()
	api.MountGroup(r, api.GroupConfig{
		Prefix:     "/api",
		Middleware: []gin.HandlerFunc{func(c *gin.Context) { c.Set("currentUser", user) }},
	}, PrayerModule(source, mgr, alerts))
	return r, mgr, alerts
}

func TestGetPrayerTimes(t *testing.T) {
	router, _, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/prayer-times", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")

	var resp struct {
		Success bool           `json:"success"`
		Data    model.Schedule `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "05:10", resp.Data.Fajr)
	assert.Equal(t, "Москва", resp.Data.City)
	assert.NotEmpty(t, resp.Data.CurrentPrayer)
	assert.NotEmpty(t, resp.Data.NextPrayer)
	assert.Equal(t, praytime.FormatDate(time.Now()), resp.Data.Date)
}

func TestGetPrayerTimesQueryOverrides(t *testing.T) {
	router, _, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet,
		"/api/prayer-times?lat=41.0082&lon=28.9784&city=Istanbul&year=2025&month=6&day=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data model.Schedule `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Istanbul", resp.Data.City)
	assert.InDelta(t, 41.0082, resp.Data.Latitude, 1e-6)
	assert.Equal(t, "01.06.2025", resp.Data.Date)
}

func TestLocationSettingsRoundTrip(t *testing.T) {
	router, _, _ := testRouter(t)

	body, _ := json.Marshal(gin.H{
		"latitude":          41.0082,
		"longitude":         28.9784,
		"city":              "Стамбул",
		"calculationMethod": model.MethodMWL,
		"madhhab":           model.MadhhabHanafi,
	})
	req := httptest.NewRequest(http.MethodPut, "/api/settings/location", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/settings/location", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var loc model.Location
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loc))
	assert.Equal(t, "Стамбул", loc.City)
	assert.Equal(t, model.MadhhabHanafi, loc.Madhhab)
}

func TestUpdateLocationInvalid(t *testing.T) {
	router, _, _ := testRouter(t)

	body, _ := json.Marshal(gin.H{"latitude": 95.0, "longitude": 0.0})
	req := httptest.NewRequest(http.MethodPut, "/api/settings/location", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// latitude and longitude are required
	body, _ = json.Marshal(gin.H{"city": "Москва"})
	req = httptest.NewRequest(http.MethodPut, "/api/settings/location", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotificationSettingsArmAlerts(t *testing.T) {
	router, mgr, alerts := testRouter(t)

	body, _ := json.Marshal(gin.H{"enabled": true, "warningMinutes": 20, "sound": true})
	req := httptest.NewRequest(http.MethodPut, "/api/settings/notifications", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	prefs := mgr.Notifications(1)
	assert.True(t, prefs.Enabled)
	assert.Equal(t, 20, prefs.WarningMinutes)

	// enabling notifications arms timers for the day's remaining alerts
	assert.Greater(t, alerts.Pending(1), 0)

	// disabling cancels them
	body, _ = json.Marshal(gin.H{"enabled": false})
	req = httptest.NewRequest(http.MethodPut, "/api/settings/notifications", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, alerts.Pending(1))
}

func TestNotificationWarningRange(t *testing.T) {
	router, _, _ := testRouter(t)

	body, _ := json.Marshal(gin.H{"enabled": true, "warningMinutes": 500})
	req := httptest.NewRequest(http.MethodPut, "/api/settings/notifications", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
