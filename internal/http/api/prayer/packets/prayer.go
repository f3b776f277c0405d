package packets

import "github.com/jummah-prayer/server/internal/model"

// PrayerTimesResponse keeps the envelope the clients already parse.
type PrayerTimesResponse struct {
	Success bool           `json:"success"`
	Data    model.Schedule `json:"data"`
}

type UpdateLocationRequest struct {
	Latitude          *float64 `json:"latitude" binding:"required"`
	Longitude         *float64 `json:"longitude" binding:"required"`
	City              string   `json:"city"`
	CalculationMethod *int     `json:"calculationMethod"`
	Madhhab           *int     `json:"madhhab"`
}

type UpdateNotificationsRequest struct {
	Enabled        *bool `json:"enabled" binding:"required"`
	WarningMinutes *int  `json:"warningMinutes"`
	Sound          *bool `json:"sound"`
}
