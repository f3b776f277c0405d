package packets

import "github.com/jummah-prayer/server/internal/tracking"

type MarkRequest struct {
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Prayer    string `json:"prayer" binding:"required"`
	Completed *bool  `json:"completed" binding:"required"`
}

type ClearMarkRequest struct {
	Date   string `json:"date" binding:"required"`
	Prayer string `json:"prayer" binding:"required"`
}

type DayResponse struct {
	Date    string          `json:"date"`
	Prayers map[string]bool `json:"prayers"`
}

type MonthStatsResponse struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Stats tracking.Stats `json:"stats"`
}

type WeekStatsResponse struct {
	Start string             `json:"start"`
	Stats tracking.WeekStats `json:"stats"`
}
