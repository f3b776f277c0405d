package model

// PrayerName identifies one of the six daily prayer events.
type PrayerName string

const (
	Fajr    PrayerName = "Fajr"
	Sunrise PrayerName = "Sunrise"
	Dhuhr   PrayerName = "Dhuhr"
	Asr     PrayerName = "Asr"
	Maghrib PrayerName = "Maghrib"
	Isha    PrayerName = "Isha"
)

// PrayerOrder lists the six events in chronological order within a day.
var PrayerOrder = []PrayerName{Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha}

// ObligatoryPrayers are the five tracked prayers. Sunrise is informational
// only and never carries a completion mark or a notification.
var ObligatoryPrayers = []PrayerName{Fajr, Dhuhr, Asr, Maghrib, Isha}

// Schedule holds one day's prayer times as HH:MM strings in local time,
// in the shape the /api/prayer-times endpoint returns.
type Schedule struct {
	Fajr          string  `json:"fajr"`
	Sunrise       string  `json:"sunrise"`
	Dhuhr         string  `json:"dhuhr"`
	Asr           string  `json:"asr"`
	Maghrib       string  `json:"maghrib"`
	Isha          string  `json:"isha"`
	Date          string  `json:"date"` // DD.MM.YYYY
	City          string  `json:"city,omitempty"`
	Latitude      float64 `json:"latitude,omitempty"`
	Longitude     float64 `json:"longitude,omitempty"`
	CurrentPrayer string  `json:"currentPrayer,omitempty"`
	NextPrayer    string  `json:"nextPrayer,omitempty"`
}

// Time returns the HH:MM string for the named prayer.
func (s Schedule) Time(name PrayerName) string {
	switch name {
	case Fajr:
		return s.Fajr
	case Sunrise:
		return s.Sunrise
	case Dhuhr:
		return s.Dhuhr
	case Asr:
		return s.Asr
	case Maghrib:
		return s.Maghrib
	case Isha:
		return s.Isha
	}
	return ""
}
