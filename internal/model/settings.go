package model

// Calculation methods, matching the ids the clients have always sent.
const (
	MethodMWL     = 0
	MethodISNA    = 1
	MethodEgypt   = 2
	MethodMakkah  = 3
	MethodKarachi = 4
	MethodTehran  = 5
)

// Madhhab ids. The madhhab only affects the Asr shadow-length rule.
const (
	MadhhabStandard = 0
	MadhhabHanafi   = 1
)

// Location is the user's location profile together with the calculation
// preferences that determine their schedule. Defaults to Moscow.
type Location struct {
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	City              string  `json:"city"`
	CalculationMethod int     `json:"calculationMethod"`
	Madhhab           int     `json:"madhhab"`
}

// DefaultLocation is the first-run profile before the user picks a city.
func DefaultLocation() Location {
	return Location{
		Latitude:          55.7558,
		Longitude:         37.6173,
		City:              "Москва",
		CalculationMethod: MethodMakkah,
		Madhhab:           MadhhabStandard,
	}
}

// Valid reports whether the coordinates are on the globe and the enum
// fields are in range.
func (l Location) Valid() bool {
	if l.Latitude < -90 || l.Latitude > 90 {
		return false
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return false
	}
	if l.CalculationMethod < MethodMWL || l.CalculationMethod > MethodTehran {
		return false
	}
	return l.Madhhab == MadhhabStandard || l.Madhhab == MadhhabHanafi
}

// NotificationSettings gates alert scheduling and sound playback.
// Sound is decoupled from whether the alert itself is delivered.
type NotificationSettings struct {
	Enabled        bool `json:"enabled"`
	WarningMinutes int  `json:"warningMinutes"`
	Sound          bool `json:"sound"`
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{Enabled: false, WarningMinutes: 15, Sound: false}
}
