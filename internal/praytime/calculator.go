package praytime

import (
	"fmt"
	"math"
	"time"

	"github.com/jummah-prayer/server/internal/model"
)

// Calculator computes prayer times astronomically for a coordinate pair.
// It is the degraded-mode source used when the upstream timings API is
// unreachable; the upstream remains authoritative when available.
type Calculator struct {
	Latitude  float64
	Longitude float64
	Method    int
	Madhhab   int
}

type dayTimes struct {
	fajr, sunrise, dhuhr, asr, maghrib, isha float64
}

// Compute returns the schedule for the given date. Times are expressed in
// the date's time zone.
func (c Calculator) Compute(date time.Time) model.Schedule {
	t := c.compute(date)
	return model.Schedule{
		Fajr:      formatHours(t.fajr),
		Sunrise:   formatHours(t.sunrise),
		Dhuhr:     formatHours(t.dhuhr),
		Asr:       formatHours(t.asr),
		Maghrib:   formatHours(t.maghrib),
		Isha:      formatHours(t.isha),
		Date:      FormatDate(date),
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
	}
}

func (c Calculator) compute(date time.Time) dayTimes {
	_, offsetSecs := date.Zone()
	tz := float64(offsetSecs) / 3600.0

	// shift the Julian date by longitude to work in local solar time
	jd := julianDate(date.Year(), int(date.Month()), date.Day())
	jd -= c.Longitude / (15.0 * 24.0)

	decl := sunDeclination(jd + 0.5)
	noon := midDay(jd + 0.5)

	fajrAngle, ishaAngle := methodAngles(c.Method)
	asrFactor := 1.0
	if c.Madhhab == model.MadhhabHanafi {
		asrFactor = 2.0
	}

	var t dayTimes
	t.fajr = c.sunAngleTime(fajrAngle, noon, decl, true)
	t.sunrise = c.sunAngleTime(0.833, noon, decl, true)
	t.dhuhr = noon
	t.asr = c.asrTime(asrFactor, noon, decl)
	t.maghrib = c.sunAngleTime(0.833, noon, decl, false)
	t.isha = c.sunAngleTime(ishaAngle, noon, decl, false)

	t.fajr += tz
	t.sunrise += tz
	t.dhuhr += tz
	t.asr += tz
	t.maghrib += tz
	t.isha += tz

	// Umm al-Qura fixes Isha at 90 minutes after Maghrib
	if c.Method == model.MethodMakkah {
		t.isha = t.maghrib + 1.5
	}

	t.fajr = fixHour(t.fajr)
	t.sunrise = fixHour(t.sunrise)
	t.dhuhr = fixHour(t.dhuhr)
	t.asr = fixHour(t.asr)
	t.maghrib = fixHour(t.maghrib)
	t.isha = fixHour(t.isha)
	return t
}

// sunAngleTime returns the hour at which the sun reaches the given angle
// below the horizon, before (ccw) or after midday.
func (c Calculator) sunAngleTime(angle, noon, decl float64, ccw bool) float64 {
	v := darccos((-dsin(angle)-dsin(decl)*dsin(c.Latitude))/
		(dcos(decl)*dcos(c.Latitude))) / 15.0
	if ccw {
		return noon - v
	}
	return noon + v
}

// asrTime returns the hour at which an object's shadow equals factor times
// its length plus the noon shadow.
func (c Calculator) asrTime(factor, noon, decl float64) float64 {
	angle := -darctan(1.0 / (factor + dtan(math.Abs(c.Latitude-decl))))
	return c.sunAngleTime(angle, noon, decl, false)
}

func julianDate(year, month, day int) float64 {
	if month <= 2 {
		year--
		month += 12
	}
	a := math.Floor(float64(year) / 100.0)
	b := 2 - a + math.Floor(a/4.0)
	return math.Floor(365.25*float64(year+4716)) +
		math.Floor(30.6001*float64(month+1)) +
		float64(day) + b - 1524.5
}

func sunDeclination(jd float64) float64 {
	t := (jd - 2451545.0) / 36525.0
	e := 23.43929 - 0.0130125*t
	l := 280.466 + 36000.770*t
	g := 357.528 + 35999.050*t
	lambda := l + 1.915*dsin(g) + 0.020*dsin(2*g)
	return darcsin(dsin(e) * dsin(lambda))
}

func equationOfTime(jd float64) float64 {
	t := (jd - 2451545.0) / 36525.0
	l0 := 280.466 + 36000.770*t
	g := 357.528 + 35999.050*t
	e := 23.43929 - 0.0130125*t
	lambda := fixAngle(l0) + 1.915*dsin(g) + 0.020*dsin(2*g)
	ra := darctan2(dcos(e)*dsin(lambda), dcos(lambda)) / 15.0
	return l0/15.0 - fixHour(ra)
}

func midDay(jd float64) float64 {
	return fixHour(12 - equationOfTime(jd))
}

func methodAngles(method int) (fajr, isha float64) {
	switch method {
	case model.MethodMWL:
		return 18.0, 17.0
	case model.MethodISNA:
		return 15.0, 15.0
	case model.MethodEgypt:
		return 19.5, 17.5
	case model.MethodMakkah:
		return 18.5, 90.0 // isha overridden to maghrib+90min
	case model.MethodKarachi:
		return 18.0, 18.0
	case model.MethodTehran:
		return 17.7, 14.0
	default:
		return 18.0, 18.0
	}
}

func formatHours(hours float64) string {
	h := int(hours)
	m := int((hours - float64(h)) * 60)
	return fmt.Sprintf("%02d:%02d", h, m)
}

func fixAngle(a float64) float64 { return fix(a, 360) }
func fixHour(h float64) float64  { return fix(h, 24) }

func fix(v, mod float64) float64 {
	v = math.Mod(v, mod)
	if v < 0 {
		v += mod
	}
	return v
}

func dsin(d float64) float64    { return math.Sin(d * math.Pi / 180) }
func dcos(d float64) float64    { return math.Cos(d * math.Pi / 180) }
func dtan(d float64) float64    { return math.Tan(d * math.Pi / 180) }
func darcsin(x float64) float64 { return math.Asin(x) * 180 / math.Pi }
func darccos(x float64) float64 { return math.Acos(x) * 180 / math.Pi }
func darctan(x float64) float64 { return math.Atan(x) * 180 / math.Pi }
func darctan2(y, x float64) float64 {
	return math.Atan2(y, x) * 180 / math.Pi
}
