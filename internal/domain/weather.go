package domain

import (
	"strings"
	"time"
)

// Condition is a normalized weather condition group.
type Condition string

const (
	ConditionClear        Condition = "Clear"
	ConditionClouds       Condition = "Clouds"
	ConditionRain         Condition = "Rain"
	ConditionThunderstorm Condition = "Thunderstorm"
	ConditionSnow         Condition = "Snow"
	ConditionMist         Condition = "Mist"
	ConditionOther        Condition = "Other"
)

// ParseCondition maps a provider condition string (e.g. OpenWeather's
// weather[0].main) to a Condition. Unknown values become ConditionOther.
func ParseCondition(s string) Condition {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "clear":
		return ConditionClear
	case "clouds":
		return ConditionClouds
	case "rain", "drizzle":
		return ConditionRain
	case "thunderstorm":
		return ConditionThunderstorm
	case "snow":
		return ConditionSnow
	case "mist", "fog", "haze":
		return ConditionMist
	default:
		return ConditionOther
	}
}

// WeatherSnapshot is an immutable point-in-time weather observation.
type WeatherSnapshot struct {
	TemperatureC float64   `json:"temperature_c"`
	HumidityPct  int       `json:"humidity_pct"`
	WindSpeed    float64   `json:"wind_speed"`
	Condition    Condition `json:"condition"`
	CapturedAt   time.Time `json:"captured_at"`
}
