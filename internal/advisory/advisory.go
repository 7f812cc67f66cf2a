// Package advisory maps a weather snapshot to a best-time-to-visit verdict
// and an activity suggestion.
package advisory

import "github.com/yatralabs/yatra-server/internal/domain"

// Advice is a deterministic travel recommendation derived from weather.
type Advice struct {
	Verdict    string `json:"verdict"`
	Suggestion string `json:"suggestion"`
}

// Advise evaluates the decision table for a snapshot. The branches run in a
// fixed priority order; the rain rule is evaluated last so it overrides every
// temperature and humidity rule. A nil snapshot yields the unknown verdict.
func Advise(snapshot *domain.WeatherSnapshot) Advice {
	if snapshot == nil {
		return Advice{Verdict: "Unknown - current conditions unavailable"}
	}

	advice := Advice{Verdict: "Good time to explore!"}

	switch {
	case snapshot.TemperatureC < 15:
		advice = Advice{
			Verdict:    "Cool weather - perfect for indoor activities",
			Suggestion: "Visit museums, temples, or covered markets",
		}
	case snapshot.TemperatureC <= 30 && snapshot.HumidityPct < 70:
		advice = Advice{
			Verdict:    "Perfect weather for sightseeing!",
			Suggestion: "Great time for outdoor activities and exploration",
		}
	case snapshot.TemperatureC <= 30:
		advice = Advice{
			Verdict:    "Comfortable but humid - stay hydrated",
			Suggestion: "Consider air-conditioned venues or shaded areas",
		}
	default: // above 30C
		advice = Advice{
			Verdict:    "Hot weather - plan accordingly",
			Suggestion: "Visit early morning or evening, stay in shaded areas",
		}
	}

	if snapshot.Condition == domain.ConditionRain {
		advice = Advice{
			Verdict:    "Rainy weather - indoor activities recommended",
			Suggestion: "Perfect time for museums, shopping malls, or cultural centers",
		}
	}

	return advice
}
