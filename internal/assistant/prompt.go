package assistant

import (
	"fmt"
	"strings"

	"github.com/yatralabs/yatra-server/internal/advisory"
	"github.com/yatralabs/yatra-server/internal/domain"
)

const promptHistoryLimit = 3

// renderSystemPrompt turns the context snapshot into the system prompt.
// Absent fields render as "not available" rather than being omitted, so the
// model knows what it does not know.
func renderSystemPrompt(tc *domain.TravelContext, topic domain.Topic) string {
	var b strings.Builder
	b.WriteString("You are a travel assistant. Provide personalized, context-aware travel recommendations.\n\n")
	b.WriteString("REAL-TIME CONTEXT:\n")

	if tc.Weather != nil {
		advice := advisory.Advise(tc.Weather)
		fmt.Fprintf(&b, "- Current weather: %.1fC, %s, humidity %d%%\n",
			tc.Weather.TemperatureC, tc.Weather.Condition, tc.Weather.HumidityPct)
		fmt.Fprintf(&b, "- Weather advisory: %s", advice.Verdict)
		if advice.Suggestion != "" {
			fmt.Fprintf(&b, " (%s)", advice.Suggestion)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("- Current weather: not available\n")
	}

	if tc.Location != nil {
		fmt.Fprintf(&b, "- Traveler location: %.4f, %.4f\n", tc.Location.Lat, tc.Location.Lon)
	} else {
		b.WriteString("- Traveler location: not available\n")
	}

	if len(tc.NearbyPlaces) > 0 {
		names := make([]string, 0, len(tc.NearbyPlaces))
		for _, p := range tc.NearbyPlaces {
			names = append(names, p.Name)
		}
		fmt.Fprintf(&b, "- Nearby attractions: %s\n", strings.Join(names, ", "))
	}

	history := domain.LastMessages(tc.History, promptHistoryLimit)
	if len(history) > 0 {
		b.WriteString("- Recent conversation:\n")
		for _, m := range history {
			fmt.Fprintf(&b, "    %s: %s\n", m.Role, m.Text)
		}
	} else {
		b.WriteString("- Recent conversation: none\n")
	}

	b.WriteString("\nTRAVELER PROFILE:\n")
	fmt.Fprintf(&b, "- Query topic: %s\n", topic)
	fmt.Fprintf(&b, "- Interactions: %d, engagement %.0f/100\n",
		tc.Profile.InteractionCount, tc.Profile.EngagementScore)
	if len(tc.Profile.QueryTopics) > 0 {
		topics := make([]string, 0, len(tc.Profile.QueryTopics))
		for _, t := range tc.Profile.QueryTopics {
			topics = append(topics, string(t))
		}
		fmt.Fprintf(&b, "- Earlier query topics: %s\n", strings.Join(topics, ", "))
	}

	b.WriteString("\nKeep answers concise and actionable. Prefer concrete suggestions over generalities.")
	return b.String()
}
