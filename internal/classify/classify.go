// Package classify derives a topic label and an engagement score from
// free-text queries and conversation history. Both are bias signals for
// recommendation tone, not correctness-critical decisions.
package classify

import (
	"strings"

	"github.com/yatralabs/yatra-server/internal/domain"
)

// rule maps a keyword set to a topic. Rules are evaluated in order and the
// first match wins, so the table order is part of the contract.
type rule struct {
	keywords []string
	topic    domain.Topic
}

var rules = []rule{
	{[]string{"weather", "rain", "temperature", "forecast", "climate"}, domain.TopicWeather},
	{[]string{"route", "itinerary", "directions", "way to", "how to get"}, domain.TopicRoute},
	{[]string{"hotel", "hostel", "stay", "accommodation", "resort"}, domain.TopicAccommodation},
	{[]string{"food", "restaurant", "eat", "cuisine", "dish"}, domain.TopicFood},
	{[]string{"train", "bus", "flight", "taxi", "transport"}, domain.TopicTransport},
	{[]string{"budget", "cheap", "cost", "price", "expensive"}, domain.TopicBudget},
	{[]string{"culture", "festival", "temple", "museum", "heritage"}, domain.TopicCulture},
}

// Classify returns the topic of a free-text query. Matching is a
// case-insensitive substring check against the fixed rule table; no match
// yields TopicGeneral.
func Classify(text string) domain.Topic {
	lowered := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lowered, kw) {
				return r.topic
			}
		}
	}
	return domain.TopicGeneral
}

// Engagement scores how engaged a conversation is on a 0..100 scale:
// min(100, messageCount*10 + averageMessageLength/10). An empty history
// scores zero.
func Engagement(messages []domain.Message) float64 {
	if len(messages) == 0 {
		return 0
	}

	totalLen := 0
	for _, m := range messages {
		totalLen += len(m.Text)
	}
	avgLen := float64(totalLen) / float64(len(messages))

	score := float64(len(messages))*10 + avgLen/10
	if score > 100 {
		return 100
	}
	return score
}

// Profile summarizes a conversation history into a behavior profile: the
// topics of the user's queries in order, the interaction count, and the
// engagement score.
func Profile(history []domain.Message) domain.BehaviorProfile {
	profile := domain.BehaviorProfile{
		InteractionCount: len(history),
		EngagementScore:  Engagement(history),
	}
	for _, m := range history {
		if m.Role == domain.RoleUser {
			profile.QueryTopics = append(profile.QueryTopics, Classify(m.Text))
		}
	}
	return profile
}
