package domain

// Topic is a coarse classification of what a traveler's query is about.
type Topic string

const (
	TopicWeather       Topic = "weather"
	TopicRoute         Topic = "route"
	TopicAccommodation Topic = "accommodation"
	TopicFood          Topic = "food"
	TopicTransport     Topic = "transport"
	TopicBudget        Topic = "budget"
	TopicCulture       Topic = "culture"
	TopicGeneral       Topic = "general"
)

// BehaviorProfile summarizes a traveler's interaction pattern. It is an
// observability signal rendered into prompts and logs; no decision branches
// on it.
type BehaviorProfile struct {
	QueryTopics      []Topic `json:"query_topics,omitempty"`
	InteractionCount int     `json:"interaction_count"`
	EngagementScore  float64 `json:"engagement_score"`
}

// Place is a point of interest returned by the places provider.
type Place struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Coordinate Coordinate `json:"coordinate"`
	Rating     float64    `json:"rating,omitempty"`
}

// TravelContext is the per-request snapshot of everything known about the
// traveler. Every field may be absent; absence is an expected state, never
// an error. The snapshot is assembled fresh per request and discarded.
type TravelContext struct {
	Location     *Coordinate      `json:"location,omitempty"`
	Weather      *WeatherSnapshot `json:"weather,omitempty"`
	NearbyPlaces []Place          `json:"nearby_places,omitempty"`
	History      []Message        `json:"history,omitempty"`
	Profile      BehaviorProfile  `json:"profile"`

	// SoftFailures counts sources that failed or were skipped during
	// aggregation. Absorbed, never surfaced as an error.
	SoftFailures int `json:"soft_failures"`
}
