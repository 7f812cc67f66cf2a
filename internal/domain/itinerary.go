package domain

import "time"

// DefaultStayMinutes is assumed when a stop does not specify a stay duration.
const DefaultStayMinutes = 60

// Stop is a candidate waypoint in a route request. IDs are unique within a
// single request.
type Stop struct {
	ID                   string     `json:"id"`
	Coordinate           Coordinate `json:"coordinate"`
	EstimatedStayMinutes int        `json:"estimated_stay_minutes"`
}

// ItineraryEntry is one position in a timed itinerary. Stop is nil for the
// origin entry.
type ItineraryEntry struct {
	Stop                     *Stop         `json:"stop,omitempty"`
	Order                    int           `json:"order"`
	CumulativeDistanceMeters int           `json:"cumulative_distance_meters"`
	CumulativeDurationSecs   int           `json:"cumulative_duration_seconds"`
	EstimatedArrival         time.Duration `json:"estimated_arrival_ns"`
}

// Itinerary is an ordered, timed visiting plan. Entry 0 is always the origin
// with zero cumulative cost; cumulative values never decrease along Entries.
type Itinerary struct {
	Entries              []ItineraryEntry `json:"entries"`
	TotalDistanceMeters  int              `json:"total_distance_meters"`
	TotalDurationSeconds int              `json:"total_duration_seconds"`
}

// SavedItinerary is a persisted record of a successfully computed itinerary.
type SavedItinerary struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Itinerary Itinerary `json:"itinerary"`
	CreatedAt time.Time `json:"created_at"`
}
