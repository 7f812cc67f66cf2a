// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"github.com/yatralabs/yatra-server/internal/domain"
)

// Repository persists computed itineraries for later listing.
type Repository interface {
	// SaveItinerary stores a successfully computed itinerary. The record's
	// ID and CreatedAt are filled in on return.
	SaveItinerary(ctx context.Context, record *domain.SavedItinerary) error

	// ListItineraries returns up to limit itineraries for a session,
	// newest first. An empty sessionID lists across all sessions.
	ListItineraries(ctx context.Context, sessionID string, limit int) ([]*domain.SavedItinerary, error)

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
