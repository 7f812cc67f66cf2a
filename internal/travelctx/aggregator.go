// Package travelctx assembles per-request TravelContext snapshots from
// heterogeneous sources under a shared deadline. A failed source degrades
// its field to absence; aggregation itself never fails.
package travelctx

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yatralabs/yatra-server/internal/classify"
	"github.com/yatralabs/yatra-server/internal/domain"
	"github.com/yatralabs/yatra-server/internal/provider"
)

// HistoryLimit bounds the conversation suffix carried in a context snapshot.
const HistoryLimit = 5

var errNoLocation = errors.New("no location available")

// WeatherSource is the weather lookup the aggregator consumes.
type WeatherSource interface {
	Current(ctx context.Context, q provider.WeatherQuery) (*provider.Observation, error)
}

// PlacesSource is the nearby-places lookup the aggregator consumes.
type PlacesSource interface {
	Nearby(ctx context.Context, coord domain.Coordinate, radiusMeters int, category string) ([]domain.Place, error)
}

// Hints is the caller-supplied input to an aggregation: an explicit
// location (the service never reaches for a platform location API itself),
// an optional city name, and the caller-owned conversation history.
type Hints struct {
	Location *domain.Coordinate
	City     string
	History  []domain.Message
}

// Aggregator fans out context fetches and merges the results.
type Aggregator struct {
	weather WeatherSource
	places  PlacesSource
	timeout time.Duration
}

// New creates an aggregator with the given overall deadline per Gather call.
func New(weather WeatherSource, places PlacesSource, timeout time.Duration) *Aggregator {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Aggregator{weather: weather, places: places, timeout: timeout}
}

// Gather builds a TravelContext snapshot. The weather lookup, the places
// lookup and the history summary run concurrently; Gather returns once all
// finish or the aggregation deadline elapses, whichever comes first. Source
// failures and missing prerequisites leave the field absent and bump
// SoftFailures; they never fail the aggregate.
func (a *Aggregator) Gather(ctx context.Context, hints Hints) *domain.TravelContext {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	tc := &domain.TravelContext{Location: hints.Location}
	var mu sync.Mutex
	softFailures := 0

	fail := func(source string, err error) {
		mu.Lock()
		softFailures++
		mu.Unlock()
		slog.Warn("context source degraded", "source", source, "error", err)
	}

	// Plain Group, no WithContext: one failing source must not cancel its
	// siblings.
	var g errgroup.Group

	g.Go(func() error {
		if hints.Location == nil && hints.City == "" {
			fail("weather", errNoLocation)
			return nil
		}
		obs, err := a.weather.Current(ctx, provider.WeatherQuery{Coord: hints.Location, City: hints.City})
		if err != nil {
			fail("weather", err)
			return nil
		}
		mu.Lock()
		tc.Weather = &obs.Snapshot
		if tc.Location == nil {
			coord := obs.Coord
			tc.Location = &coord
		}
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		if hints.Location == nil {
			fail("places", errNoLocation)
			return nil
		}
		places, err := a.places.Nearby(ctx, *hints.Location, 0, "")
		if err != nil {
			fail("places", err)
			return nil
		}
		mu.Lock()
		tc.NearbyPlaces = places
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		history := domain.LastMessages(hints.History, HistoryLimit)
		profile := classify.Profile(hints.History)
		mu.Lock()
		tc.History = history
		tc.Profile = profile
		mu.Unlock()
		return nil
	})

	_ = g.Wait()

	tc.SoftFailures = softFailures
	return tc
}
