// Package route computes a low-cost visiting order for a set of stops and
// produces a timed itinerary. It uses the routing provider only for pairwise
// and full-path travel-cost lookups; the ordering heuristic lives here.
package route

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/yatralabs/yatra-server/internal/domain"
	"github.com/yatralabs/yatra-server/internal/provider"
)

var (
	// ErrEmptyStops is returned when there is nothing to optimize.
	ErrEmptyStops = errors.New("no stops to optimize")
	// ErrDuplicateStop is returned when two stops share an id.
	ErrDuplicateStop = errors.New("duplicate stop id")
	// ErrProviderUnavailable is returned when any routing lookup fails. A
	// partial itinerary is never returned; an incomplete route is worse
	// than no route for a travel plan.
	ErrProviderUnavailable = errors.New("routing provider unavailable")
)

// Planner is the routing-provider contract the optimizer consumes.
type Planner interface {
	// PathCost returns per-leg costs for an ordered coordinate sequence of
	// at least two points, possibly with a reordered waypoint permutation.
	PathCost(ctx context.Context, coords []domain.Coordinate) (*provider.Path, error)
}

// Optimizer determines visiting orders with a nearest-neighbor heuristic.
//
// The heuristic is greedy on purpose: stop counts in this domain stay small
// (around fifteen at most), the result is deterministic and explainable, and
// each step needs only single-leg cost lookups. A globally optimal tour is
// not promised.
type Optimizer struct {
	planner Planner
}

// NewOptimizer creates an optimizer over the given planner.
func NewOptimizer(planner Planner) *Optimizer {
	return &Optimizer{planner: planner}
}

// Optimize orders stops starting from origin and builds a timed itinerary.
//
// The visiting order is fixed by nearest-neighbor over single-leg path
// costs, ties broken by lowest stop id. A final multi-leg lookup for the
// whole ordered sequence then supplies authoritative per-leg distance and
// duration; if the provider reorders waypoints in that call, its order wins,
// since it reflects road-network costs the heuristic cannot see.
func (o *Optimizer) Optimize(ctx context.Context, origin domain.Coordinate, stops []domain.Stop) (*domain.Itinerary, error) {
	if len(stops) == 0 {
		return nil, ErrEmptyStops
	}
	if err := checkUniqueIDs(stops); err != nil {
		return nil, err
	}

	ordered, err := o.nearestNeighborOrder(ctx, origin, stops)
	if err != nil {
		return nil, err
	}

	coords := make([]domain.Coordinate, 0, len(ordered)+1)
	coords = append(coords, origin)
	for _, s := range ordered {
		coords = append(coords, s.Coordinate)
	}

	path, err := o.planner.PathCost(ctx, coords)
	if err != nil {
		return nil, fmt.Errorf("%w: full path: %w", ErrProviderUnavailable, err)
	}
	if len(path.LegDistanceMeters) != len(ordered) || len(path.LegDurationSeconds) != len(ordered) {
		return nil, fmt.Errorf("%w: got %d legs for %d stops", ErrProviderUnavailable, len(path.LegDistanceMeters), len(ordered))
	}

	if reordered, changed := applyWaypointOrder(ordered, path.WaypointOrder); changed {
		slog.Debug("adopting provider waypoint order", "stops", len(ordered))
		ordered = reordered
	}

	return buildItinerary(ordered, path), nil
}

// nearestNeighborOrder greedily picks, at each step, the remaining stop with
// the cheapest single-leg path from the current node. Candidate lookups
// within a step are independent but run sequentially; counts are small.
func (o *Optimizer) nearestNeighborOrder(ctx context.Context, origin domain.Coordinate, stops []domain.Stop) ([]domain.Stop, error) {
	// Sorting by id up front makes the strict less-than comparison below
	// resolve cost ties toward the lowest id.
	remaining := make([]domain.Stop, len(stops))
	copy(remaining, stops)
	sort.Slice(remaining, func(i, j int) bool { return remaining[i].ID < remaining[j].ID })

	ordered := make([]domain.Stop, 0, len(stops))
	current := origin

	for len(remaining) > 0 {
		best := -1
		bestCost := 0
		for i, candidate := range remaining {
			path, err := o.planner.PathCost(ctx, []domain.Coordinate{current, candidate.Coordinate})
			if err != nil {
				return nil, fmt.Errorf("%w: leg to %q: %w", ErrProviderUnavailable, candidate.ID, err)
			}
			cost := path.TotalDistanceMeters()
			if best == -1 || cost < bestCost {
				best = i
				bestCost = cost
			}
		}

		next := remaining[best]
		ordered = append(ordered, next)
		remaining = append(remaining[:best], remaining[best+1:]...)
		current = next.Coordinate
	}
	return ordered, nil
}

// applyWaypointOrder rearranges stops by the provider's returned waypoint
// permutation. The permutation may cover all stops or, when the last stop
// was pinned as the destination, all but the final one.
func applyWaypointOrder(stops []domain.Stop, order []int) ([]domain.Stop, bool) {
	if len(order) == 0 {
		return stops, false
	}
	if len(order) == len(stops)-1 {
		order = append(append([]int{}, order...), len(stops)-1)
	}
	if len(order) != len(stops) {
		return stops, false
	}

	changed := false
	reordered := make([]domain.Stop, len(stops))
	seen := make(map[int]bool, len(order))
	for pos, idx := range order {
		if idx < 0 || idx >= len(stops) || seen[idx] {
			return stops, false
		}
		seen[idx] = true
		reordered[pos] = stops[idx]
		if idx != pos {
			changed = true
		}
	}
	return reordered, changed
}

// buildItinerary accumulates cumulative distance and duration leg by leg.
// Arrival at stop i adds the stay time of every prior stop, since stay time
// elapses before departure to the next leg.
func buildItinerary(ordered []domain.Stop, path *provider.Path) *domain.Itinerary {
	entries := make([]domain.ItineraryEntry, 0, len(ordered)+1)
	entries = append(entries, domain.ItineraryEntry{Order: 0})

	cumDist := 0
	cumDur := 0
	var stayBefore time.Duration
	for i := range ordered {
		stop := ordered[i]
		cumDist += path.LegDistanceMeters[i]
		cumDur += path.LegDurationSeconds[i]
		entries = append(entries, domain.ItineraryEntry{
			Stop:                     &stop,
			Order:                    i + 1,
			CumulativeDistanceMeters: cumDist,
			CumulativeDurationSecs:   cumDur,
			EstimatedArrival:         time.Duration(cumDur)*time.Second + stayBefore,
		})
		stayBefore += time.Duration(stop.EstimatedStayMinutes) * time.Minute
	}

	return &domain.Itinerary{
		Entries:              entries,
		TotalDistanceMeters:  cumDist,
		TotalDurationSeconds: cumDur,
	}
}

func checkUniqueIDs(stops []domain.Stop) error {
	seen := make(map[string]bool, len(stops))
	for _, s := range stops {
		if seen[s.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateStop, s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}
