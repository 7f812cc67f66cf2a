package route

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/yatralabs/yatra-server/internal/domain"
	"github.com/yatralabs/yatra-server/internal/provider"
)

// linearPlanner prices each leg at the rectilinear distance between its
// coordinates, one meter per coordinate unit, one minute per meter.
type linearPlanner struct {
	calls         int
	failAfter     int // fail on call number failAfter (1-based); 0 = never
	waypointOrder []int
}

func (p *linearPlanner) PathCost(ctx context.Context, coords []domain.Coordinate) (*provider.Path, error) {
	p.calls++
	if p.failAfter > 0 && p.calls >= p.failAfter {
		return nil, errors.New("routing backend down")
	}

	path := &provider.Path{}
	for i := 1; i < len(coords); i++ {
		d := int(math.Abs(coords[i].Lat-coords[i-1].Lat) + math.Abs(coords[i].Lon-coords[i-1].Lon))
		path.LegDistanceMeters = append(path.LegDistanceMeters, d)
		path.LegDurationSeconds = append(path.LegDurationSeconds, d*60)
	}
	if len(coords) > 2 && p.waypointOrder != nil {
		path.WaypointOrder = p.waypointOrder
	}
	return path, nil
}

func TestOptimizeEmptyStops(t *testing.T) {
	opt := NewOptimizer(&linearPlanner{})
	_, err := opt.Optimize(context.Background(), domain.Coordinate{}, nil)
	if !errors.Is(err, ErrEmptyStops) {
		t.Fatalf("Expected ErrEmptyStops, got %v", err)
	}
}

func TestOptimizeDuplicateIDs(t *testing.T) {
	opt := NewOptimizer(&linearPlanner{})
	stops := []domain.Stop{
		{ID: "a", Coordinate: domain.Coordinate{Lat: 0, Lon: 1}},
		{ID: "a", Coordinate: domain.Coordinate{Lat: 0, Lon: 2}},
	}
	_, err := opt.Optimize(context.Background(), domain.Coordinate{}, stops)
	if !errors.Is(err, ErrDuplicateStop) {
		t.Fatalf("Expected ErrDuplicateStop, got %v", err)
	}
}

// Origin (0,0) with A=(0,1), B=(0,5), C=(0,2): nearest-neighbor must visit
// A, C, B with cumulative distances 1, 2, 5.
func TestOptimizeNearestNeighborScenario(t *testing.T) {
	opt := NewOptimizer(&linearPlanner{})
	stops := []domain.Stop{
		{ID: "A", Coordinate: domain.Coordinate{Lat: 0, Lon: 1}, EstimatedStayMinutes: 30},
		{ID: "B", Coordinate: domain.Coordinate{Lat: 0, Lon: 5}, EstimatedStayMinutes: 30},
		{ID: "C", Coordinate: domain.Coordinate{Lat: 0, Lon: 2}, EstimatedStayMinutes: 30},
	}

	itinerary, err := opt.Optimize(context.Background(), domain.Coordinate{}, stops)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	if len(itinerary.Entries) != 4 {
		t.Fatalf("Expected 4 entries, got %d", len(itinerary.Entries))
	}
	if itinerary.Entries[0].Stop != nil || itinerary.Entries[0].CumulativeDistanceMeters != 0 {
		t.Error("Entry 0 must be the origin with zero cumulative cost")
	}

	wantIDs := []string{"A", "C", "B"}
	wantCumDist := []int{1, 2, 5}
	for i, id := range wantIDs {
		entry := itinerary.Entries[i+1]
		if entry.Stop.ID != id {
			t.Errorf("Entry %d: expected stop %s, got %s", i+1, id, entry.Stop.ID)
		}
		if entry.CumulativeDistanceMeters != wantCumDist[i] {
			t.Errorf("Entry %d: expected cumulative distance %d, got %d", i+1, wantCumDist[i], entry.CumulativeDistanceMeters)
		}
	}

	// Arrival at C = travel to A (60s) + 30 min stay + travel A->C (60s).
	wantArrival := 120*time.Second + 30*time.Minute
	if got := itinerary.Entries[2].EstimatedArrival; got != wantArrival {
		t.Errorf("Expected arrival at C %v, got %v", wantArrival, got)
	}

	if itinerary.TotalDistanceMeters != 5 {
		t.Errorf("Expected total distance 5, got %d", itinerary.TotalDistanceMeters)
	}
}

func TestOptimizeTieBreaksByLowestID(t *testing.T) {
	opt := NewOptimizer(&linearPlanner{})
	// Both stops are equidistant from the origin.
	stops := []domain.Stop{
		{ID: "b", Coordinate: domain.Coordinate{Lat: 0, Lon: 3}},
		{ID: "a", Coordinate: domain.Coordinate{Lat: 3, Lon: 0}},
	}

	itinerary, err := opt.Optimize(context.Background(), domain.Coordinate{}, stops)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if itinerary.Entries[1].Stop.ID != "a" {
		t.Errorf("Expected tie to break toward lowest id, got %s first", itinerary.Entries[1].Stop.ID)
	}
}

func TestOptimizeOrderIsPermutationAndMonotonic(t *testing.T) {
	opt := NewOptimizer(&linearPlanner{})
	stops := []domain.Stop{
		{ID: "s1", Coordinate: domain.Coordinate{Lat: 3, Lon: 9}},
		{ID: "s2", Coordinate: domain.Coordinate{Lat: 1, Lon: 1}},
		{ID: "s3", Coordinate: domain.Coordinate{Lat: 7, Lon: 2}},
		{ID: "s4", Coordinate: domain.Coordinate{Lat: 4, Lon: 4}},
		{ID: "s5", Coordinate: domain.Coordinate{Lat: 0, Lon: 8}},
	}

	itinerary, err := opt.Optimize(context.Background(), domain.Coordinate{}, stops)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	if len(itinerary.Entries) != len(stops)+1 {
		t.Fatalf("Expected %d entries, got %d", len(stops)+1, len(itinerary.Entries))
	}

	seen := make(map[string]bool)
	for i, entry := range itinerary.Entries {
		if entry.Order != i {
			t.Errorf("Entry %d has order %d", i, entry.Order)
		}
		if i == 0 {
			continue
		}
		if seen[entry.Stop.ID] {
			t.Errorf("Stop %s visited twice", entry.Stop.ID)
		}
		seen[entry.Stop.ID] = true

		prev := itinerary.Entries[i-1]
		if entry.CumulativeDistanceMeters < prev.CumulativeDistanceMeters {
			t.Errorf("Cumulative distance decreased at entry %d", i)
		}
		if entry.CumulativeDurationSecs < prev.CumulativeDurationSecs {
			t.Errorf("Cumulative duration decreased at entry %d", i)
		}
	}
	if len(seen) != len(stops) {
		t.Errorf("Expected all %d stops visited, got %d", len(stops), len(seen))
	}
}

func TestOptimizeProviderFailureIsHard(t *testing.T) {
	opt := NewOptimizer(&linearPlanner{failAfter: 2})
	stops := []domain.Stop{
		{ID: "a", Coordinate: domain.Coordinate{Lat: 0, Lon: 1}},
		{ID: "b", Coordinate: domain.Coordinate{Lat: 0, Lon: 2}},
	}

	itinerary, err := opt.Optimize(context.Background(), domain.Coordinate{}, stops)
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("Expected ErrProviderUnavailable, got %v", err)
	}
	if itinerary != nil {
		t.Error("Expected no partial itinerary on provider failure")
	}
}

// When the final multi-leg call returns a reordered waypoint permutation,
// the provider's order is authoritative.
func TestOptimizeAdoptsProviderWaypointOrder(t *testing.T) {
	// Greedy order is a, b, c; the provider swaps the first two waypoints.
	planner := &linearPlanner{waypointOrder: []int{1, 0}}
	opt := NewOptimizer(planner)
	stops := []domain.Stop{
		{ID: "a", Coordinate: domain.Coordinate{Lat: 0, Lon: 1}},
		{ID: "b", Coordinate: domain.Coordinate{Lat: 0, Lon: 2}},
		{ID: "c", Coordinate: domain.Coordinate{Lat: 0, Lon: 3}},
	}

	itinerary, err := opt.Optimize(context.Background(), domain.Coordinate{}, stops)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	wantIDs := []string{"b", "a", "c"}
	for i, id := range wantIDs {
		if got := itinerary.Entries[i+1].Stop.ID; got != id {
			t.Errorf("Entry %d: expected stop %s, got %s", i+1, id, got)
		}
	}
}
