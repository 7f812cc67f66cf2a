package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/yatralabs/yatra-server/internal/domain"
)

const defaultRoutingBaseURL = "https://maps.googleapis.com/maps/api/directions/json"

// Path is the routing provider's answer for an ordered coordinate sequence:
// one leg per consecutive pair, plus the waypoint permutation the provider
// chose when it was allowed to reorder intermediate stops.
type Path struct {
	LegDistanceMeters  []int
	LegDurationSeconds []int
	// WaypointOrder maps visit position to the index of the requested
	// waypoint visited there. Empty or identity when the provider kept the
	// requested order.
	WaypointOrder []int
}

// TotalDistanceMeters sums the per-leg distances.
func (p *Path) TotalDistanceMeters() int {
	total := 0
	for _, d := range p.LegDistanceMeters {
		total += d
	}
	return total
}

// RoutingClientConfig holds configuration for the routing client.
type RoutingClientConfig struct {
	APIKey  string
	BaseURL string
	Mode    string // travel mode, defaults to "driving"
	Timeout time.Duration
}

// RoutingClient calls the Google Directions API for path costs.
type RoutingClient struct {
	gateway
	apiKey  string
	baseURL string
	mode    string
}

// NewRoutingClient creates a routing client.
func NewRoutingClient(cfg RoutingClientConfig) *RoutingClient {
	base := cfg.BaseURL
	if base == "" {
		base = defaultRoutingBaseURL
	}
	mode := cfg.Mode
	if mode == "" {
		mode = "driving"
	}
	return &RoutingClient{
		gateway: newGateway("routing", cfg.Timeout),
		apiKey:  cfg.APIKey,
		baseURL: base,
		mode:    mode,
	}
}

type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		WaypointOrder []int `json:"waypoint_order"`
		Legs          []struct {
			Distance struct {
				Value int `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

// PathCost fetches per-leg distance and duration for an ordered coordinate
// sequence of at least two points. Intermediate coordinates are sent as
// optimizable waypoints, so the provider may return a reordered visit
// sequence in WaypointOrder.
func (c *RoutingClient) PathCost(ctx context.Context, coords []domain.Coordinate) (*Path, error) {
	if err := c.requireKey(c.apiKey); err != nil {
		return nil, err
	}
	if len(coords) < 2 {
		return nil, newError(KindRejected, c.name, fmt.Errorf("need at least 2 coordinates, got %d", len(coords)))
	}

	origin := coords[0]
	destination := coords[len(coords)-1]

	params := url.Values{}
	params.Set("origin", origin.String())
	params.Set("destination", destination.String())
	params.Set("mode", c.mode)
	params.Set("key", c.apiKey)
	if len(coords) > 2 {
		waypoints := make([]string, 0, len(coords)-2)
		for _, wp := range coords[1 : len(coords)-1] {
			waypoints = append(waypoints, wp.String())
		}
		params.Set("waypoints", "optimize:true|"+strings.Join(waypoints, "|"))
	}

	var resp directionsResponse
	if err := c.getJSON(ctx, c.baseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" || len(resp.Routes) == 0 {
		msg := resp.ErrorMessage
		if msg == "" {
			msg = resp.Status
		}
		return nil, newError(KindRejected, c.name, fmt.Errorf("directions error: %s", msg))
	}

	route := resp.Routes[0]
	path := &Path{
		LegDistanceMeters:  make([]int, 0, len(route.Legs)),
		LegDurationSeconds: make([]int, 0, len(route.Legs)),
		WaypointOrder:      route.WaypointOrder,
	}
	for _, leg := range route.Legs {
		path.LegDistanceMeters = append(path.LegDistanceMeters, leg.Distance.Value)
		path.LegDurationSeconds = append(path.LegDurationSeconds, leg.Duration.Value)
	}
	return path, nil
}
