// Package domain holds the request-scoped value objects shared across the service.
package domain

import "fmt"

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// String renders the coordinate as "lat,lon", the form routing providers accept.
func (c Coordinate) String() string {
	return fmt.Sprintf("%f,%f", c.Lat, c.Lon)
}
