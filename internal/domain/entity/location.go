// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Location is a value type for a captured position. It is embedded in the
// operational entities and never persisted on its own.
type Location struct {
	Lat        float64    `json:"lat"`                  // Geographic latitude.
	Lng        float64    `json:"lng"`                  // Geographic longitude.
	Address    string     `json:"address,omitempty"`    // Optional human-readable address.
	CapturedAt *time.Time `json:"capturedAt,omitempty"` // Optional capture timestamp.
}

// Point converts the location to an orb point (lon/lat order).
func (l Location) Point() orb.Point {
	return orb.Point{l.Lng, l.Lat}
}

// PathDistanceKm returns the haversine length of an ordered location
// sequence in kilometers. Fewer than two points yields zero.
func PathDistanceKm(points []Location) float64 {
	var meters float64
	for i := 1; i < len(points); i++ {
		meters += geo.Distance(points[i-1].Point(), points[i].Point())
	}

	return meters / 1000
}
