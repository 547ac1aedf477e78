// Package entity contains the core business objects of the project.
package entity

import "time"

// DailyLog is a single workday session bounded by start/end events.
// At most one log per user may be open at a time. An ended log is immutable.
type DailyLog struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	Date          time.Time  `json:"date"`
	StartTime     time.Time  `json:"startTime"`
	EndTime       *time.Time `json:"endTime,omitempty"` // Set by the end-day transition.
	StartLocation *Location  `json:"startLocation,omitempty"`
	EndLocation   *Location  `json:"endLocation,omitempty"`
	OdometerStart *int       `json:"odometerStart,omitempty"`
	OdometerEnd   *int       `json:"odometerEnd,omitempty"`
	// DistanceTraveled is derived on end-day: odometer difference when both
	// readings are present, otherwise the haversine length of the location
	// history. Kilometers.
	DistanceTraveled *float64 `json:"distanceTraveled,omitempty"`
	// LocationHistory is the ordered, append-only track of positions
	// captured while the day was open.
	LocationHistory []Location `json:"locationHistory,omitempty"`
}

// Ended reports whether the end-day transition has been applied.
func (l *DailyLog) Ended() bool {
	return l.EndTime != nil
}
