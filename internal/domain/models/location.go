package models

import "time"

// BusLocation is the single latest known position for one bus. One row per
// bus; every write overwrites in place. No history is retained.
type BusLocation struct {
	BusID       int64     `json:"bus_id"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Speed       float64   `json:"speed"`
	Heading     float64   `json:"heading"`
	LastUpdated time.Time `json:"last_updated"`
}
