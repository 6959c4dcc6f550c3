package models

import "time"

// Route is the fare source for bookings. Managed elsewhere; this service
// only reads it.
type Route struct {
	ID            int64     `json:"id"`
	RouteNumber   string    `json:"route_number"`
	RouteName     string    `json:"route_name"`
	StartLocation string    `json:"start_location"`
	EndLocation   string    `json:"end_location"`
	DistanceKM    float64   `json:"distance_km"`
	Fare          float64   `json:"fare"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}
