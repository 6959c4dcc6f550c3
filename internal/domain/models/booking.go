package models

import "time"

// BookingStatus is a closed set; every transition site switches over it.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// ValidBookingStatus reports whether s is one of the known statuses.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	default:
		return false
	}
}

// Booking is a seat reservation on a route for a journey date.
// FareAmount is copied from the route at creation time and never re-derived.
type Booking struct {
	ID                int64         `json:"id"`
	UserID            int64         `json:"user_id"`
	RouteID           int64         `json:"route_id"`
	BookingReference  string        `json:"booking_reference"`
	PassengerName     string        `json:"passenger_name"`
	PassengerCategory string        `json:"passenger_category"`
	SeatNumber        string        `json:"seat_number"`
	JourneyDate       time.Time     `json:"journey_date"`
	FareAmount        float64       `json:"fare_amount"`
	Status            BookingStatus `json:"status"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// NewBooking enumerates every field and its source so fare provenance
// (route-derived, never client-supplied) holds at the type level.
type NewBooking struct {
	UserID            int64
	RouteID           int64
	PassengerName     string
	PassengerCategory string
	SeatNumber        string
	JourneyDate       time.Time
}

// BookingUpdate supports PATCH-style updates via key presence; nil fields
// are left untouched. This administrative path does not re-check the
// payment linkage.
type BookingUpdate struct {
	Status     *BookingStatus `json:"status"`
	SeatNumber *string        `json:"seat_number"`
}
