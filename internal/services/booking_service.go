package services

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "transit/internal/config"
	"transit/internal/domain"
	"transit/internal/domain/models"
	"transit/internal/repositories"
	"transit/internal/utils"
)

// BookingService owns the booking lifecycle. The fare is copied from the
// route exactly once, at creation; nothing downstream re-derives it.
type BookingService struct {
	BookingRepo repositories.BookingRepository
	RouteRepo   repositories.RouteRepository
	DB          *sql.DB
	RequestID   string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s BookingService) routes() repositories.RouteRepository {
	if s.RouteRepo.DB != nil {
		return s.RouteRepo
	}
	return repositories.RouteRepository{DB: s.db()}
}

// Create books a seat against a route. quantizeFare snaps the copied fare to
// a display-friendly value when the caller asks for it; by default the raw
// route fare is stored.
func (s BookingService) Create(in models.NewBooking, quantizeFare bool) (models.Booking, error) {
	if in.UserID <= 0 {
		return models.Booking{}, domain.UnauthenticatedError{}
	}
	name := strings.TrimSpace(in.PassengerName)
	if name == "" {
		return models.Booking{}, domain.ValidationError{Field: "passenger_name", Msg: "required"}
	}
	if in.JourneyDate.IsZero() {
		return models.Booking{}, domain.ValidationError{Field: "journey_date", Msg: "required"}
	}

	route, err := s.routes().GetByID(in.RouteID)
	if err != nil {
		return models.Booking{}, err
	}

	fare := route.Fare
	if quantizeFare {
		fare = utils.QuantizeFare(fare)
	}

	category := strings.TrimSpace(in.PassengerCategory)
	if category == "" {
		category = "general"
	}

	booking := models.Booking{
		UserID:            in.UserID,
		RouteID:           route.ID,
		BookingReference:  utils.BookingReference(),
		PassengerName:     name,
		PassengerCategory: category,
		SeatNumber:        strings.TrimSpace(in.SeatNumber),
		JourneyDate:       in.JourneyDate,
		FareAmount:        fare,
		Status:            models.BookingPending,
	}

	id, err := s.bookings().Create(booking)
	if err != nil {
		return models.Booking{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking_id=%d route_id=%d reference=%s", id, route.ID, booking.BookingReference))

	return s.bookings().GetByID(id)
}

func (s BookingService) Get(id int64) (models.Booking, error) {
	return s.bookings().GetByID(id)
}

func (s BookingService) List(p domain.Pagination) ([]models.Booking, error) {
	return s.bookings().List(p)
}

func (s BookingService) ListByOwner(userID int64) ([]models.Booking, error) {
	if userID <= 0 {
		return nil, domain.UnauthenticatedError{}
	}
	return s.bookings().ListByUser(userID)
}

// Update applies a sparse patch. Status changes through here are
// administrative and unconditional; a confirmed booking can be moved away
// from confirmed even though its payment row stays behind.
func (s BookingService) Update(id int64, upd models.BookingUpdate) (models.Booking, error) {
	if upd.Status != nil && !models.ValidBookingStatus(*upd.Status) {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "unknown status " + string(*upd.Status)}
	}

	repo := s.bookings()
	if _, err := repo.GetByID(id); err != nil {
		return models.Booking{}, err
	}

	if err := repo.ApplyUpdate(id, upd); err != nil {
		return models.Booking{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "update", fmt.Sprintf("booking_id=%d", id))
	return repo.GetByID(id)
}
