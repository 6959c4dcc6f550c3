package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"transit/internal/domain"
	"transit/internal/domain/models"
	"transit/internal/repositories"
)

func routeRow(id int64, fare float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "route_number", "route_name", "start_location", "end_location",
		"distance_km", "fare", "is_active", "created_at",
	}).AddRow(id, "R42", "Central Loop", "Terminal A", "Terminal B", 12.5, fare, true, time.Now())
}

func bookingRow(id int64, fare float64, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "route_id", "booking_reference", "passenger_name",
		"passenger_category", "seat_number", "journey_date", "fare_amount",
		"status", "created_at", "updated_at",
	}).AddRow(id, 1, 2, "BK12345678", "Asha Rao", "general", "A1",
		time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC), fare, status, time.Now(), time.Now())
}

func newBookingService(t *testing.T) (BookingService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := BookingService{
		BookingRepo: repositories.BookingRepository{DB: db},
		RouteRepo:   repositories.RouteRepository{DB: db},
		DB:          db,
	}
	return svc, mock, func() { db.Close() }
}

func TestCreateCopiesFareFromRoute(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	journey := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM routes").WithArgs(int64(2)).WillReturnRows(routeRow(2, 53.0))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(int64(1), int64(2), sqlmock.AnyArg(), "Asha Rao", "general", "A1", journey, 53.0, "pending").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectQuery("FROM bookings").WithArgs(int64(9)).WillReturnRows(bookingRow(9, 53.0, "pending"))

	booking, err := svc.Create(models.NewBooking{
		UserID:        1,
		RouteID:       2,
		PassengerName: "Asha Rao",
		SeatNumber:    "A1",
		JourneyDate:   journey,
	}, false)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if booking.Status != models.BookingPending {
		t.Fatalf("new booking status = %s, want pending", booking.Status)
	}
	if booking.FareAmount != 53.0 {
		t.Fatalf("fare = %.2f, want the route fare 53.00", booking.FareAmount)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateQuantizesFareOnRequest(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	journey := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM routes").WithArgs(int64(2)).WillReturnRows(routeRow(2, 53.0))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(int64(1), int64(2), sqlmock.AnyArg(), "Asha Rao", "general", "", journey, 55.0, "pending").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectQuery("FROM bookings").WithArgs(int64(9)).WillReturnRows(bookingRow(9, 55.0, "pending"))

	booking, err := svc.Create(models.NewBooking{
		UserID:        1,
		RouteID:       2,
		PassengerName: "Asha Rao",
		JourneyDate:   journey,
	}, true)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if booking.FareAmount != 55.0 {
		t.Fatalf("fare = %.2f, want quantized 55.00", booking.FareAmount)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateUnknownRouteIsNotFound(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectQuery("FROM routes").WithArgs(int64(777)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "route_number", "route_name", "start_location", "end_location",
			"distance_km", "fare", "is_active", "created_at",
		}))

	_, err := svc.Create(models.NewBooking{
		UserID:        1,
		RouteID:       777,
		PassengerName: "Asha Rao",
		JourneyDate:   time.Now(),
	}, false)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	svc, _, done := newBookingService(t)
	defer done()

	bad := models.BookingStatus("teleported")
	if _, err := svc.Update(5, models.BookingUpdate{Status: &bad}); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUpdateAllowsMovingAwayFromConfirmed(t *testing.T) {
	// Administrative updates are deliberately unguarded: a confirmed
	// booking can be cancelled even though its payment row remains.
	svc, mock, done := newBookingService(t)
	defer done()

	status := models.BookingCancelled
	mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).WillReturnRows(bookingRow(5, 50, "confirmed"))
	mock.ExpectExec("UPDATE bookings SET").
		WithArgs("cancelled", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM bookings").WithArgs(int64(5)).WillReturnRows(bookingRow(5, 50, "cancelled"))

	booking, err := svc.Update(5, models.BookingUpdate{Status: &status})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if booking.Status != models.BookingCancelled {
		t.Fatalf("status = %s, want cancelled", booking.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
