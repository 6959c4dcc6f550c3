package repositories

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	intconfig "transit/internal/config"
	"transit/internal/domain"
	"transit/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `id, user_id, route_id, booking_reference, passenger_name,
	passenger_category, COALESCE(seat_number, ''), journey_date, fare_amount,
	status, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.RouteID,
		&b.BookingReference,
		&b.PassengerName,
		&b.PassengerCategory,
		&b.SeatNumber,
		&b.JourneyDate,
		&b.FareAmount,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

// Create inserts a new booking row and returns its id. The caller is
// responsible for having copied the fare from the route.
func (r BookingRepository) Create(b models.Booking) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO bookings
			(user_id, route_id, booking_reference, passenger_name,
			 passenger_category, seat_number, journey_date, fare_amount, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.UserID,
		b.RouteID,
		b.BookingReference,
		b.PassengerName,
		b.PassengerCategory,
		b.SeatNumber,
		b.JourneyDate,
		b.FareAmount,
		string(b.Status),
	)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: "booking", Msg: "duplicate booking reference", Err: err}
		}
		return 0, domain.InternalError{Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return id, nil
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "booking_id", Msg: "invalid id"}
	}

	b, err := scanBooking(r.db().QueryRow(
		`SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	return b, nil
}

func (r BookingRepository) List(p domain.Pagination) ([]models.Booking, error) {
	p = p.Clamp()
	return r.queryBookings(
		`SELECT `+bookingColumns+` FROM bookings ORDER BY id LIMIT ? OFFSET ?`,
		p.Limit, p.Offset)
}

func (r BookingRepository) ListByUser(userID int64) ([]models.Booking, error) {
	if userID <= 0 {
		return nil, domain.ValidationError{Field: "user_id", Msg: "invalid id"}
	}
	return r.queryBookings(
		`SELECT `+bookingColumns+` FROM bookings WHERE user_id=? ORDER BY id DESC`,
		userID)
}

func (r BookingRepository) queryBookings(query string, args ...any) ([]models.Booking, error) {
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ApplyUpdate writes only the fields present in upd; absent fields are left
// untouched. The status value is not guarded against the payment linkage
// (administrative override path).
func (r BookingRepository) ApplyUpdate(id int64, upd models.BookingUpdate) error {
	if id <= 0 {
		return domain.ValidationError{Field: "booking_id", Msg: "invalid id"}
	}

	sets := []string{}
	args := []any{}
	if upd.Status != nil {
		sets = append(sets, "status=?")
		args = append(args, string(*upd.Status))
	}
	if upd.SeatNumber != nil {
		sets = append(sets, "seat_number=?")
		args = append(args, *upd.SeatNumber)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	if _, err := r.db().Exec(`UPDATE bookings SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

// markConfirmedTx flips pending -> confirmed inside the caller's transaction.
// Any other current status makes this a no-op.
func markConfirmedTx(tx *sql.Tx, bookingID int64) error {
	_, err := tx.Exec(
		`UPDATE bookings SET status=? WHERE id=? AND status=?`,
		string(models.BookingConfirmed), bookingID, string(models.BookingPending),
	)
	return err
}

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
