package repositories

import (
	"database/sql"
	"errors"

	intconfig "transit/internal/config"
	"transit/internal/domain"
	"transit/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const paymentColumns = `id, booking_id, payment_method, transaction_id, amount, status, payment_date`

func scanPayment(row interface{ Scan(...any) error }) (models.Payment, error) {
	var p models.Payment
	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.PaymentMethod,
		&p.TransactionID,
		&p.Amount,
		&p.Status,
		&p.PaymentDate,
	)
	return p, err
}

// CreateSettled inserts the payment (already settled, status success) and
// flips the booking to confirmed in one transaction. The UNIQUE key on
// booking_id serializes concurrent duplicates: exactly one insert commits,
// the rest surface as ConflictError.
func (r PaymentRepository) CreateSettled(p models.Payment) (models.Payment, error) {
	db := r.db()

	tx, err := db.Begin()
	if err != nil {
		return models.Payment{}, domain.InternalError{Err: err}
	}

	res, err := tx.Exec(`
		INSERT INTO payments (booking_id, payment_method, transaction_id, amount, status)
		VALUES (?, ?, ?, ?, ?)`,
		p.BookingID,
		p.PaymentMethod,
		p.TransactionID,
		p.Amount,
		string(models.PaymentSuccess),
	)
	if err != nil {
		_ = tx.Rollback()
		if isDuplicateKey(err) {
			return models.Payment{}, domain.ConflictError{Resource: "payment", Msg: "payment already exists for this booking", Err: err}
		}
		return models.Payment{}, domain.InternalError{Err: err}
	}

	if err := markConfirmedTx(tx, p.BookingID); err != nil {
		_ = tx.Rollback()
		return models.Payment{}, domain.InternalError{Err: err}
	}

	if err := tx.Commit(); err != nil {
		return models.Payment{}, domain.InternalError{Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Payment{}, domain.InternalError{Err: err}
	}

	return r.GetByID(id)
}

func (r PaymentRepository) GetByID(id int64) (models.Payment, error) {
	if id <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "payment_id", Msg: "invalid id"}
	}

	p, err := scanPayment(r.db().QueryRow(
		`SELECT `+paymentColumns+` FROM payments WHERE id=? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, domain.NotFoundError{Resource: "payment", Err: err}
		}
		return models.Payment{}, domain.InternalError{Err: err}
	}
	return p, nil
}

// GetByBookingID returns (payment, true) when a payment exists for the
// booking, (zero, false) when none does.
func (r PaymentRepository) GetByBookingID(bookingID int64) (models.Payment, bool, error) {
	if bookingID <= 0 {
		return models.Payment{}, false, domain.ValidationError{Field: "booking_id", Msg: "invalid id"}
	}

	p, err := scanPayment(r.db().QueryRow(
		`SELECT `+paymentColumns+` FROM payments WHERE booking_id=? LIMIT 1`, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, false, nil
		}
		return models.Payment{}, false, domain.InternalError{Err: err}
	}
	return p, true, nil
}

func (r PaymentRepository) List(p domain.Pagination) ([]models.Payment, error) {
	p = p.Clamp()

	rows, err := r.db().Query(
		`SELECT `+paymentColumns+` FROM payments ORDER BY id LIMIT ? OFFSET ?`,
		p.Limit, p.Offset)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		pay, err := scanPayment(rows)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, pay)
	}
	return out, rows.Err()
}
