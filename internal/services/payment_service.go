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

// PaymentService records settled payments. There is no gateway round-trip:
// a payment row is written with status success or not at all, and the
// booking flip to confirmed rides in the same transaction.
type PaymentService struct {
	PaymentRepo repositories.PaymentRepository
	BookingRepo repositories.BookingRepository
	DB          *sql.DB
	RequestID   string
}

func (s PaymentService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s PaymentService) payments() repositories.PaymentRepository {
	if s.PaymentRepo.DB != nil {
		return s.PaymentRepo
	}
	return repositories.PaymentRepository{DB: s.db()}
}

func (s PaymentService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

// Create records a payment for a booking. Preconditions in order: the
// booking must exist (NotFound), and no payment may exist for it yet
// (Conflict). The pre-read is a fast path only; under concurrent duplicates
// the UNIQUE key inside CreateSettled decides the winner.
func (s PaymentService) Create(bookingID int64, method string, amount float64) (models.Payment, error) {
	method = strings.TrimSpace(method)
	if method == "" {
		return models.Payment{}, domain.ValidationError{Field: "payment_method", Msg: "required"}
	}
	if amount < 0 {
		return models.Payment{}, domain.ValidationError{Field: "amount", Msg: "must not be negative"}
	}

	if _, err := s.bookings().GetByID(bookingID); err != nil {
		return models.Payment{}, err
	}

	repo := s.payments()
	if _, exists, err := repo.GetByBookingID(bookingID); err != nil {
		return models.Payment{}, err
	} else if exists {
		return models.Payment{}, domain.ConflictError{Resource: "payment", Msg: "payment already exists for this booking"}
	}

	payment, err := repo.CreateSettled(models.Payment{
		BookingID:     bookingID,
		PaymentMethod: method,
		TransactionID: utils.TransactionID(),
		Amount:        amount,
	})
	if err != nil {
		return models.Payment{}, err
	}

	utils.LogEvent(s.RequestID, "payment", "create",
		fmt.Sprintf("payment_id=%d booking_id=%d txn=%s", payment.ID, bookingID, payment.TransactionID))

	return payment, nil
}

func (s PaymentService) Get(id int64) (models.Payment, error) {
	return s.payments().GetByID(id)
}

func (s PaymentService) List(p domain.Pagination) ([]models.Payment, error) {
	return s.payments().List(p)
}
