package models

import "time"

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentSuccess  PaymentStatus = "success"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Payment is a settlement record against exactly one booking. Rows are
// created with status success and never mutated afterwards.
type Payment struct {
	ID            int64         `json:"id"`
	BookingID     int64         `json:"booking_id"`
	PaymentMethod string        `json:"payment_method"`
	TransactionID string        `json:"transaction_id"`
	Amount        float64       `json:"amount"`
	Status        PaymentStatus `json:"status"`
	PaymentDate   time.Time     `json:"payment_date"`
}
