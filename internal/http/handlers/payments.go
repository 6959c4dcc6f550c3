package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transit/internal/http/middleware"
	"transit/internal/services"
)

type createPaymentRequest struct {
	BookingID     int64   `json:"booking_id"`
	PaymentMethod string  `json:"payment_method"`
	Amount        float64 `json:"amount"`
}

// POST /api/payments records a settled payment and confirms the booking
// in the same transaction.
func CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.PaymentService{RequestID: middleware.GetRequestID(c)}
	payment, err := svc.Create(req.BookingID, req.PaymentMethod, req.Amount)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// GET /api/payments
func GetPayments(c *gin.Context) {
	svc := services.PaymentService{RequestID: middleware.GetRequestID(c)}
	payments, err := svc.List(pagination(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// GET /api/payments/:id
func GetPayment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	svc := services.PaymentService{RequestID: middleware.GetRequestID(c)}
	payment, err := svc.Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}
