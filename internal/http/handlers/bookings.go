package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transit/internal/domain/models"
	"transit/internal/http/middleware"
	"transit/internal/services"
	"transit/internal/utils"
)

type createBookingRequest struct {
	RouteID           int64  `json:"route_id"`
	PassengerName     string `json:"passenger_name"`
	PassengerCategory string `json:"passenger_category"`
	SeatNumber        string `json:"seat_number"`
	JourneyDate       string `json:"journey_date"`
	QuantizeFare      bool   `json:"quantize_fare"`
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	journey, err := utils.ParseJourneyDate(req.JourneyDate)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid journey_date", err)
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	booking, err := svc.Create(models.NewBooking{
		UserID:            middleware.CurrentUser(c),
		RouteID:           req.RouteID,
		PassengerName:     req.PassengerName,
		PassengerCategory: req.PassengerCategory,
		SeatNumber:        req.SeatNumber,
		JourneyDate:       journey,
	}, req.QuantizeFare)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GET /api/bookings is the public list for the dashboard.
func GetBookings(c *gin.Context) {
	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	bookings, err := svc.List(pagination(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /api/bookings/my
func GetMyBookings(c *gin.Context) {
	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	bookings, err := svc.ListByOwner(middleware.CurrentUser(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /api/bookings/:id
func GetBooking(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	booking, err := svc.Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// PUT /api/bookings/:id applies a sparse patch; only the fields present in the
// body are written.
func UpdateBooking(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var upd models.BookingUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	booking, err := svc.Update(id, upd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GET /api/bookings/:id/ticket
func GetBookingTicket(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateETicket(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
