package services

import (
	"bytes"
	"database/sql"
	"fmt"

	"github.com/phpdave11/gofpdf"

	intconfig "transit/internal/config"
	"transit/internal/domain/models"
	"transit/internal/repositories"
	"transit/internal/utils"
)

// DocsService renders the e-ticket PDF for a booking.
type DocsService struct {
	BookingRepo repositories.BookingRepository
	RouteRepo   repositories.RouteRepository
	DB          *sql.DB
	RequestID   string
}

func (s DocsService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s DocsService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s DocsService) routes() repositories.RouteRepository {
	if s.RouteRepo.DB != nil {
		return s.RouteRepo
	}
	return repositories.RouteRepository{DB: s.db()}
}

// GenerateETicket returns the PDF bytes and a download filename.
func (s DocsService) GenerateETicket(bookingID int64) ([]byte, string, error) {
	booking, err := s.bookings().GetByID(bookingID)
	if err != nil {
		return nil, "", err
	}
	route, err := s.routes().GetByID(booking.RouteID)
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("booking_id=%d", bookingID))
	return buildETicketPDF(booking, route)
}

func buildETicketPDF(b models.Booking, rt models.Route) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	seat := b.SeatNumber
	if seat == "" {
		seat = "-"
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Reference    : %s", b.BookingReference),
		fmt.Sprintf("Passenger    : %s (%s)", b.PassengerName, b.PassengerCategory),
		fmt.Sprintf("Route        : %s  %s -> %s", rt.RouteNumber, rt.StartLocation, rt.EndLocation),
		fmt.Sprintf("Journey      : %s", utils.FormatDateTime(b.JourneyDate)),
		fmt.Sprintf("Seat         : %s", seat),
		fmt.Sprintf("Fare         : %s", utils.FormatMoney(b.FareAmount)),
		fmt.Sprintf("Status       : %s", b.Status),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This e-ticket is valid for one passenger. Please present it when boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%s.pdf", b.BookingReference)
	return buf.Bytes(), filename, nil
}
