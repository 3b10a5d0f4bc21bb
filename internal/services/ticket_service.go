package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"tiketi/internal/domain"
	"tiketi/internal/domain/models"
	"tiketi/internal/utils"
)

// TicketService renders the downloadable ticket and receipt PDFs for a
// completed booking.
type TicketService struct {
	RequestID string
}

func (s TicketService) GenerateTicket(data models.BookingData) ([]byte, string, error) {
	if err := requireCompleted(data); err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "ticket", "generate_ticket", "reference="+data.BookingReference)
	return buildTicketPDF(data)
}

func (s TicketService) GenerateReceipt(data models.BookingData) ([]byte, string, error) {
	if err := requireCompleted(data); err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "ticket", "generate_receipt", "reference="+data.BookingReference)
	return buildReceiptPDF(data)
}

func requireCompleted(data models.BookingData) error {
	if data.BookingReference == "" {
		return domain.ConflictError{Resource: "ticket", Msg: "booking not completed"}
	}
	return nil
}

func buildTicketPDF(d models.BookingData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Bus Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUS TICKET")
	pdf.Ln(12)

	company, route, date, depart := providerFields(d)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Reference      : %s", d.BookingReference),
		fmt.Sprintf("Passenger      : %s", orDash(d.CustomerDetails.FullName)),
		fmt.Sprintf("ID Number      : %s", orDash(d.CustomerDetails.IDNumber)),
		fmt.Sprintf("Phone          : %s", orDash(d.CustomerDetails.MobilePhone)),
		fmt.Sprintf("Operator       : %s", orDash(company)),
		fmt.Sprintf("Route          : %s", orDash(route)),
		fmt.Sprintf("Date/Time      : %s %s", orDash(date), orDash(utils.TimeHM(depart))),
		fmt.Sprintf("Seats          : %s", orDash(seatList(d))),
		fmt.Sprintf("Total          : %s", utils.FormatKES(d.TotalAmount)),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Present this ticket when boarding. Each listed seat admits one passenger.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "render ticket pdf", Err: err}
	}
	filename := fmt.Sprintf("TICKET_%s.pdf", utils.SafeFilenamePart(d.BookingReference))
	return buf.Bytes(), filename, nil
}

func buildReceiptPDF(d models.BookingData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RECEIPT")
	pdf.Ln(12)

	company, route, date, depart := providerFields(d)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Receipt No  : RCP-"+d.BookingReference)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued      : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Name   : "+orDash(d.CustomerDetails.FullName))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Phone  : "+orDash(d.CustomerDetails.MobilePhone))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Items:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for i, seat := range d.SelectedSeats {
		desc := fmt.Sprintf("%d) %s ticket %s (%s %s) Seat %s - %s",
			i+1, orDash(company), orDash(route), orDash(date), orDash(utils.TimeHM(depart)),
			seat.Number, utils.FormatKES(seat.Fare))
		pdf.MultiCell(0, 6, desc, "", "", false)
		pdf.Ln(1)
	}

	method := ""
	if d.PaymentDetails != nil {
		method = string(d.PaymentDetails.Method)
	}
	pdf.Ln(3)
	pdf.Cell(0, 6, "Payment method: "+orDash(method))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatKES(d.TotalAmount))
	pdf.Ln(12)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "render receipt pdf", Err: err}
	}
	filename := fmt.Sprintf("RECEIPT_%s.pdf", utils.SafeFilenamePart(d.BookingReference))
	return buf.Bytes(), filename, nil
}

func providerFields(d models.BookingData) (company, route, date, depart string) {
	if d.Provider == nil {
		return "", "", "", ""
	}
	return d.Provider.Trip.CompanyName, d.Provider.Trip.RouteName, d.Provider.Criteria.Date, d.Provider.Trip.DepartureTime
}

func seatList(d models.BookingData) string {
	numbers := make([]string, 0, len(d.SelectedSeats))
	for _, s := range d.SelectedSeats {
		numbers = append(numbers, s.Number)
	}
	return utils.JoinSeatNumbers(numbers)
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
