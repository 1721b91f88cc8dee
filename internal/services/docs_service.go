package services

import (
	"bytes"
	"fmt"
	"time"

	"campusbus/internal/domain"
	"campusbus/internal/domain/models"
	"campusbus/internal/engine"
	"campusbus/internal/repositories"
	"campusbus/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the PDF documents: the student's e-ticket and the
// operator's boarding manifest.
type DocsService struct {
	Engine      *engine.Engine
	StudentRepo repositories.StudentRepository
	RequestID   string

	// Loaders override data access in tests.
	TicketLoader   func(bookingID string) (eticketData, error)
	ManifestLoader func(tripID string) (manifestData, error)
}

type eticketData struct {
	BookingID     string
	StudentName   string
	Route         models.Route
	Destination   string
	BusNumber     string
	TripDate      string
	DepartureTime string
	QRToken       string
}

type manifestData struct {
	Trip       models.TripAvailability
	Passengers []PassengerEntry
}

func (s DocsService) core() *engine.Engine {
	if s.Engine != nil {
		return s.Engine
	}
	return engine.Default()
}

// ETicket renders the boarding pass for a confirmed booking owned by
// the student. Waitlisted and cancelled bookings have no ticket.
func (s DocsService) ETicket(bookingID, studentID string) ([]byte, string, error) {
	data, err := s.loadTicket(bookingID, studentID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("booking_id=%s", bookingID))
	return buildETicketPDF(data)
}

// Manifest renders the boarding list for a trip.
func (s DocsService) Manifest(tripID string) ([]byte, string, error) {
	data, err := s.loadManifest(tripID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_manifest", fmt.Sprintf("trip_id=%s", tripID))
	return buildManifestPDF(data)
}

func (s DocsService) loadTicket(bookingID, studentID string) (eticketData, error) {
	if s.TicketLoader != nil {
		return s.TicketLoader(bookingID)
	}
	var out eticketData

	booking, err := s.core().GetBooking(bookingID)
	if err != nil {
		return out, err
	}
	if studentID != "" && booking.StudentID != studentID {
		return out, domain.NotFoundError{Resource: "booking"}
	}
	if booking.Status != models.BookingConfirmed && booking.Status != models.BookingScanned {
		return out, domain.ConflictError{Resource: "booking", Msg: "no ticket for this booking status"}
	}

	trip, err := s.core().Snapshot(booking.TripID)
	if err != nil {
		return out, err
	}

	out = eticketData{
		BookingID:     booking.ID,
		Route:         trip.Route,
		Destination:   trip.Destination,
		BusNumber:     trip.BusNumber,
		TripDate:      trip.TripDate,
		DepartureTime: trip.DepartureTime,
		QRToken:       booking.QRToken,
	}
	if student, err := s.StudentRepo.GetByID(booking.StudentID); err == nil {
		out.StudentName = student.Name
	}
	return out, nil
}

func (s DocsService) loadManifest(tripID string) (manifestData, error) {
	if s.ManifestLoader != nil {
		return s.ManifestLoader(tripID)
	}
	trip, err := s.core().Snapshot(tripID)
	if err != nil {
		return manifestData{}, err
	}
	passengers, err := OperatorService{Engine: s.Engine, StudentRepo: s.StudentRepo, RequestID: s.RequestID}.PassengerList(tripID)
	if err != nil {
		return manifestData{}, err
	}
	return manifestData{Trip: trip, Passengers: passengers}, nil
}

func routeLabel(r models.Route) string {
	if r == models.RouteCampusToCity {
		return "Campus to City"
	}
	return "City to Campus"
}

func buildETicketPDF(d eticketData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Bus E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "CAMPUS BUS E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Passenger : %s", safe(d.StudentName, "-")),
		fmt.Sprintf("Route     : %s", routeLabel(d.Route)),
		fmt.Sprintf("Bus       : %s", safe(d.BusNumber, "-")),
		fmt.Sprintf("Date/Time : %s %s", safe(d.TripDate, "-"), safe(d.DepartureTime, "-")),
		fmt.Sprintf("Booking   : %s", d.BookingID),
	}
	if d.Destination != "" {
		lines = append(lines, fmt.Sprintf("Drop-off  : %s", d.Destination))
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Courier", "B", 11)
	pdf.MultiCell(0, 6, "Boarding code: "+d.QRToken, "", "", false)

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Show the QR code in the app at boarding. The code is valid for a single scan.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("ETICKET_%s.pdf", d.BookingID)
	return buf.Bytes(), filename, nil
}

func buildManifestPDF(d manifestData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Boarding Manifest", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOARDING MANIFEST")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Route     : %s", routeLabel(d.Trip.Route)))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Bus       : %s", safe(d.Trip.BusNumber, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Date/Time : %s %s", d.Trip.TripDate, d.Trip.DepartureTime))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Booked %d / Waitlist %d / Free %d",
		d.Trip.BookedCount, d.Trip.WaitlistCount, d.Trip.AvailableSeats))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(10, 7, "#", "1", 0, "C", false, 0, "")
	pdf.CellFormat(80, 7, "Passenger", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Room", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Status", "1", 0, "L", false, 0, "")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 11)
	for i, p := range d.Passengers {
		pdf.CellFormat(10, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(80, 7, safe(p.StudentName, p.StudentID), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, safe(p.Room, "-"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, string(p.Status), "1", 0, "L", false, 0, "")
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Generated "+time.Now().Format("2006-01-02 15:04"), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("MANIFEST_%s_%s.pdf", d.Trip.TripDate, d.Trip.ID)
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
