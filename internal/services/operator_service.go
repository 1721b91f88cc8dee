package services

import (
	"fmt"

	"campusbus/internal/domain"
	"campusbus/internal/domain/models"
	"campusbus/internal/engine"
	"campusbus/internal/repositories"
	"campusbus/internal/utils"

	"github.com/google/uuid"
)

type OperatorService struct {
	Engine      *engine.Engine
	BookingRepo repositories.BookingRepository
	StudentRepo repositories.StudentRepository
	ReportRepo  repositories.ReportRepository
	RequestID   string
}

func (s OperatorService) core() *engine.Engine {
	if s.Engine != nil {
		return s.Engine
	}
	return engine.Default()
}

// PassengerEntry is one row of the operator's boarding list.
type PassengerEntry struct {
	BookingID   string               `json:"bookingId"`
	StudentID   string               `json:"studentId"`
	StudentName string               `json:"studentName"`
	Room        string               `json:"room"`
	Status      models.BookingStatus `json:"status"`
}

// PassengerList joins the engine's boarding list with student records.
func (s OperatorService) PassengerList(tripID string) ([]PassengerEntry, error) {
	bookings, err := s.core().Passengers(tripID)
	if err != nil {
		return nil, err
	}

	out := make([]PassengerEntry, 0, len(bookings))
	for _, b := range bookings {
		entry := PassengerEntry{
			BookingID: b.ID,
			StudentID: b.StudentID,
			Status:    b.Status,
		}
		if student, err := s.StudentRepo.GetByID(b.StudentID); err == nil {
			entry.StudentName = student.Name
			entry.Room = student.Room
		}
		out = append(out, entry)
	}
	return out, nil
}

// ScanOutcome is what the scanner screen renders after a QR validation.
type ScanOutcome struct {
	Status      engine.ScanStatus `json:"status"`
	StudentName string            `json:"studentName,omitempty"`
}

// ValidateQR checks a scanned token against a trip and writes the
// SCANNED transition through to the audit row.
func (s OperatorService) ValidateQR(token, tripID string) (ScanOutcome, error) {
	if token == "" || tripID == "" {
		return ScanOutcome{}, domain.ValidationError{Field: "qrToken/tripId", Msg: "required"}
	}

	scan, err := s.core().ValidateToken(token, tripID)
	if err != nil {
		return ScanOutcome{}, err
	}

	out := ScanOutcome{Status: scan.Status}
	if scan.Booking != nil {
		if student, err := s.StudentRepo.GetByID(scan.Booking.StudentID); err == nil {
			out.StudentName = student.Name
		}
		if scan.Status == engine.ScanValid {
			if err := s.BookingRepo.UpdateStatus(scan.Booking.ID, scan.Booking.Status, scan.Booking.QRToken); err != nil {
				utils.LogEvent(s.RequestID, "qr", "persist_scan",
					fmt.Sprintf("booking_id=%s err=%v", scan.Booking.ID, err))
			}
		}
	}
	utils.LogEvent(s.RequestID, "qr", "validate",
		fmt.Sprintf("trip_id=%s token=%s status=%s", tripID, utils.MaskToken(token), out.Status))
	return out, nil
}

// SubmitReport files an incident against a student and applies one
// penalty. Three penalties block the account from booking.
func (s OperatorService) SubmitReport(rep models.IncidentReport) (penaltyCount int, blocked bool, err error) {
	if rep.TripID == "" || rep.StudentID == "" {
		return 0, false, domain.ValidationError{Field: "tripId/studentId", Msg: "required"}
	}
	if !models.ValidIncidentType(rep.IncidentType) {
		return 0, false, domain.ValidationError{Field: "incidentType", Msg: "unknown incident type"}
	}
	if _, err := s.StudentRepo.GetByID(rep.StudentID); err != nil {
		return 0, false, err
	}

	rep.ID = uuid.NewString()
	if err := s.ReportRepo.Insert(rep); err != nil {
		return 0, false, domain.InternalError{Msg: "saving report", Err: err}
	}

	penaltyCount, blocked, err = s.StudentRepo.AddPenalty(rep.StudentID)
	if err != nil {
		return 0, false, domain.InternalError{Msg: "applying penalty", Err: err}
	}

	utils.LogEvent(s.RequestID, "report", "submit",
		fmt.Sprintf("report_id=%s student_id=%s type=%s penalties=%d blocked=%v",
			rep.ID, rep.StudentID, rep.IncidentType, penaltyCount, blocked))
	return penaltyCount, blocked, nil
}
