package services

import (
	"fmt"

	"campusbus/internal/domain"
	"campusbus/internal/domain/models"
	"campusbus/internal/engine"
	"campusbus/internal/repositories"
	"campusbus/internal/utils"
)

// BookingService wraps the booking engine with persistence and the
// penalty/block policy. The engine is authoritative for live state;
// repository writes mirror each transition into the audit tables.
type BookingService struct {
	Engine      *engine.Engine
	BookingRepo repositories.BookingRepository
	StudentRepo repositories.StudentRepository
	RequestID   string
}

func (s BookingService) core() *engine.Engine {
	if s.Engine != nil {
		return s.Engine
	}
	return engine.Default()
}

// Create books a trip for a student: a confirmed seat when one is free,
// a waitlist spot otherwise. Blocked students are rejected up front.
func (s BookingService) Create(studentID, tripID string) (models.Booking, error) {
	if tripID == "" {
		return models.Booking{}, domain.ValidationError{Field: "tripId", Msg: "required"}
	}

	student, err := s.StudentRepo.GetByID(studentID)
	if err != nil {
		return models.Booking{}, err
	}
	if student.IsBlocked {
		return models.Booking{}, domain.ConflictError{Resource: "student", Msg: "account blocked due to penalties"}
	}

	booking, err := s.core().CreateBooking(studentID, tripID)
	if err != nil {
		return models.Booking{}, err
	}

	if err := s.BookingRepo.Insert(booking); err != nil {
		utils.LogEvent(s.RequestID, "booking", "persist_create",
			fmt.Sprintf("booking_id=%s err=%v", booking.ID, err))
	}
	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking_id=%s trip_id=%s status=%s", booking.ID, tripID, booking.Status))
	return booking, nil
}

// Cancel releases a booking. When studentID is non-empty the booking
// must belong to that student; operators/admins pass "".
func (s BookingService) Cancel(studentID, bookingID string) (engine.CancelResult, error) {
	if bookingID == "" {
		return engine.CancelResult{}, domain.ValidationError{Field: "bookingId", Msg: "required"}
	}

	booking, err := s.core().GetBooking(bookingID)
	if err != nil {
		return engine.CancelResult{}, err
	}
	if studentID != "" && booking.StudentID != studentID {
		// Do not reveal other students' bookings.
		return engine.CancelResult{}, domain.NotFoundError{Resource: "booking"}
	}

	res, err := s.core().CancelBooking(bookingID)
	if err != nil {
		return engine.CancelResult{}, err
	}

	if err := s.BookingRepo.UpdateStatus(res.Cancelled.ID, res.Cancelled.Status, ""); err != nil {
		utils.LogEvent(s.RequestID, "booking", "persist_cancel",
			fmt.Sprintf("booking_id=%s err=%v", res.Cancelled.ID, err))
	}
	if res.Promoted != nil {
		if err := s.BookingRepo.UpdateStatus(res.Promoted.ID, res.Promoted.Status, res.Promoted.QRToken); err != nil {
			utils.LogEvent(s.RequestID, "booking", "persist_promote",
				fmt.Sprintf("booking_id=%s err=%v", res.Promoted.ID, err))
		}
		utils.LogEvent(s.RequestID, "booking", "promote",
			fmt.Sprintf("booking_id=%s trip_id=%s", res.Promoted.ID, res.Promoted.TripID))
	}
	utils.LogEvent(s.RequestID, "booking", "cancel", fmt.Sprintf("booking_id=%s", bookingID))
	return res, nil
}

// History returns every booking the student made, newest first.
func (s BookingService) History(studentID string) ([]models.BookingHistoryEntry, error) {
	return s.BookingRepo.HistoryByStudent(studentID)
}
