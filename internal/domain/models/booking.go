package models

import "time"

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingWaitlist  BookingStatus = "WAITLIST"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingScanned   BookingStatus = "SCANNED"
)

// Active reports whether the status still counts against the one
// booking per (student, trip) rule.
func (s BookingStatus) Active() bool {
	return s == BookingConfirmed || s == BookingWaitlist || s == BookingScanned
}

// Terminal reports whether no further transition is allowed out of s,
// cancellation included.
func (s BookingStatus) Terminal() bool {
	return s == BookingCancelled || s == BookingScanned
}

// Booking is a student's claim on a trip. Position is meaningful only
// while the status is WAITLIST; QRToken only while CONFIRMED or SCANNED.
type Booking struct {
	ID        string        `json:"bookingId"`
	TripID    string        `json:"tripId"`
	StudentID string        `json:"studentId"`
	Status    BookingStatus `json:"status"`
	Position  int           `json:"position,omitempty"`
	QRToken   string        `json:"qrToken,omitempty"`
	CreatedAt time.Time     `json:"bookedAt"`
}

// BookingHistoryEntry joins a booking with its trip for the history list.
type BookingHistoryEntry struct {
	BookingID     string        `json:"bookingId"`
	TripID        string        `json:"tripId"`
	Status        BookingStatus `json:"status"`
	BookedAt      string        `json:"bookedAt"`
	Route         Route         `json:"route"`
	TripDate      string        `json:"tripDate"`
	DepartureTime string        `json:"departureTime"`
}
