package engine

import "campusbus/internal/domain"

// seatLedger is the authoritative seat count for one trip. Callers must
// hold the trip's critical section; the ledger itself only enforces the
// capacity arithmetic.
type seatLedger struct {
	capacity        int
	facultyReserved int
	booked          int
}

// available is the number of seats still open to students, never negative.
func (l *seatLedger) available() int {
	n := l.capacity - l.facultyReserved - l.booked
	if n < 0 {
		return 0
	}
	return n
}

// reserve takes one seat or fails with NoCapacityError.
func (l *seatLedger) reserve(tripID string) error {
	if l.available() <= 0 {
		return domain.NoCapacityError{TripID: tripID}
	}
	l.booked++
	return nil
}

// release returns one seat, never dropping booked below zero.
func (l *seatLedger) release() {
	if l.booked > 0 {
		l.booked--
	}
}
