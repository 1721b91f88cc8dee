package engine

import (
	"sort"
	"sync"
	"time"

	"campusbus/internal/domain"
	"campusbus/internal/domain/models"
	"campusbus/internal/utils"

	"github.com/google/uuid"
)

// DefaultLockWait bounds how long an operation waits for a trip's
// critical section before giving up with a retryable LockTimeoutError.
const DefaultLockWait = 2 * time.Second

type ScanStatus string

const (
	ScanValid     ScanStatus = "VALID"
	ScanDuplicate ScanStatus = "DUPLICATE"
	ScanInvalid   ScanStatus = "INVALID"
)

// Engine owns the live booking state: seat ledgers, waitlist queues,
// booking lifecycles and QR tokens. All operations on one trip are
// serialized through a per-trip lock; different trips proceed in
// parallel. Persistence is the caller's concern — the engine reports
// what changed and the service layer writes it through.
type Engine struct {
	mu       sync.Mutex
	trips    map[string]*tripState
	bookings map[string]*models.Booking
	tokens   map[string]string // QR token -> booking ID
	active   map[string]string // tripID+studentID -> active booking ID
	locks    *keyedLock
	lockWait time.Duration
	now      func() time.Time
}

type tripState struct {
	trip   models.Trip
	ledger seatLedger
	queue  waitlist
}

func New() *Engine {
	return &Engine{
		trips:    map[string]*tripState{},
		bookings: map[string]*models.Booking{},
		tokens:   map[string]string{},
		active:   map[string]string{},
		locks:    newKeyedLock(),
		lockWait: DefaultLockWait,
		now:      time.Now,
	}
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default is the process-wide engine shared by handlers and services.
func Default() *Engine {
	defaultOnce.Do(func() { defaultEngine = New() })
	return defaultEngine
}

func activeKey(tripID, studentID string) string {
	return tripID + "\x00" + studentID
}

// CancelResult reports the cancelled booking plus the waitlisted booking
// promoted into the freed seat, when there was one.
type CancelResult struct {
	Cancelled models.Booking
	Promoted  *models.Booking
}

// ScanResult is the outcome of a QR validation.
type ScanResult struct {
	Status  ScanStatus
	Booking *models.Booking
}

// AddTrip registers a trip with an empty ledger and queue.
func (e *Engine) AddTrip(trip models.Trip) error {
	if trip.ID == "" || trip.Capacity <= 0 || trip.FacultyReserved < 0 || trip.FacultyReserved >= trip.Capacity {
		return domain.ValidationError{Field: "trip", Msg: "invalid capacity configuration"}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.trips[trip.ID]; ok {
		return domain.ConflictError{Resource: "trip", Msg: "already registered"}
	}
	if trip.Status == "" {
		trip.Status = models.TripActive
	}
	e.trips[trip.ID] = &tripState{
		trip:   trip,
		ledger: seatLedger{capacity: trip.Capacity, facultyReserved: trip.FacultyReserved},
	}
	return nil
}

// Restore rebuilds a trip's live state from persisted bookings, used at
// startup. Waitlisted bookings are re-queued in creation order.
func (e *Engine) Restore(trip models.Trip, bookings []models.Booking) error {
	if err := e.AddTrip(trip); err != nil {
		return err
	}
	sorted := make([]models.Booking, len(bookings))
	copy(sorted, bookings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	e.mu.Lock()
	defer e.mu.Unlock()
	ts := e.trips[trip.ID]
	for i := range sorted {
		b := sorted[i]
		if b.TripID != trip.ID || !b.Status.Active() {
			continue
		}
		stored := b
		switch b.Status {
		case models.BookingConfirmed, models.BookingScanned:
			ts.ledger.booked++
			if stored.QRToken != "" {
				e.tokens[stored.QRToken] = stored.ID
			}
		case models.BookingWaitlist:
			stored.Position = ts.queue.enqueue(stored.ID, stored.CreatedAt)
		}
		e.bookings[stored.ID] = &stored
		e.active[activeKey(trip.ID, stored.StudentID)] = stored.ID
	}
	return nil
}

// tripOpen reports whether new bookings are accepted for the trip.
func (e *Engine) tripOpen(ts *tripState) bool {
	if ts.trip.Status != models.TripActive {
		return false
	}
	departs, err := utils.CombineDateTime(ts.trip.TripDate, ts.trip.DepartureTime)
	if err != nil {
		return false
	}
	return e.now().Before(departs)
}

// CreateBooking claims a seat for the student or queues them. Confirmed
// bookings leave with a freshly issued QR token; full trips produce a
// WAITLIST booking carrying its 1-based queue position.
func (e *Engine) CreateBooking(studentID, tripID string) (models.Booking, error) {
	e.mu.Lock()
	ts, ok := e.trips[tripID]
	e.mu.Unlock()
	if !ok {
		return models.Booking{}, domain.NotFoundError{Resource: "trip"}
	}

	release, err := e.locks.acquire(tripID, e.lockWait)
	if err != nil {
		return models.Booking{}, err
	}
	defer release()

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.tripOpen(ts) {
		return models.Booking{}, domain.TripClosedError{TripID: tripID}
	}
	if _, exists := e.active[activeKey(tripID, studentID)]; exists {
		return models.Booking{}, domain.DuplicateBookingError{StudentID: studentID, TripID: tripID}
	}

	booking := models.Booking{
		ID:        uuid.NewString(),
		TripID:    tripID,
		StudentID: studentID,
		CreatedAt: e.now(),
	}

	if err := ts.ledger.reserve(tripID); err == nil {
		token, terr := newToken()
		if terr != nil {
			ts.ledger.release()
			return models.Booking{}, terr
		}
		booking.Status = models.BookingConfirmed
		booking.QRToken = token
		e.tokens[token] = booking.ID
	} else if domain.IsNoCapacity(err) {
		booking.Status = models.BookingWaitlist
		booking.Position = ts.queue.enqueue(booking.ID, booking.CreatedAt)
	} else {
		return models.Booking{}, err
	}

	stored := booking
	e.bookings[stored.ID] = &stored
	e.active[activeKey(tripID, studentID)] = stored.ID
	return booking, nil
}

// CancelBooking moves a booking to CANCELLED. Cancelling a confirmed
// booking frees its seat and synchronously promotes the waitlist head;
// cancelling a waitlisted booking just leaves the queue. Terminal
// bookings fail with InvalidStateError.
func (e *Engine) CancelBooking(bookingID string) (CancelResult, error) {
	e.mu.Lock()
	b, ok := e.bookings[bookingID]
	if !ok {
		e.mu.Unlock()
		return CancelResult{}, domain.NotFoundError{Resource: "booking"}
	}
	tripID := b.TripID
	e.mu.Unlock()

	release, err := e.locks.acquire(tripID, e.lockWait)
	if err != nil {
		return CancelResult{}, err
	}
	defer release()

	e.mu.Lock()
	defer e.mu.Unlock()

	ts := e.trips[tripID]
	if !canTransition(b.Status, models.BookingCancelled) {
		return CancelResult{}, domain.InvalidStateError{BookingID: bookingID, From: string(b.Status)}
	}

	var result CancelResult
	switch b.Status {
	case models.BookingConfirmed:
		// Issue the promotion token up front so a token failure leaves
		// the cancellation fully unapplied.
		nextID, hasNext := ts.queue.peekNext()
		var token string
		if hasNext {
			var terr error
			if token, terr = newToken(); terr != nil {
				return CancelResult{}, terr
			}
		}

		if b.QRToken != "" {
			delete(e.tokens, b.QRToken)
			b.QRToken = ""
		}
		b.Status = models.BookingCancelled
		ts.ledger.release()

		if hasNext {
			ts.queue.dequeueNext()
			// Cannot fail: the seat was freed inside this critical section.
			_ = ts.ledger.reserve(tripID)
			next := e.bookings[nextID]
			next.Status = models.BookingConfirmed
			next.Position = 0
			next.QRToken = token
			e.tokens[token] = nextID
			promoted := *next
			result.Promoted = &promoted
		}

	case models.BookingWaitlist:
		b.Status = models.BookingCancelled
		b.Position = 0
		ts.queue.remove(bookingID)
	}

	delete(e.active, activeKey(tripID, b.StudentID))
	result.Cancelled = *b
	return result, nil
}

// ValidateToken checks a scanned QR token against a trip. The
// CONFIRMED→SCANNED flip happens inside the trip's critical section, so
// two simultaneous scans of one token can never both read VALID.
func (e *Engine) ValidateToken(token, tripID string) (ScanResult, error) {
	e.mu.Lock()
	bookingID, ok := e.tokens[token]
	if !ok {
		e.mu.Unlock()
		return ScanResult{Status: ScanInvalid}, nil
	}
	b := e.bookings[bookingID]
	boundTrip := b.TripID
	e.mu.Unlock()

	if boundTrip != tripID {
		return ScanResult{Status: ScanInvalid}, nil
	}

	release, err := e.locks.acquire(boundTrip, e.lockWait)
	if err != nil {
		return ScanResult{}, err
	}
	defer release()

	e.mu.Lock()
	defer e.mu.Unlock()

	// Re-check under the lock: the booking may have been cancelled or
	// scanned while we waited.
	if id, ok := e.tokens[token]; !ok || id != bookingID {
		return ScanResult{Status: ScanInvalid}, nil
	}
	switch b.Status {
	case models.BookingScanned:
		scanned := *b
		return ScanResult{Status: ScanDuplicate, Booking: &scanned}, nil
	case models.BookingConfirmed:
		b.Status = models.BookingScanned
		scanned := *b
		return ScanResult{Status: ScanValid, Booking: &scanned}, nil
	default:
		return ScanResult{Status: ScanInvalid}, nil
	}
}

// StartTrip marks the trip departed, closing it for new bookings.
func (e *Engine) StartTrip(tripID string) error {
	release, err := e.locks.acquire(tripID, e.lockWait)
	if err != nil {
		return err
	}
	defer release()

	e.mu.Lock()
	defer e.mu.Unlock()
	ts, ok := e.trips[tripID]
	if !ok {
		return domain.NotFoundError{Resource: "trip"}
	}
	if ts.trip.Status != models.TripActive {
		return domain.ConflictError{Resource: "trip", Msg: "not active"}
	}
	ts.trip.Status = models.TripDeparted
	return nil
}

func (e *Engine) snapshotLocked(ts *tripState) models.TripAvailability {
	return models.TripAvailability{
		Trip:           ts.trip,
		BookedCount:    ts.ledger.booked,
		WaitlistCount:  ts.queue.len(),
		AvailableSeats: ts.ledger.available(),
	}
}

// Snapshot returns live counts for one trip.
func (e *Engine) Snapshot(tripID string) (models.TripAvailability, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ts, ok := e.trips[tripID]
	if !ok {
		return models.TripAvailability{}, domain.NotFoundError{Resource: "trip"}
	}
	return e.snapshotLocked(ts), nil
}

// ListAvailable returns snapshots of active trips for a route and date,
// ordered by departure time.
func (e *Engine) ListAvailable(route models.Route, date string) []models.TripAvailability {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := []models.TripAvailability{}
	for _, ts := range e.trips {
		if ts.trip.Route != route || ts.trip.TripDate != date || ts.trip.Status != models.TripActive {
			continue
		}
		out = append(out, e.snapshotLocked(ts))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DepartureTime == out[j].DepartureTime {
			return out[i].ID < out[j].ID
		}
		return out[i].DepartureTime < out[j].DepartureTime
	})
	return out
}

// ListForDate returns snapshots of every trip on a date regardless of
// status, for the operator day view.
func (e *Engine) ListForDate(date string) []models.TripAvailability {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := []models.TripAvailability{}
	for _, ts := range e.trips {
		if ts.trip.TripDate != date {
			continue
		}
		out = append(out, e.snapshotLocked(ts))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DepartureTime == out[j].DepartureTime {
			return out[i].ID < out[j].ID
		}
		return out[i].DepartureTime < out[j].DepartureTime
	})
	return out
}

// GetBooking returns a copy of a booking with its waitlist position
// re-derived from current queue order.
func (e *Engine) GetBooking(bookingID string) (models.Booking, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.bookings[bookingID]
	if !ok {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	out := *b
	if out.Status == models.BookingWaitlist {
		if ts, ok := e.trips[out.TripID]; ok {
			if pos, ok := ts.queue.positionOf(out.ID); ok {
				out.Position = pos
			}
		}
	}
	return out, nil
}

// Passengers lists CONFIRMED and SCANNED bookings for a trip in booking
// order, for the operator's boarding list.
func (e *Engine) Passengers(tripID string) ([]models.Booking, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.trips[tripID]; !ok {
		return nil, domain.NotFoundError{Resource: "trip"}
	}
	out := []models.Booking{}
	for _, b := range e.bookings {
		if b.TripID != tripID {
			continue
		}
		if b.Status == models.BookingConfirmed || b.Status == models.BookingScanned {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
