package engine

import (
	"sync"
	"testing"
	"time"

	"campusbus/internal/domain"
	"campusbus/internal/domain/models"
	"campusbus/internal/utils"

	"github.com/google/uuid"
)

func testTrip(capacity, facultyReserved int) models.Trip {
	return models.Trip{
		ID:              uuid.NewString(),
		Route:           models.RouteCampusToCity,
		Destination:     "City Center",
		BusNumber:       "BUS-07",
		TripDate:        utils.FormatDate(time.Now().Add(24 * time.Hour)),
		DepartureTime:   "17:30",
		Capacity:        capacity,
		FacultyReserved: facultyReserved,
		Status:          models.TripActive,
	}
}

func newTestEngine(t *testing.T, trip models.Trip) *Engine {
	t.Helper()
	e := New()
	if err := e.AddTrip(trip); err != nil {
		t.Fatalf("AddTrip returned error: %v", err)
	}
	return e
}

func TestCreateBookingConfirmsWithToken(t *testing.T) {
	trip := testTrip(10, 2)
	e := newTestEngine(t, trip)

	b, err := e.CreateBooking("stu-1", trip.ID)
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}
	if b.Status != models.BookingConfirmed {
		t.Fatalf("status = %s, want CONFIRMED", b.Status)
	}
	if b.QRToken == "" {
		t.Fatalf("confirmed booking has no QR token")
	}

	snap, err := e.Snapshot(trip.ID)
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}
	if snap.BookedCount != 1 || snap.AvailableSeats != 7 {
		t.Fatalf("snapshot booked=%d available=%d, want 1/7", snap.BookedCount, snap.AvailableSeats)
	}
}

func TestCreateBookingWaitlistsWhenFull(t *testing.T) {
	trip := testTrip(3, 2) // one bookable seat
	e := newTestEngine(t, trip)

	if _, err := e.CreateBooking("stu-1", trip.ID); err != nil {
		t.Fatalf("first booking returned error: %v", err)
	}

	b2, err := e.CreateBooking("stu-2", trip.ID)
	if err != nil {
		t.Fatalf("second booking returned error: %v", err)
	}
	if b2.Status != models.BookingWaitlist || b2.Position != 1 {
		t.Fatalf("second booking status=%s position=%d, want WAITLIST/1", b2.Status, b2.Position)
	}
	if b2.QRToken != "" {
		t.Fatalf("waitlisted booking must not carry a token")
	}

	b3, err := e.CreateBooking("stu-3", trip.ID)
	if err != nil {
		t.Fatalf("third booking returned error: %v", err)
	}
	if b3.Position != 2 {
		t.Fatalf("third booking position = %d, want 2", b3.Position)
	}
}

func TestDuplicateBookingRejected(t *testing.T) {
	trip := testTrip(3, 0)
	e := newTestEngine(t, trip)

	if _, err := e.CreateBooking("stu-1", trip.ID); err != nil {
		t.Fatalf("first booking returned error: %v", err)
	}
	if _, err := e.CreateBooking("stu-1", trip.ID); !domain.IsDuplicateBooking(err) {
		t.Fatalf("expected DuplicateBookingError, got %v", err)
	}

	// After cancellation a fresh booking is allowed again.
	first, _ := e.Passengers(trip.ID)
	if _, err := e.CancelBooking(first[0].ID); err != nil {
		t.Fatalf("cancel returned error: %v", err)
	}
	if _, err := e.CreateBooking("stu-1", trip.ID); err != nil {
		t.Fatalf("rebooking after cancel returned error: %v", err)
	}
}

func TestCreateBookingOnPastTripClosed(t *testing.T) {
	trip := testTrip(5, 0)
	trip.TripDate = utils.FormatDate(time.Now().Add(-24 * time.Hour))
	e := newTestEngine(t, trip)

	if _, err := e.CreateBooking("stu-1", trip.ID); !domain.IsTripClosed(err) {
		t.Fatalf("expected TripClosedError, got %v", err)
	}
}

func TestStartTripClosesBooking(t *testing.T) {
	trip := testTrip(5, 0)
	e := newTestEngine(t, trip)

	if err := e.StartTrip(trip.ID); err != nil {
		t.Fatalf("StartTrip returned error: %v", err)
	}
	if _, err := e.CreateBooking("stu-1", trip.ID); !domain.IsTripClosed(err) {
		t.Fatalf("expected TripClosedError after departure, got %v", err)
	}
	if err := e.StartTrip(trip.ID); !domain.IsConflict(err) {
		t.Fatalf("expected conflict on double start, got %v", err)
	}
}

func TestCancelRestoresSeatWhenNobodyWaits(t *testing.T) {
	trip := testTrip(4, 1)
	e := newTestEngine(t, trip)

	before, _ := e.Snapshot(trip.ID)
	b, err := e.CreateBooking("stu-1", trip.ID)
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}

	res, err := e.CancelBooking(b.ID)
	if err != nil {
		t.Fatalf("CancelBooking returned error: %v", err)
	}
	if res.Cancelled.Status != models.BookingCancelled {
		t.Fatalf("cancelled status = %s", res.Cancelled.Status)
	}
	if res.Promoted != nil {
		t.Fatalf("unexpected promotion with empty waitlist")
	}

	after, _ := e.Snapshot(trip.ID)
	if after.AvailableSeats != before.AvailableSeats {
		t.Fatalf("available = %d, want %d restored", after.AvailableSeats, before.AvailableSeats)
	}
}

func TestCancelPromotesWaitlistHead(t *testing.T) {
	trip := testTrip(1, 0)
	e := newTestEngine(t, trip)

	a, _ := e.CreateBooking("stu-a", trip.ID)
	b, err := e.CreateBooking("stu-b", trip.ID)
	if err != nil {
		t.Fatalf("waitlist booking returned error: %v", err)
	}
	if b.Status != models.BookingWaitlist || b.Position != 1 {
		t.Fatalf("booking b status=%s position=%d", b.Status, b.Position)
	}

	res, err := e.CancelBooking(a.ID)
	if err != nil {
		t.Fatalf("CancelBooking returned error: %v", err)
	}
	if res.Promoted == nil {
		t.Fatalf("expected promotion of waitlist head")
	}
	if res.Promoted.ID != b.ID || res.Promoted.Status != models.BookingConfirmed {
		t.Fatalf("promoted id=%s status=%s", res.Promoted.ID, res.Promoted.Status)
	}
	if res.Promoted.QRToken == "" || res.Promoted.QRToken == a.QRToken {
		t.Fatalf("promoted booking needs a freshly issued token")
	}

	snap, _ := e.Snapshot(trip.ID)
	if snap.WaitlistCount != 0 || snap.BookedCount != 1 {
		t.Fatalf("snapshot waitlist=%d booked=%d, want 0/1", snap.WaitlistCount, snap.BookedCount)
	}

	// The cancelled booking's old token must no longer validate.
	scan, err := e.ValidateToken(a.QRToken, trip.ID)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if scan.Status != ScanInvalid {
		t.Fatalf("stale token scan = %s, want INVALID", scan.Status)
	}
}

func TestCancelWaitlistedBookingLeavesSeats(t *testing.T) {
	trip := testTrip(1, 0)
	e := newTestEngine(t, trip)

	e.CreateBooking("stu-a", trip.ID)
	b, _ := e.CreateBooking("stu-b", trip.ID)
	c, _ := e.CreateBooking("stu-c", trip.ID)

	if _, err := e.CancelBooking(b.ID); err != nil {
		t.Fatalf("CancelBooking returned error: %v", err)
	}

	got, err := e.GetBooking(c.ID)
	if err != nil {
		t.Fatalf("GetBooking returned error: %v", err)
	}
	if got.Position != 1 {
		t.Fatalf("position of c after b left = %d, want 1", got.Position)
	}

	snap, _ := e.Snapshot(trip.ID)
	if snap.BookedCount != 1 || snap.WaitlistCount != 1 {
		t.Fatalf("snapshot booked=%d waitlist=%d, want 1/1", snap.BookedCount, snap.WaitlistCount)
	}
}

func TestCancelTerminalBookingFails(t *testing.T) {
	trip := testTrip(2, 0)
	e := newTestEngine(t, trip)

	b, _ := e.CreateBooking("stu-1", trip.ID)
	if _, err := e.CancelBooking(b.ID); err != nil {
		t.Fatalf("first cancel returned error: %v", err)
	}
	if _, err := e.CancelBooking(b.ID); !domain.IsInvalidState(err) {
		t.Fatalf("expected InvalidStateError on double cancel, got %v", err)
	}

	s, _ := e.CreateBooking("stu-2", trip.ID)
	if scan, _ := e.ValidateToken(s.QRToken, trip.ID); scan.Status != ScanValid {
		t.Fatalf("scan = %s, want VALID", scan.Status)
	}
	if _, err := e.CancelBooking(s.ID); !domain.IsInvalidState(err) {
		t.Fatalf("expected InvalidStateError cancelling scanned booking, got %v", err)
	}
}

func TestValidateTokenOnceThenDuplicate(t *testing.T) {
	trip := testTrip(2, 0)
	e := newTestEngine(t, trip)

	b, _ := e.CreateBooking("stu-1", trip.ID)

	scan, err := e.ValidateToken(b.QRToken, trip.ID)
	if err != nil {
		t.Fatalf("first validation returned error: %v", err)
	}
	if scan.Status != ScanValid || scan.Booking == nil || scan.Booking.Status != models.BookingScanned {
		t.Fatalf("first validation = %+v, want VALID/SCANNED", scan)
	}

	scan, err = e.ValidateToken(b.QRToken, trip.ID)
	if err != nil {
		t.Fatalf("second validation returned error: %v", err)
	}
	if scan.Status != ScanDuplicate {
		t.Fatalf("second validation = %s, want DUPLICATE", scan.Status)
	}
}

func TestValidateTokenWrongTripOrUnknown(t *testing.T) {
	trip := testTrip(2, 0)
	other := testTrip(2, 0)
	e := newTestEngine(t, trip)
	if err := e.AddTrip(other); err != nil {
		t.Fatalf("AddTrip returned error: %v", err)
	}

	b, _ := e.CreateBooking("stu-1", trip.ID)

	if scan, _ := e.ValidateToken(b.QRToken, other.ID); scan.Status != ScanInvalid {
		t.Fatalf("wrong-trip scan = %s, want INVALID", scan.Status)
	}
	if scan, _ := e.ValidateToken("no-such-token", trip.ID); scan.Status != ScanInvalid {
		t.Fatalf("unknown-token scan = %s, want INVALID", scan.Status)
	}

	// Still valid for the correct trip afterwards.
	if scan, _ := e.ValidateToken(b.QRToken, trip.ID); scan.Status != ScanValid {
		t.Fatalf("correct-trip scan after misses = %s, want VALID", scan.Status)
	}
}

func TestConcurrentScansSingleValid(t *testing.T) {
	trip := testTrip(2, 0)
	e := newTestEngine(t, trip)
	b, _ := e.CreateBooking("stu-1", trip.ID)

	const scanners = 16
	results := make(chan ScanStatus, scanners)
	var wg sync.WaitGroup
	for i := 0; i < scanners; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			scan, err := e.ValidateToken(b.QRToken, trip.ID)
			if err != nil {
				t.Errorf("ValidateToken returned error: %v", err)
				return
			}
			results <- scan.Status
		}()
	}
	wg.Wait()
	close(results)

	valid, duplicate := 0, 0
	for s := range results {
		switch s {
		case ScanValid:
			valid++
		case ScanDuplicate:
			duplicate++
		}
	}
	if valid != 1 {
		t.Fatalf("got %d VALID results, want exactly 1", valid)
	}
	if duplicate != scanners-1 {
		t.Fatalf("got %d DUPLICATE results, want %d", duplicate, scanners-1)
	}
}

func TestConcurrentBookingsNoOverbooking(t *testing.T) {
	const capacity = 8
	const students = 40
	trip := testTrip(capacity, 0)
	e := newTestEngine(t, trip)

	var wg sync.WaitGroup
	statuses := make(chan models.BookingStatus, students)
	for i := 0; i < students; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			b, err := e.CreateBooking("stu-"+string(rune('A'+n/26))+string(rune('a'+n%26)), trip.ID)
			if err != nil {
				t.Errorf("CreateBooking returned error: %v", err)
				return
			}
			statuses <- b.Status
		}(i)
	}
	wg.Wait()
	close(statuses)

	confirmed, waitlisted := 0, 0
	for s := range statuses {
		switch s {
		case models.BookingConfirmed:
			confirmed++
		case models.BookingWaitlist:
			waitlisted++
		}
	}
	if confirmed != capacity {
		t.Fatalf("confirmed = %d, want %d", confirmed, capacity)
	}
	if waitlisted != students-capacity {
		t.Fatalf("waitlisted = %d, want %d", waitlisted, students-capacity)
	}

	snap, _ := e.Snapshot(trip.ID)
	if snap.BookedCount > trip.Capacity-trip.FacultyReserved {
		t.Fatalf("overbooked: booked=%d pool=%d", snap.BookedCount, trip.Capacity-trip.FacultyReserved)
	}
	if snap.AvailableSeats != 0 || snap.WaitlistCount != students-capacity {
		t.Fatalf("snapshot available=%d waitlist=%d", snap.AvailableSeats, snap.WaitlistCount)
	}
}

func TestFIFOPreservedUnderInterleavedCancellations(t *testing.T) {
	trip := testTrip(1, 0)
	e := newTestEngine(t, trip)

	seat, _ := e.CreateBooking("stu-seat", trip.ID)
	w1, _ := e.CreateBooking("stu-w1", trip.ID)
	w2, _ := e.CreateBooking("stu-w2", trip.ID)
	w3, _ := e.CreateBooking("stu-w3", trip.ID)

	// w2 leaves the queue; order of the rest must hold.
	if _, err := e.CancelBooking(w2.ID); err != nil {
		t.Fatalf("cancel w2 returned error: %v", err)
	}

	res, err := e.CancelBooking(seat.ID)
	if err != nil {
		t.Fatalf("cancel seat holder returned error: %v", err)
	}
	if res.Promoted == nil || res.Promoted.ID != w1.ID {
		t.Fatalf("promoted %v, want w1", res.Promoted)
	}

	got, _ := e.GetBooking(w3.ID)
	if got.Position != 1 {
		t.Fatalf("w3 position = %d, want 1", got.Position)
	}
}

func TestRestoreRebuildsLiveState(t *testing.T) {
	trip := testTrip(2, 0)
	now := time.Now()
	confirmed := models.Booking{
		ID: "b-confirmed", TripID: trip.ID, StudentID: "stu-1",
		Status: models.BookingConfirmed, QRToken: "tok-confirmed", CreatedAt: now,
	}
	scanned := models.Booking{
		ID: "b-scanned", TripID: trip.ID, StudentID: "stu-2",
		Status: models.BookingScanned, QRToken: "tok-scanned", CreatedAt: now.Add(time.Second),
	}
	waitlisted := models.Booking{
		ID: "b-waiting", TripID: trip.ID, StudentID: "stu-3",
		Status: models.BookingWaitlist, CreatedAt: now.Add(2 * time.Second),
	}
	cancelled := models.Booking{
		ID: "b-cancelled", TripID: trip.ID, StudentID: "stu-4",
		Status: models.BookingCancelled, CreatedAt: now,
	}

	e := New()
	// Deliberately shuffled input: Restore must order by creation time.
	if err := e.Restore(trip, []models.Booking{waitlisted, cancelled, scanned, confirmed}); err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}

	snap, _ := e.Snapshot(trip.ID)
	if snap.BookedCount != 2 || snap.WaitlistCount != 1 || snap.AvailableSeats != 0 {
		t.Fatalf("snapshot booked=%d waitlist=%d available=%d", snap.BookedCount, snap.WaitlistCount, snap.AvailableSeats)
	}

	if scan, _ := e.ValidateToken("tok-confirmed", trip.ID); scan.Status != ScanValid {
		t.Fatalf("restored token scan = %s, want VALID", scan.Status)
	}
	if scan, _ := e.ValidateToken("tok-scanned", trip.ID); scan.Status != ScanDuplicate {
		t.Fatalf("restored scanned-token scan = %s, want DUPLICATE", scan.Status)
	}

	if _, err := e.CreateBooking("stu-3", trip.ID); !domain.IsDuplicateBooking(err) {
		t.Fatalf("expected DuplicateBookingError for restored waitlister, got %v", err)
	}
	if _, err := e.CreateBooking("stu-4", trip.ID); domain.IsDuplicateBooking(err) {
		t.Fatalf("cancelled booking must not block a new one")
	}
}

func TestListAvailableFiltersAndSorts(t *testing.T) {
	e := New()
	date := utils.FormatDate(time.Now().Add(24 * time.Hour))

	late := testTrip(10, 0)
	late.TripDate = date
	late.DepartureTime = "18:00"
	early := testTrip(10, 0)
	early.TripDate = date
	early.DepartureTime = "08:15"
	otherRoute := testTrip(10, 0)
	otherRoute.TripDate = date
	otherRoute.Route = models.RouteCityToCampus

	for _, tr := range []models.Trip{late, early, otherRoute} {
		if err := e.AddTrip(tr); err != nil {
			t.Fatalf("AddTrip returned error: %v", err)
		}
	}

	trips := e.ListAvailable(models.RouteCampusToCity, date)
	if len(trips) != 2 {
		t.Fatalf("got %d trips, want 2", len(trips))
	}
	if trips[0].ID != early.ID || trips[1].ID != late.ID {
		t.Fatalf("trips not sorted by departure time")
	}
}
