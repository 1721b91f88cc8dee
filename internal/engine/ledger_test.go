package engine

import (
	"testing"

	"campusbus/internal/domain"
)

func TestLedgerReserveUntilFull(t *testing.T) {
	l := seatLedger{capacity: 5, facultyReserved: 2}

	for i := 0; i < 3; i++ {
		if err := l.reserve("t1"); err != nil {
			t.Fatalf("reserve %d returned error: %v", i, err)
		}
	}
	if l.available() != 0 {
		t.Fatalf("expected 0 available, got %d", l.available())
	}

	err := l.reserve("t1")
	if err == nil {
		t.Fatalf("expected NoCapacity on full ledger")
	}
	if !domain.IsNoCapacity(err) {
		t.Fatalf("expected NoCapacityError, got %v", err)
	}
	if l.booked != 3 {
		t.Fatalf("failed reserve must not change booked, got %d", l.booked)
	}
}

func TestLedgerReleaseNeverExceedsPool(t *testing.T) {
	l := seatLedger{capacity: 4, facultyReserved: 1}

	l.release()
	if l.booked != 0 {
		t.Fatalf("release on empty ledger changed booked to %d", l.booked)
	}

	if err := l.reserve("t1"); err != nil {
		t.Fatalf("reserve returned error: %v", err)
	}
	l.release()
	if l.available() != 3 {
		t.Fatalf("expected 3 available after release, got %d", l.available())
	}
}
