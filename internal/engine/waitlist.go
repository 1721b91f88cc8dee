package engine

import "time"

type waitEntry struct {
	bookingID  string
	enqueuedAt time.Time
}

// waitlist is the FIFO queue of waitlisted bookings for one trip.
// Positions are 1-based and always derived from the current order;
// they are never stored on the entries themselves. Timestamp ties keep
// insertion order (append-only slice, stable by construction).
type waitlist struct {
	entries []waitEntry
}

// enqueue appends and returns the assigned 1-based position.
func (w *waitlist) enqueue(bookingID string, at time.Time) int {
	w.entries = append(w.entries, waitEntry{bookingID: bookingID, enqueuedAt: at})
	return len(w.entries)
}

// dequeueNext pops the earliest-enqueued entry.
func (w *waitlist) dequeueNext() (string, bool) {
	if len(w.entries) == 0 {
		return "", false
	}
	head := w.entries[0]
	w.entries = w.entries[1:]
	return head.bookingID, true
}

// peekNext returns the queue head without removing it.
func (w *waitlist) peekNext() (string, bool) {
	if len(w.entries) == 0 {
		return "", false
	}
	return w.entries[0].bookingID, true
}

// remove drops a booking from anywhere in the queue.
func (w *waitlist) remove(bookingID string) bool {
	for i, e := range w.entries {
		if e.bookingID == bookingID {
			w.entries = append(w.entries[:i], w.entries[i+1:]...)
			return true
		}
	}
	return false
}

// positionOf re-derives the 1-based rank by scanning current order.
func (w *waitlist) positionOf(bookingID string) (int, bool) {
	for i, e := range w.entries {
		if e.bookingID == bookingID {
			return i + 1, true
		}
	}
	return 0, false
}

func (w *waitlist) len() int {
	return len(w.entries)
}
