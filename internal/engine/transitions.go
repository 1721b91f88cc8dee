package engine

import "campusbus/internal/domain/models"

// transitionMap is the full booking lifecycle. CANCELLED and SCANNED are
// terminal; nothing leaves them.
var transitionMap = map[models.BookingStatus][]models.BookingStatus{
	models.BookingConfirmed: {models.BookingScanned, models.BookingCancelled},
	models.BookingWaitlist:  {models.BookingConfirmed, models.BookingCancelled},
}

func canTransition(from, to models.BookingStatus) bool {
	for _, allowed := range transitionMap[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
