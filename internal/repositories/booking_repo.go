package repositories

import (
	"database/sql"

	intconfig "campusbus/internal/config"
	"campusbus/internal/domain"
	"campusbus/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r BookingRepository) Insert(b models.Booking) error {
	_, err := r.db().Exec(`
		INSERT INTO bookings (id, trip_id, student_id, status, qr_token, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.TripID, b.StudentID, string(b.Status), b.QRToken, b.CreatedAt,
	)
	return err
}

// UpdateStatus writes a lifecycle transition through to the audit row.
// The QR token column mirrors the live token: empty after cancellation.
func (r BookingRepository) UpdateStatus(id string, status models.BookingStatus, qrToken string) error {
	res, err := r.db().Exec(`UPDATE bookings SET status = ?, qr_token = ? WHERE id = ?`,
		string(status), qrToken, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

// ListActiveByTrip returns non-cancelled bookings for one trip in
// creation order, used to hydrate the engine.
func (r BookingRepository) ListActiveByTrip(tripID string) ([]models.Booking, error) {
	rows, err := r.db().Query(`
		SELECT id, trip_id, student_id, status, qr_token, created_at
		FROM bookings
		WHERE trip_id = ? AND status IN ('CONFIRMED', 'WAITLIST', 'SCANNED')
		ORDER BY created_at ASC, id ASC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.TripID, &b.StudentID, &b.Status, &b.QRToken, &b.CreatedAt); err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// HistoryByStudent lists every booking the student ever made, newest
// first, joined with trip details for the history screen.
func (r BookingRepository) HistoryByStudent(studentID string) ([]models.BookingHistoryEntry, error) {
	rows, err := r.db().Query(`
		SELECT b.id, b.trip_id, b.status, b.created_at, t.route, t.trip_date, t.departure_time
		FROM bookings b
		JOIN trips t ON t.id = b.trip_id
		WHERE b.student_id = ?
		ORDER BY b.created_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BookingHistoryEntry{}
	for rows.Next() {
		var e models.BookingHistoryEntry
		var bookedAt sql.NullTime
		if err := rows.Scan(&e.BookingID, &e.TripID, &e.Status, &bookedAt, &e.Route, &e.TripDate, &e.DepartureTime); err != nil {
			return out, err
		}
		if bookedAt.Valid {
			e.BookedAt = bookedAt.Time.Format("2006-01-02 15:04:05")
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
