package repositories

import (
	"database/sql"

	intconfig "campusbus/internal/config"
	"campusbus/internal/domain"
	"campusbus/internal/domain/models"
)

type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r TripRepository) Insert(t models.Trip) error {
	_, err := r.db().Exec(`
		INSERT INTO trips (id, route, destination, bus_number, trip_date, departure_time, capacity, faculty_reserved, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, string(t.Route), t.Destination, t.BusNumber, t.TripDate, t.DepartureTime,
		t.Capacity, t.FacultyReserved, string(t.Status),
	)
	return err
}

func (r TripRepository) GetByID(id string) (models.Trip, error) {
	var t models.Trip
	err := r.db().QueryRow(`
		SELECT id, route, destination, bus_number, trip_date, departure_time, capacity, faculty_reserved, status
		FROM trips WHERE id = ? LIMIT 1`, id).
		Scan(&t.ID, &t.Route, &t.Destination, &t.BusNumber, &t.TripDate, &t.DepartureTime,
			&t.Capacity, &t.FacultyReserved, &t.Status)
	if err == sql.ErrNoRows {
		return t, domain.NotFoundError{Resource: "trip", Err: err}
	}
	return t, err
}

// ListFromDate returns trips departing on or after the given date,
// used to hydrate the booking engine at startup.
func (r TripRepository) ListFromDate(date string) ([]models.Trip, error) {
	rows, err := r.db().Query(`
		SELECT id, route, destination, bus_number, trip_date, departure_time, capacity, faculty_reserved, status
		FROM trips WHERE trip_date >= ? ORDER BY trip_date ASC, departure_time ASC`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		var t models.Trip
		if err := rows.Scan(&t.ID, &t.Route, &t.Destination, &t.BusNumber, &t.TripDate, &t.DepartureTime,
			&t.Capacity, &t.FacultyReserved, &t.Status); err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripRepository) UpdateStatus(id string, status models.TripStatus) error {
	_, err := r.db().Exec(`UPDATE trips SET status = ? WHERE id = ?`, string(status), id)
	return err
}
