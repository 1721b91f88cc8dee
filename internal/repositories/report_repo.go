package repositories

import (
	"database/sql"

	intconfig "campusbus/internal/config"
	intdb "campusbus/internal/db"
	"campusbus/internal/domain/models"
)

type ReportRepository struct {
	DB *sql.DB
}

func (r ReportRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r ReportRepository) Insert(rep models.IncidentReport) error {
	_, err := r.db().Exec(`
		INSERT INTO incident_reports (id, trip_id, student_id, operator_id, incident_type, description, photo_base64)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rep.ID, rep.TripID, rep.StudentID, rep.OperatorID, rep.IncidentType,
		rep.Description, intdb.NullIfEmpty(rep.PhotoBase64),
	)
	return err
}

func (r ReportRepository) ListByStudent(studentID string) ([]models.IncidentReport, error) {
	rows, err := r.db().Query(`
		SELECT id, trip_id, student_id, operator_id, incident_type, COALESCE(description, ''), created_at
		FROM incident_reports WHERE student_id = ? ORDER BY created_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.IncidentReport{}
	for rows.Next() {
		var rep models.IncidentReport
		if err := rows.Scan(&rep.ID, &rep.TripID, &rep.StudentID, &rep.OperatorID,
			&rep.IncidentType, &rep.Description, &rep.CreatedAt); err != nil {
			return out, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}
