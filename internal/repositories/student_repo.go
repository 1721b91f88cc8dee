package repositories

import (
	"database/sql"

	intconfig "campusbus/internal/config"
	"campusbus/internal/domain"
	"campusbus/internal/domain/models"
)

type StudentRepository struct {
	DB *sql.DB
}

func (r StudentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r StudentRepository) Insert(s models.Student) error {
	_, err := r.db().Exec(`
		INSERT INTO students (id, name, email, room, phone, password_hash)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.Name, s.Email, s.Room, s.Phone, s.PasswordHash,
	)
	return err
}

func (r StudentRepository) scanOne(row *sql.Row) (models.Student, error) {
	var s models.Student
	err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Room, &s.Phone, &s.PasswordHash, &s.PenaltyCount, &s.IsBlocked)
	if err == sql.ErrNoRows {
		return s, domain.NotFoundError{Resource: "student", Err: err}
	}
	return s, err
}

func (r StudentRepository) GetByEmail(email string) (models.Student, error) {
	return r.scanOne(r.db().QueryRow(`
		SELECT id, name, email, room, phone, password_hash, penalty_count, is_blocked
		FROM students WHERE email = ? LIMIT 1`, email))
}

func (r StudentRepository) GetByID(id string) (models.Student, error) {
	return r.scanOne(r.db().QueryRow(`
		SELECT id, name, email, room, phone, password_hash, penalty_count, is_blocked
		FROM students WHERE id = ? LIMIT 1`, id))
}

func (r StudentRepository) UpdateProfile(id, room, phone string) error {
	_, err := r.db().Exec(`UPDATE students SET room = ?, phone = ? WHERE id = ?`, room, phone, id)
	return err
}

// AddPenalty increments the penalty counter and flips the block flag at
// the threshold. penalty_count is assigned first, so the IF sees the
// incremented value.
func (r StudentRepository) AddPenalty(id string) (count int, blocked bool, err error) {
	_, err = r.db().Exec(`
		UPDATE students
		SET penalty_count = penalty_count + 1,
		    is_blocked = IF(penalty_count >= ?, 1, is_blocked)
		WHERE id = ?`, models.BlockThreshold, id)
	if err != nil {
		return 0, false, err
	}
	err = r.db().QueryRow(`SELECT penalty_count, is_blocked FROM students WHERE id = ? LIMIT 1`, id).
		Scan(&count, &blocked)
	if err == sql.ErrNoRows {
		return 0, false, domain.NotFoundError{Resource: "student", Err: err}
	}
	return count, blocked, err
}
