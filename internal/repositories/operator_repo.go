package repositories

import (
	"database/sql"

	intconfig "campusbus/internal/config"
	"campusbus/internal/domain"
	"campusbus/internal/domain/models"
)

type OperatorRepository struct {
	DB *sql.DB
}

func (r OperatorRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r OperatorRepository) Insert(o models.Operator) error {
	_, err := r.db().Exec(`
		INSERT INTO operators (id, name, employee_id, password_hash)
		VALUES (?, ?, ?, ?)`,
		o.ID, o.Name, o.EmployeeID, o.PasswordHash,
	)
	return err
}

func (r OperatorRepository) GetByEmployeeID(employeeID string) (models.Operator, error) {
	var o models.Operator
	err := r.db().QueryRow(`
		SELECT id, name, employee_id, password_hash
		FROM operators WHERE employee_id = ? LIMIT 1`, employeeID).
		Scan(&o.ID, &o.Name, &o.EmployeeID, &o.PasswordHash)
	if err == sql.ErrNoRows {
		return o, domain.NotFoundError{Resource: "operator", Err: err}
	}
	return o, err
}

func (r OperatorRepository) Count() (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM operators`).Scan(&n)
	return n, err
}
