package db

import "database/sql"

// EnsureSchema creates the application tables when missing. Bookings are
// append-only: rows are status-updated but never deleted.
func EnsureSchema(conn *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS students (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			room VARCHAR(50) NOT NULL DEFAULT '',
			phone VARCHAR(50) NOT NULL DEFAULT '',
			password_hash VARCHAR(255) NOT NULL,
			penalty_count INT NOT NULL DEFAULT 0,
			is_blocked TINYINT(1) NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_student_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS operators (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			employee_id VARCHAR(100) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_operator_employee (employee_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS trips (
			id VARCHAR(36) PRIMARY KEY,
			route VARCHAR(30) NOT NULL,
			destination VARCHAR(255) NOT NULL DEFAULT '',
			bus_number VARCHAR(50) NOT NULL DEFAULT '',
			trip_date VARCHAR(10) NOT NULL,
			departure_time VARCHAR(5) NOT NULL,
			capacity INT NOT NULL,
			faculty_reserved INT NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL DEFAULT 'ACTIVE',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			KEY idx_trip_day (trip_date, route)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS bookings (
			id VARCHAR(36) PRIMARY KEY,
			trip_id VARCHAR(36) NOT NULL,
			student_id VARCHAR(36) NOT NULL,
			status VARCHAR(20) NOT NULL,
			qr_token VARCHAR(64) NOT NULL DEFAULT '',
			created_at TIMESTAMP(3) DEFAULT CURRENT_TIMESTAMP(3),
			updated_at TIMESTAMP(3) DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
			KEY idx_booking_trip (trip_id, status),
			KEY idx_booking_student (student_id, created_at)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS incident_reports (
			id VARCHAR(36) PRIMARY KEY,
			trip_id VARCHAR(36) NOT NULL,
			student_id VARCHAR(36) NOT NULL,
			operator_id VARCHAR(36) NOT NULL,
			incident_type VARCHAR(50) NOT NULL,
			description TEXT,
			photo_base64 MEDIUMTEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			KEY idx_report_student (student_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	}

	for _, stmt := range ddl {
		if _, err := conn.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
