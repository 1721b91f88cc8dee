package services

import (
	"testing"

	"campusbus/internal/domain"
	"campusbus/internal/domain/models"
	"campusbus/internal/engine"
	"campusbus/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestOperatorServiceValidateQR(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	trip := futureTrip(5)
	core := engine.New()
	if err := core.AddTrip(trip); err != nil {
		t.Fatalf("AddTrip returned error: %v", err)
	}
	booking, err := core.CreateBooking("stu-1", trip.ID)
	if err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	// Student lookup happens on both scans; the status write only on the first.
	mock.ExpectQuery("SELECT (.+) FROM students").WithArgs("stu-1").
		WillReturnRows(studentRows("stu-1", false))
	mock.ExpectQuery("SELECT (.+) FROM students").WithArgs("stu-1").
		WillReturnRows(studentRows("stu-1", false))
	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs("SCANNED", booking.QRToken, booking.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := OperatorService{
		Engine:      core,
		BookingRepo: repositories.BookingRepository{DB: db},
		StudentRepo: repositories.StudentRepository{DB: db},
	}

	out, err := svc.ValidateQR(booking.QRToken, trip.ID)
	if err != nil {
		t.Fatalf("ValidateQR returned error: %v", err)
	}
	if out.Status != engine.ScanValid || out.StudentName == "" {
		t.Fatalf("first scan = %+v, want VALID with name", out)
	}

	out, err = svc.ValidateQR(booking.QRToken, trip.ID)
	if err != nil {
		t.Fatalf("second ValidateQR returned error: %v", err)
	}
	if out.Status != engine.ScanDuplicate {
		t.Fatalf("second scan = %s, want DUPLICATE", out.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOperatorServiceValidateQRUnknownToken(t *testing.T) {
	trip := futureTrip(5)
	core := engine.New()
	if err := core.AddTrip(trip); err != nil {
		t.Fatalf("AddTrip returned error: %v", err)
	}

	svc := OperatorService{Engine: core}
	out, err := svc.ValidateQR("bogus", trip.ID)
	if err != nil {
		t.Fatalf("ValidateQR returned error: %v", err)
	}
	if out.Status != engine.ScanInvalid {
		t.Fatalf("scan = %s, want INVALID", out.Status)
	}
}

func TestOperatorServiceSubmitReport(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectQuery("SELECT (.+) FROM students").WithArgs("stu-1").
		WillReturnRows(studentRows("stu-1", false))
	mock.ExpectExec("INSERT INTO incident_reports").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE students").
		WithArgs(models.BlockThreshold, "stu-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT penalty_count, is_blocked FROM students").
		WithArgs("stu-1").
		WillReturnRows(sqlmock.NewRows([]string{"penalty_count", "is_blocked"}).AddRow(1, false))

	svc := OperatorService{
		Engine:      engine.New(),
		StudentRepo: repositories.StudentRepository{DB: db},
		ReportRepo:  repositories.ReportRepository{DB: db},
	}

	count, blocked, err := svc.SubmitReport(models.IncidentReport{
		TripID:       "trip-1",
		StudentID:    "stu-1",
		OperatorID:   "op-1",
		IncidentType: models.IncidentMisbehavior,
		Description:  "boarding dispute",
	})
	if err != nil {
		t.Fatalf("SubmitReport returned error: %v", err)
	}
	if count != 1 || blocked {
		t.Fatalf("count=%d blocked=%v, want 1/false", count, blocked)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOperatorServiceSubmitReportBadType(t *testing.T) {
	svc := OperatorService{Engine: engine.New()}
	_, _, err := svc.SubmitReport(models.IncidentReport{
		TripID:       "trip-1",
		StudentID:    "stu-1",
		IncidentType: "SOMETHING_ELSE",
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
