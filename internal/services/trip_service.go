package services

import (
	"fmt"
	"time"

	"campusbus/internal/domain"
	"campusbus/internal/domain/models"
	"campusbus/internal/engine"
	"campusbus/internal/repositories"
	"campusbus/internal/utils"

	"github.com/google/uuid"
)

type TripService struct {
	Engine      *engine.Engine
	TripRepo    repositories.TripRepository
	BookingRepo repositories.BookingRepository
	RequestID   string
}

func (s TripService) core() *engine.Engine {
	if s.Engine != nil {
		return s.Engine
	}
	return engine.Default()
}

// CreateTripInput is the admin payload for scheduling a departure.
type CreateTripInput struct {
	Route           string `json:"route"`
	Destination     string `json:"destination"`
	BusNumber       string `json:"busNumber"`
	TripDate        string `json:"tripDate"`
	DepartureTime   string `json:"departureTime"`
	Capacity        int    `json:"capacity"`
	FacultyReserved int    `json:"facultyReserved"`
}

func (s TripService) CreateTrip(in CreateTripInput) (models.Trip, error) {
	if !models.ValidRoute(in.Route) {
		return models.Trip{}, domain.ValidationError{Field: "route", Msg: "must be CAMPUS_TO_CITY or CITY_TO_CAMPUS"}
	}
	if _, err := utils.CombineDateTime(in.TripDate, in.DepartureTime); err != nil {
		return models.Trip{}, domain.ValidationError{Field: "tripDate/departureTime", Msg: "expected YYYY-MM-DD and HH:MM", Err: err}
	}
	if in.Capacity <= 0 {
		return models.Trip{}, domain.ValidationError{Field: "capacity", Msg: "must be positive"}
	}
	if in.FacultyReserved < 0 || in.FacultyReserved >= in.Capacity {
		return models.Trip{}, domain.ValidationError{Field: "facultyReserved", Msg: "must leave at least one bookable seat"}
	}

	trip := models.Trip{
		ID:              uuid.NewString(),
		Route:           models.Route(in.Route),
		Destination:     utils.TrimOrEmpty(in.Destination),
		BusNumber:       utils.TrimOrEmpty(in.BusNumber),
		TripDate:        utils.TrimOrEmpty(in.TripDate),
		DepartureTime:   utils.TrimOrEmpty(in.DepartureTime),
		Capacity:        in.Capacity,
		FacultyReserved: in.FacultyReserved,
		Status:          models.TripActive,
	}

	if err := s.core().AddTrip(trip); err != nil {
		return models.Trip{}, err
	}
	if err := s.TripRepo.Insert(trip); err != nil {
		utils.LogEvent(s.RequestID, "trip", "persist_create", fmt.Sprintf("trip_id=%s err=%v", trip.ID, err))
	}
	utils.LogEvent(s.RequestID, "trip", "create",
		fmt.Sprintf("trip_id=%s route=%s date=%s", trip.ID, trip.Route, trip.TripDate))
	return trip, nil
}

// Available lists bookable trips for the student app.
func (s TripService) Available(route, date string) ([]models.TripAvailability, error) {
	if !models.ValidRoute(route) {
		return nil, domain.ValidationError{Field: "route", Msg: "must be CAMPUS_TO_CITY or CITY_TO_CAMPUS"}
	}
	if _, err := utils.ParseDate(date); err != nil {
		return nil, domain.ValidationError{Field: "date", Msg: "expected YYYY-MM-DD", Err: err}
	}
	return s.core().ListAvailable(models.Route(route), date), nil
}

// ForDate lists all trips on a date for the operator day view.
func (s TripService) ForDate(date string) ([]models.TripAvailability, error) {
	if _, err := utils.ParseDate(date); err != nil {
		return nil, domain.ValidationError{Field: "date", Msg: "expected YYYY-MM-DD", Err: err}
	}
	return s.core().ListForDate(date), nil
}

// StartTrip marks a trip departed and mirrors the status to the DB.
func (s TripService) StartTrip(tripID string) error {
	if err := s.core().StartTrip(tripID); err != nil {
		return err
	}
	if err := s.TripRepo.UpdateStatus(tripID, models.TripDeparted); err != nil {
		utils.LogEvent(s.RequestID, "trip", "persist_start", fmt.Sprintf("trip_id=%s err=%v", tripID, err))
	}
	utils.LogEvent(s.RequestID, "trip", "start", fmt.Sprintf("trip_id=%s", tripID))
	return nil
}

// Hydrate loads upcoming trips and their active bookings from the DB
// into the engine. Call once at startup, before serving requests.
func (s TripService) Hydrate() error {
	today := utils.FormatDate(time.Now())
	trips, err := s.TripRepo.ListFromDate(today)
	if err != nil {
		return domain.InternalError{Msg: "loading trips for hydration", Err: err}
	}

	core := s.core()
	restored := 0
	for _, trip := range trips {
		bookings, err := s.BookingRepo.ListActiveByTrip(trip.ID)
		if err != nil {
			return domain.InternalError{Msg: "loading bookings for hydration", Err: err}
		}
		if err := core.Restore(trip, bookings); err != nil {
			return err
		}
		restored += len(bookings)
	}
	utils.LogEvent(s.RequestID, "trip", "hydrate",
		fmt.Sprintf("trips=%d bookings=%d", len(trips), restored))
	return nil
}
