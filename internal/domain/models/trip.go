package models

// Route identifies the direction of a scheduled departure.
type Route string

const (
	RouteCampusToCity Route = "CAMPUS_TO_CITY"
	RouteCityToCampus Route = "CITY_TO_CAMPUS"
)

// ValidRoute reports whether s is a known route value.
func ValidRoute(s string) bool {
	return Route(s) == RouteCampusToCity || Route(s) == RouteCityToCampus
}

type TripStatus string

const (
	TripActive    TripStatus = "ACTIVE"
	TripDeparted  TripStatus = "DEPARTED"
	TripCancelled TripStatus = "CANCELLED"
	TripCompleted TripStatus = "COMPLETED"
)

// Trip is a single scheduled bus departure on a route/date.
// FacultyReserved seats are held back from student booking, so the
// bookable pool is Capacity-FacultyReserved.
type Trip struct {
	ID              string     `json:"tripId"`
	Route           Route      `json:"route"`
	Destination     string     `json:"destination"`
	BusNumber       string     `json:"busNumber"`
	TripDate        string     `json:"tripDate"`      // YYYY-MM-DD
	DepartureTime   string     `json:"departureTime"` // HH:MM
	Capacity        int        `json:"capacity"`
	FacultyReserved int        `json:"facultyReserved"`
	Status          TripStatus `json:"status"`
}

// TripAvailability is the client-facing snapshot of a trip with live
// seat and waitlist counts.
type TripAvailability struct {
	Trip
	BookedCount    int `json:"bookedCount"`
	WaitlistCount  int `json:"waitlistCount"`
	AvailableSeats int `json:"availableSeats"`
}
