package services

import (
	"sync"
	"time"

	"campusbus/internal/domain"
)

// GPSPosition is the last reported location of a trip's bus.
type GPSPosition struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TripTracker keeps the latest GPS fix per trip in memory. Positions
// are ephemeral; they are not persisted across restarts.
type TripTracker struct {
	mu        sync.Mutex
	positions map[string]GPSPosition
}

func NewTripTracker() *TripTracker {
	return &TripTracker{positions: map[string]GPSPosition{}}
}

var (
	trackerOnce    sync.Once
	defaultTracker *TripTracker
)

// Tracker is the process-wide tracker shared by handlers.
func Tracker() *TripTracker {
	trackerOnce.Do(func() { defaultTracker = NewTripTracker() })
	return defaultTracker
}

func (t *TripTracker) Update(tripID string, lat, lon float64) error {
	if tripID == "" {
		return domain.ValidationError{Field: "tripId", Msg: "required"}
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return domain.ValidationError{Field: "latitude/longitude", Msg: "out of range"}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.positions[tripID] = GPSPosition{Latitude: lat, Longitude: lon, UpdatedAt: time.Now()}
	return nil
}

func (t *TripTracker) Get(tripID string) (GPSPosition, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	pos, ok := t.positions[tripID]
	return pos, ok
}
