package models

import "time"

// Incident types accepted from the operator app.
const (
	IncidentMisbehavior     = "MISBEHAVIOR"
	IncidentInvalidBoarding = "INVALID_BOARDING"
	IncidentOther           = "OTHER"
)

// ValidIncidentType reports whether s is an accepted incident type.
func ValidIncidentType(s string) bool {
	switch s {
	case IncidentMisbehavior, IncidentInvalidBoarding, IncidentOther:
		return true
	}
	return false
}

// IncidentReport is filed by an operator against a student on a trip.
// Each report adds one penalty to the student.
type IncidentReport struct {
	ID           string    `json:"reportId"`
	TripID       string    `json:"tripId"`
	StudentID    string    `json:"studentId"`
	OperatorID   string    `json:"operatorId"`
	IncidentType string    `json:"incidentType"`
	Description  string    `json:"description"`
	PhotoBase64  string    `json:"photoBase64,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
