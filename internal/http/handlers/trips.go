package handlers

import (
	"net/http"

	"campusbus/internal/http/middleware"
	"campusbus/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/trips/available?route=CAMPUS_TO_CITY&date=2025-01-15
func GetAvailableTrips(c *gin.Context) {
	svc := services.TripService{RequestID: middleware.GetRequestID(c)}
	trips, err := svc.Available(c.Query("route"), c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// POST /api/trips
func CreateTrip(c *gin.Context) {
	var in services.CreateTripInput
	if !BindJSONOrError(c, &in) {
		return
	}

	svc := services.TripService{RequestID: middleware.GetRequestID(c)}
	trip, err := svc.CreateTrip(in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"trip": trip, "message": "trip created"})
}

// GET /api/trips/:id/gps
func GetTripGPS(c *gin.Context) {
	pos, ok := services.Tracker().Get(c.Param("id"))
	if !ok {
		RespondError(c, http.StatusNotFound, "no position reported for this trip", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tripId": c.Param("id"), "position": pos})
}
