package handlers

import (
	"fmt"
	"net/http"
	"time"

	"campusbus/internal/domain/models"
	"campusbus/internal/http/middleware"
	"campusbus/internal/repositories"
	"campusbus/internal/services"
	"campusbus/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type operatorLoginRequest struct {
	EmployeeID string `json:"employeeId"`
	Password   string `json:"password"`
}

// POST /api/operator/login
func OperatorLogin(c *gin.Context) {
	var req operatorLoginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	operator, err := repositories.OperatorRepository{}.GetByEmployeeID(utils.TrimOrEmpty(req.EmployeeID))
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "invalid employee id or password", nil)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(operator.PasswordHash), []byte(req.Password)) != nil {
		RespondError(c, http.StatusUnauthorized, "invalid employee id or password", nil)
		return
	}

	token, err := middleware.GenerateToken(operator.ID, middleware.RoleOperator)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to issue token", err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "operator_login", "operator_id="+operator.ID)
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"operatorId": operator.ID,
		"name":       operator.Name,
		"message":    "login successful",
	})
}

// GET /api/operator/trips?date=2025-01-15
func GetOperatorTrips(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = utils.FormatDate(time.Now())
	}

	svc := services.TripService{RequestID: middleware.GetRequestID(c)}
	trips, err := svc.ForDate(date)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "trips": trips})
}

type startTripRequest struct {
	TripID string `json:"tripId"`
}

// POST /api/operator/trips/start
func StartTrip(c *gin.Context) {
	var req startTripRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.TripService{RequestID: middleware.GetRequestID(c)}
	if err := svc.StartTrip(req.TripID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tripId": req.TripID, "status": models.TripDeparted, "message": "trip started"})
}

// GET /api/operator/trips/:id/passengers
func GetTripPassengers(c *gin.Context) {
	svc := services.OperatorService{RequestID: middleware.GetRequestID(c)}
	passengers, err := svc.PassengerList(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if passengers == nil {
		passengers = []services.PassengerEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"tripId": c.Param("id"), "passengers": passengers})
}

// GET /api/operator/trips/:id/manifest
func GetTripManifest(c *gin.Context) {
	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.Manifest(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

type reportRequest struct {
	TripID       string `json:"tripId"`
	StudentID    string `json:"studentId"`
	IncidentType string `json:"incidentType"`
	Description  string `json:"description"`
	PhotoBase64  string `json:"photoBase64"`
}

// POST /api/operator/reports
func SubmitReport(c *gin.Context) {
	var req reportRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.OperatorService{RequestID: middleware.GetRequestID(c)}
	count, blocked, err := svc.SubmitReport(models.IncidentReport{
		TripID:       req.TripID,
		StudentID:    req.StudentID,
		OperatorID:   middleware.SubjectID(c),
		IncidentType: req.IncidentType,
		Description:  utils.TrimOrEmpty(req.Description),
		PhotoBase64:  req.PhotoBase64,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"penaltyCount": count,
		"isBlocked":    blocked,
		"message":      "report submitted",
	})
}

type gpsRequest struct {
	TripID    string  `json:"tripId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// POST /api/operator/gps
func UpdateGPS(c *gin.Context) {
	var req gpsRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if err := services.Tracker().Update(req.TripID, req.Latitude, req.Longitude); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "position updated"})
}
