package handlers

import (
	"fmt"
	"net/http"

	"campusbus/internal/domain/models"
	"campusbus/internal/http/middleware"
	"campusbus/internal/services"

	"github.com/gin-gonic/gin"
)

type createBookingRequest struct {
	TripID string `json:"tripId"`
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	booking, err := svc.Create(middleware.SubjectID(c), req.TripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	resp := gin.H{
		"bookingId": booking.ID,
		"status":    booking.Status,
	}
	switch booking.Status {
	case models.BookingConfirmed:
		resp["qrToken"] = booking.QRToken
		resp["message"] = "seat confirmed, show the QR code at boarding"
	case models.BookingWaitlist:
		resp["position"] = booking.Position
		resp["message"] = fmt.Sprintf("trip is full, you are number %d on the waitlist", booking.Position)
	}
	c.JSON(http.StatusCreated, resp)
}

// DELETE /api/bookings/:id
func CancelBooking(c *gin.Context) {
	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	res, err := svc.Cancel(middleware.SubjectID(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	resp := gin.H{
		"bookingId": res.Cancelled.ID,
		"status":    res.Cancelled.Status,
		"message":   "booking cancelled",
	}
	if res.Promoted != nil {
		resp["promotedBookingId"] = res.Promoted.ID
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/bookings/history
func GetBookingHistory(c *gin.Context) {
	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	entries, err := svc.History(middleware.SubjectID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if entries == nil {
		entries = []models.BookingHistoryEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": entries})
}

// GET /api/bookings/:id/eticket
func GetETicket(c *gin.Context) {
	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.ETicket(c.Param("id"), middleware.SubjectID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
