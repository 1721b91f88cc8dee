package handlers

import (
	"net/http"

	"campusbus/internal/http/middleware"
	"campusbus/internal/services"

	"github.com/gin-gonic/gin"
)

type validateQRRequest struct {
	QRToken string `json:"qrToken"`
	TripID  string `json:"tripId"`
}

// POST /api/qr/validate
func ValidateQR(c *gin.Context) {
	var req validateQRRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.OperatorService{RequestID: middleware.GetRequestID(c)}
	out, err := svc.ValidateQR(req.QRToken, req.TripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
