package handlers

import (
	"net/http"

	"campusbus/internal/domain"
	"campusbus/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"message":    message,
		"code":       code,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. LockTimeout
// is the only retryable kind and is flagged as such for the client.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsDuplicateBooking(err):
		respondError(c, http.StatusConflict, "duplicate_booking", err.Error())
	case domain.IsInvalidState(err):
		respondError(c, http.StatusConflict, "invalid_state", err.Error())
	case domain.IsTripClosed(err):
		respondError(c, http.StatusConflict, "trip_closed", err.Error())
	case domain.IsNoCapacity(err):
		respondError(c, http.StatusConflict, "no_capacity", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	case domain.IsLockTimeout(err):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"message":    "the trip is busy, please retry",
			"code":       "lock_timeout",
			"retryable":  true,
			"request_id": middleware.GetRequestID(c),
		})
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
