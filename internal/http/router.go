package api

import (
	"log"
	stdhttp "net/http"

	intconfig "campusbus/internal/config"
	h "campusbus/internal/http/handlers"
	"campusbus/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth (student app)
		auth := api.Group("/auth")
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)

		// Student app
		student := api.Group("", middleware.RequireRole(middleware.RoleStudent))
		student.GET("/profile", h.GetProfile)
		student.PUT("/profile", h.UpdateProfile)
		student.GET("/trips/available", h.GetAvailableTrips)
		student.GET("/trips/:id/gps", h.GetTripGPS)
		student.POST("/bookings", h.CreateBooking)
		student.DELETE("/bookings/:id", h.CancelBooking)
		student.GET("/bookings/history", h.GetBookingHistory)
		student.GET("/bookings/:id/eticket", h.GetETicket)

		// Operator app
		api.POST("/operator/login", h.OperatorLogin)
		operator := api.Group("", middleware.RequireRole(middleware.RoleOperator))
		operator.GET("/operator/trips", h.GetOperatorTrips)
		operator.POST("/operator/trips/start", h.StartTrip)
		operator.GET("/operator/trips/:id/passengers", h.GetTripPassengers)
		operator.GET("/operator/trips/:id/manifest", h.GetTripManifest)
		operator.POST("/qr/validate", h.ValidateQR)
		operator.POST("/operator/reports", h.SubmitReport)
		operator.POST("/operator/gps", h.UpdateGPS)

		// Trip scheduling is done from the operator back office.
		operator.POST("/trips", h.CreateTrip)
	}

	return r
}
