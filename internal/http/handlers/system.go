package handlers

import (
	"net/http"

	intconfig "campusbus/internal/config"
	intdb "campusbus/internal/db"

	"github.com/gin-gonic/gin"
)

// GET /api/health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /api/db-check
func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
		return
	}

	tables := gin.H{}
	for _, table := range []string{"students", "operators", "trips", "bookings", "incident_reports"} {
		tables[table] = intdb.HasTable(intconfig.DB, table)
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "tables": tables})
}
