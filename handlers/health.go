package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"randevu/utils"
)

// HealthHandler reports the monitored dependency status. Before the first
// monitor tick the snapshot is empty and the service reports as starting.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	if status.CheckedAt.IsZero() {
		c.JSON(http.StatusOK, gin.H{"status": "starting"})
		return
	}

	healthy := status.Mongo && status.SessionCache && status.AuthCache

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "checks": status})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": status})
}
