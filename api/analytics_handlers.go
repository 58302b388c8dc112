package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetAnalyticsHandler handles the request to get analytics data
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.analytics.GetDashboardData())
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "go-concordance",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	})
}

// StatusHandler reports that the API is up.
func (api *API) StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Concordance API v1.0",
		"status":  "running",
	})
}
