package controllers

import (
	"net/http"
	"time"

	"conference-submission-api/config"
	"conference-submission-api/services"

	"github.com/gin-gonic/gin"
)

// GetConferenceReport returns per-topic, per-presentation-type counts across
// the invitation/accepted/abstract buckets, plus the ALL pseudo-topic.
func GetConferenceReport(c *gin.Context) {
	report, err := services.NewAnalyticsService(config.DB).ConferenceReport()
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"generated_at": time.Now().Format(time.RFC3339),
		"topics":       report,
	})
}
