package controllers

import (
	"net/http"

	"conference-submission-api/config"
	"conference-submission-api/models"
	"conference-submission-api/services"
	"conference-submission-api/utils"

	"github.com/gin-gonic/gin"
)

// DecideSubmission applies the review-desk decision to a case: replied,
// approved or rejected. Records status history and notifies the owner.
func DecideSubmission(c *gin.Context) {
	actor := currentActor(c)
	submissionID := c.Param("id")

	var req struct {
		Status string `json:"status" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission, oldStatus, err := services.NewReviewService(config.DB).
		Decide(submissionID, actor, req.Status, utils.SanitizeInput(req.Reason))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	if oldStatus != submission.Status {
		kind := "info"
		if submission.Status == models.SubmissionStatusApproved {
			kind = "success"
		} else if submission.Status == models.SubmissionStatusRejected {
			kind = "error"
		}
		services.NotifySubmissionEvent(config.DB, submission.OwnerID, submission.SubmissionID,
			"Submission status updated",
			"Your submission '"+submission.Title+"' is now "+submission.Status+".",
			kind)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Decision recorded successfully",
		"submission": submission,
		"old_status": oldStatus,
	})
}
