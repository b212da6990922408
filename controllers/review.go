package controllers

import (
	"net/http"

	"conference-submission-api/config"
	"conference-submission-api/models"
	"conference-submission-api/services"
	"conference-submission-api/utils"

	"github.com/gin-gonic/gin"
)

// RecordReview writes a reviewer verdict against a document and mirrors it
// onto the owning submission. A repeat verdict from the same reviewer
// replaces the earlier one.
func RecordReview(c *gin.Context) {
	actor := currentActor(c)
	documentID := c.Param("document_id")

	var req struct {
		Approved *bool  `json:"approved" binding:"required"`
		Note     string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := services.NewReviewService(config.DB).
		RecordVerdict(documentID, actor, *req.Approved, utils.SanitizeInput(req.Note))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	// Let the owner know, fire-and-forget.
	var doc models.Document
	if err := config.DB.Where("document_id = ?", documentID).First(&doc).Error; err == nil {
		var file models.SubmissionFile
		submissionID := ""
		if err := config.DB.Where("document_id = ?", documentID).First(&file).Error; err == nil {
			submissionID = file.SubmissionID
		}
		services.NotifySubmissionEvent(config.DB, doc.OwnerID, submissionID,
			"New review on your manuscript",
			"A reviewer has recorded a verdict on '"+doc.Title+"'.",
			"info")
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Review recorded successfully",
		"review":  review,
	})
}
