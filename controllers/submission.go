package controllers

import (
	"net/http"
	"path/filepath"

	"conference-submission-api/config"
	"conference-submission-api/models"
	"conference-submission-api/services"
	"conference-submission-api/utils"

	"github.com/gin-gonic/gin"
)

// GetSubmissions lists the caller's review cases from the authoritative
// store. Reviewers and admins see every case.
func GetSubmissions(c *gin.Context) {
	actor := currentActor(c)

	query := config.DB.Preload("Files").Preload("Reviews")
	if !actor.Privileged() {
		query = query.Where("owner_id = ?", actor.UserID)
	}
	if subType := c.Query("submission_type"); subType != "" {
		if !models.IsValidPdfType(subType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown submission type"})
			return
		}
		query = query.Where("submission_type = ?", subType)
	}

	var submissions []models.Submission
	if err := query.Order("updated_at DESC").Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": submissions,
		"total":       len(submissions),
	})
}

// GetSubmission returns one review case with files and the review ledger.
func GetSubmission(c *gin.Context) {
	actor := currentActor(c)
	submissionID := c.Param("id")

	var submission models.Submission
	if err := config.DB.
		Preload("Files").Preload("Files.Document").
		Preload("Reviews").Preload("Reviews.Reviewer").
		Where("submission_id = ?", submissionID).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	if submission.OwnerID != actor.UserID && !actor.Privileged() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to view this submission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submission": submission})
}

// ResubmitFile appends a new file to an existing submission. Owners pass the
// state guards and reset the case to pending; reviewers and admins attach an
// annotation document without changing status.
func ResubmitFile(c *gin.Context) {
	actor := currentActor(c)
	submissionID := c.Param("id")

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if file.Size == 0 || file.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is empty or exceeds 10MB limit"})
		return
	}
	if !utils.ResubmitExtensionAllowed(filepath.Ext(file.Filename)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed"})
		return
	}

	// Pre-flight the guards before touching the blob store. The service
	// re-checks inside the transaction; this only avoids orphan blobs.
	var submission models.Submission
	if err := config.DB.Where("submission_id = ?", submissionID).First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}
	if !actor.Privileged() {
		if submission.OwnerID != actor.UserID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the submission owner may resubmit"})
			return
		}
		if err := services.OwnerResubmissionGuard(submission.Type, submission.Status); err != nil {
			abortWithServiceError(c, err)
			return
		}
	}

	var owner models.User
	if err := config.DB.First(&owner, submission.OwnerID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Submission owner not found"})
		return
	}

	userFolder, err := utils.CreateUserFolderIfNotExists(owner, uploadRoot())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user directory"})
		return
	}

	targetDir := filepath.Join(userFolder, submission.Type)
	safeFilename := utils.GenerateUniqueFilename(targetDir, file.Filename)
	fullPath := filepath.Join(targetDir, safeFilename)

	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	params := services.DocumentParams{
		OriginalFilename: file.Filename,
		StoredPath:       fullPath,
		FileSize:         file.Size,
		MimeType:         file.Header.Get("Content-Type"),
		Description:      utils.SanitizeInput(c.PostForm("description")),
	}

	doc, err := workflow().AttachFile(submissionID, actor, params)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	if actor.Privileged() && actor.UserID != submission.OwnerID {
		services.NotifySubmissionEvent(config.DB, submission.OwnerID, submissionID,
			"Reviewer file on your submission",
			"A reviewer attached a file to '"+submission.Title+"'.",
			"info")
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "File submitted successfully",
		"file_path":   doc.StoredPath,
		"document_id": doc.DocumentID,
	})
}

// GetSubmissionsByStatus lists every case in the given status for the review
// desk.
func GetSubmissionsByStatus(c *gin.Context) {
	status := c.Param("status")
	if !models.IsValidSubmissionStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return
	}

	var submissions []models.Submission
	if err := config.DB.Preload("Owner").Preload("Files").
		Where("status = ?", status).
		Order("updated_at DESC").
		Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": submissions,
		"total":       len(submissions),
	})
}
