package controllers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"conference-submission-api/config"
	"conference-submission-api/models"
	"conference-submission-api/services"
	"conference-submission-api/utils"

	"github.com/gin-gonic/gin"
)

const maxUploadSize = int64(10 * 1024 * 1024) // 10MB

// UploadDocument handles manuscript ingestion: blob to the owner-scoped
// folder, a Document row with status "uploaded", and an upload-index entry.
func UploadDocument(c *gin.Context) {
	actor := currentActor(c)

	pdfType := c.PostForm("pdf_type")
	title := utils.SanitizeInput(c.PostForm("title"))
	description := utils.SanitizeInput(c.PostForm("description"))
	topic := c.PostForm("topic")
	presentType := c.PostForm("present_type")

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	if file.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Uploaded file is empty"})
		return
	}
	if file.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds 10MB limit"})
		return
	}

	ext := filepath.Ext(file.Filename)
	if !utils.IngestExtensionAllowed(pdfType, ext) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed for this paper type"})
		return
	}

	params := services.DocumentParams{
		OwnerID:          actor.UserID,
		UploadedBy:       actor.UserID,
		Title:            title,
		PdfType:          pdfType,
		Topic:            topic,
		PresentType:      presentType,
		Description:      description,
		OriginalFilename: file.Filename,
		FileSize:         file.Size,
		MimeType:         file.Header.Get("Content-Type"),
	}
	if err := services.ValidateDocumentParams(&params); err != nil {
		abortWithServiceError(c, err)
		return
	}

	var user models.User
	if err := config.DB.First(&user, actor.UserID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User not found"})
		return
	}

	userFolder, err := utils.CreateUserFolderIfNotExists(user, uploadRoot())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user directory"})
		return
	}

	targetDir := filepath.Join(userFolder, params.PdfType)
	safeFilename := utils.GenerateUniqueFilename(targetDir, file.Filename)
	fullPath := filepath.Join(targetDir, safeFilename)

	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	params.StoredPath = fullPath

	doc, err := workflow().CreateDocument(params)
	if err != nil {
		// The blob stays where it is; no compensation on partial failure.
		log.Printf("Error: document create failed after blob write %s: %v", fullPath, err)
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Document uploaded successfully",
		"document": doc,
	})
}

// GetMyUploads lists the caller's uploads from the denormalized index,
// optionally filtered by paper type.
func GetMyUploads(c *gin.Context) {
	actor := currentActor(c)

	query := config.DB.Where("user_id = ?", actor.UserID)
	if pdfType := c.Query("pdf_type"); pdfType != "" {
		if !models.IsValidPdfType(pdfType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown paper type"})
			return
		}
		query = query.Where("pdf_type = ?", pdfType)
	}

	var uploads []models.UserUploadIndex
	if err := query.Order("uploaded_at DESC").Find(&uploads).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list uploads"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uploads": uploads,
		"total":   len(uploads),
	})
}

// GetDocument returns one document with notes and verdicts. Owners see their
// own documents; reviewers and admins see everything.
func GetDocument(c *gin.Context) {
	actor := currentActor(c)
	documentID := c.Param("document_id")

	var doc models.Document
	if err := config.DB.Preload("Notes").Preload("Reviews").Preload("Reviews.Reviewer").
		Where("document_id = ?", documentID).First(&doc).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	if doc.OwnerID != actor.UserID && !actor.Privileged() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to view this document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"document": doc})
}

// DownloadDocument streams the stored blob.
func DownloadDocument(c *gin.Context) {
	actor := currentActor(c)
	documentID := c.Param("document_id")

	var doc models.Document
	if err := config.DB.Where("document_id = ?", documentID).First(&doc).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	if doc.OwnerID != actor.UserID && !actor.Privileged() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to download this document"})
		return
	}

	if _, err := os.Stat(doc.StoredPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stored file is missing"})
		return
	}

	c.FileAttachment(doc.StoredPath, doc.OriginalFilename)
}

// DeleteDocument removes an uploaded document that is not attached to any
// submission, then discards the blob best-effort.
func DeleteDocument(c *gin.Context) {
	actor := currentActor(c)
	documentID := c.Param("document_id")

	storedPath, err := workflow().DeleteDocument(documentID, actor)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	if storedPath != "" {
		if err := os.Remove(storedPath); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: failed to remove blob %s: %v", storedPath, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Document deleted successfully",
	})
}

// AddDocumentNote appends one annotation to a document.
func AddDocumentNote(c *gin.Context) {
	actor := currentActor(c)
	documentID := c.Param("document_id")

	var req struct {
		Note string `json:"note" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := workflow().AppendNote(documentID, actor.UserID, utils.SanitizeInput(req.Note))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"note":    note,
	})
}

// PromoteDocument turns an uploaded document into a new review case, subject
// to the one-open-submission-per-(owner, title, type) rule.
func PromoteDocument(c *gin.Context) {
	actor := currentActor(c)
	documentID := c.Param("document_id")

	submission, err := workflow().Promote(documentID, actor)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Submission created successfully",
		"submission": submission,
	})
}

func workflow() *services.WorkflowService {
	return services.NewWorkflowService(config.DB)
}
