package services

import (
	"errors"
	"log"
	"time"

	"conference-submission-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Actor is the acting principal as asserted by the auth token.
type Actor struct {
	UserID int
	RoleID int
	Name   string
}

// Privileged reports whether the actor may operate on other users' cases.
func (a Actor) Privileged() bool {
	return models.IsPrivileged(a.RoleID)
}

// DocumentParams carries the metadata and blob coordinates for a new document.
type DocumentParams struct {
	OwnerID          int
	UploadedBy       int
	Title            string
	PdfType          string
	Topic            string
	PresentType      string
	Description      string
	OriginalFilename string
	StoredPath       string
	FileSize         int64
	MimeType         string
	ReviewerAuthored bool
}

// WorkflowService owns the document → submission lifecycle: ingestion
// records, promotion with deduplication, resubmission, and the user index
// projection that hangs off those writes.
type WorkflowService struct {
	db *gorm.DB
}

func NewWorkflowService(db *gorm.DB) *WorkflowService {
	return &WorkflowService{db: db}
}

// IsTerminalForType reports whether a submission in the given status blocks
// nothing anymore. Rejected is terminal for both paper types; an approved
// full paper is frozen too, while an approved abstract stays open so the case
// can progress to a full-paper exchange.
func IsTerminalForType(status, submissionType string) bool {
	if status == models.SubmissionStatusRejected {
		return true
	}
	return submissionType == models.PdfTypeFullPaper && status == models.SubmissionStatusApproved
}

// OwnerResubmissionGuard enforces the owner-side state rules for appending a
// new file to an existing submission.
func OwnerResubmissionGuard(submissionType, status string) error {
	switch {
	case status == models.SubmissionStatusRejected:
		return Forbiddenf("Submission has been rejected and can no longer be amended")
	case status == models.SubmissionStatusPending:
		return Forbiddenf("Submission is still awaiting its first decision")
	case submissionType == models.PdfTypeFullPaper && status == models.SubmissionStatusApproved:
		return Forbiddenf("An accepted full paper is frozen")
	}
	return nil
}

// ValidateDocumentParams checks the closed enumerations before anything is
// persisted. PresentType defaults to undecided when empty.
func ValidateDocumentParams(p *DocumentParams) error {
	if p.Title == "" {
		return Validationf("Title is required")
	}
	if !models.IsValidPdfType(p.PdfType) {
		return Validationf("Unknown paper type '%s'", p.PdfType)
	}
	if !models.IsValidTopic(p.Topic) {
		return Validationf("Unknown topic '%s'", p.Topic)
	}
	if p.PresentType == "" {
		p.PresentType = models.PresentTypeUndecided
	}
	if !models.IsValidPresentType(p.PresentType) {
		return Validationf("Unknown presentation type '%s'", p.PresentType)
	}
	return nil
}

// CreateDocument persists a freshly uploaded artifact with status "uploaded"
// and appends a compact record to the owner's upload index. The index write
// is best-effort: the projection is never authoritative, so a failure there
// is logged and the document stands.
func (s *WorkflowService) CreateDocument(p DocumentParams) (*models.Document, error) {
	if err := ValidateDocumentParams(&p); err != nil {
		return nil, err
	}

	now := time.Now()
	doc := models.Document{
		DocumentID:       uuid.NewString(),
		OwnerID:          p.OwnerID,
		UploadedBy:       p.UploadedBy,
		Status:           models.DocumentStatusUploaded,
		Title:            p.Title,
		PdfType:          p.PdfType,
		Topic:            p.Topic,
		PresentType:      p.PresentType,
		Description:      p.Description,
		OriginalFilename: p.OriginalFilename,
		StoredPath:       p.StoredPath,
		FileSize:         p.FileSize,
		MimeType:         p.MimeType,
		ReviewerAuthored: p.ReviewerAuthored,
		UploadedAt:       now,
	}

	if err := s.db.Create(&doc).Error; err != nil {
		return nil, Persistence(err)
	}

	s.appendUploadIndex(&doc)

	return &doc, nil
}

func (s *WorkflowService) appendUploadIndex(doc *models.Document) {
	entry := models.UserUploadIndex{
		UserID:      doc.UploadedBy,
		PdfType:     doc.PdfType,
		DocumentID:  doc.DocumentID,
		Title:       doc.Title,
		Description: doc.Description,
		StoredPath:  doc.StoredPath,
		UploadedAt:  doc.UploadedAt,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Warning: failed to append upload index for user %d: %v", doc.UploadedBy, err)
	}
}

// Promote attaches an uploaded document to a new submission. The dedup probe
// and every write run in one transaction; matching submission rows are locked
// so two concurrent promotions of the same (owner, title, type) serialize at
// the store.
func (s *WorkflowService) Promote(documentID string, actor Actor) (*models.Submission, error) {
	var created models.Submission

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var doc models.Document
		if err := tx.Where("document_id = ?", documentID).First(&doc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("Document not found")
			}
			return Persistence(err)
		}

		if doc.OwnerID != actor.UserID {
			return Forbiddenf("Only the document owner may promote it")
		}

		var attached int64
		if err := tx.Model(&models.SubmissionFile{}).
			Where("document_id = ?", doc.DocumentID).
			Count(&attached).Error; err != nil {
			return Persistence(err)
		}
		if attached > 0 {
			return Validationf("Document is already attached to a submission")
		}

		var existing []models.Submission
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("owner_id = ? AND title = ? AND submission_type = ?", doc.OwnerID, doc.Title, doc.PdfType).
			Find(&existing).Error; err != nil {
			return Persistence(err)
		}
		for _, sub := range existing {
			if !IsTerminalForType(sub.Status, sub.Type) {
				return Conflictf("An open submission titled '%s' already exists for this paper type", sub.Title)
			}
		}

		now := time.Now()
		created = models.Submission{
			SubmissionID: uuid.NewString(),
			OwnerID:      doc.OwnerID,
			Title:        doc.Title,
			Type:         doc.PdfType,
			Topic:        doc.Topic,
			PresentType:  doc.PresentType,
			Status:       models.SubmissionStatusPending,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Create(&created).Error; err != nil {
			return Persistence(err)
		}

		file := models.SubmissionFile{
			SubmissionID: created.SubmissionID,
			FileIndex:    0,
			DocumentID:   doc.DocumentID,
			AttachedAt:   now,
		}
		if err := tx.Create(&file).Error; err != nil {
			return Persistence(err)
		}

		// Advisory status flip. Membership in submission_files is what the
		// read side trusts; the reconcile job re-aligns stragglers.
		if err := tx.Model(&models.Document{}).
			Where("document_id = ?", doc.DocumentID).
			Update("status", models.DocumentStatusPending).Error; err != nil {
			return Persistence(err)
		}

		history := models.SubmissionStatusHistory{
			SubmissionID: created.SubmissionID,
			NewStatus:    models.SubmissionStatusPending,
			ChangedBy:    actor.UserID,
			CreatedAt:    now,
		}
		if err := tx.Create(&history).Error; err != nil {
			return Persistence(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.appendSubmissionIndex(&created)

	return &created, nil
}

func (s *WorkflowService) appendSubmissionIndex(sub *models.Submission) {
	entry := models.UserSubmissionIndex{
		UserID:         sub.OwnerID,
		SubmissionType: sub.Type,
		SubmissionID:   sub.SubmissionID,
		CreatedAt:      sub.CreatedAt,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Warning: failed to append submission index for user %d: %v", sub.OwnerID, err)
	}
}

// AttachFile appends a new document to an existing submission. Owners are
// subject to the resubmission state guards and reset the case to pending;
// reviewers and admins attach an annotation document without touching status.
// Prior files are never removed.
func (s *WorkflowService) AttachFile(submissionID string, actor Actor, p DocumentParams) (*models.Document, error) {
	var doc models.Document

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sub models.Submission
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("submission_id = ?", submissionID).First(&sub).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("Submission not found")
			}
			return Persistence(err)
		}

		annotation := actor.Privileged()
		if !annotation {
			if sub.OwnerID != actor.UserID {
				return Forbiddenf("Only the submission owner may resubmit")
			}
			if err := OwnerResubmissionGuard(sub.Type, sub.Status); err != nil {
				return err
			}
		}

		var count int64
		if err := tx.Model(&models.SubmissionFile{}).
			Where("submission_id = ?", sub.SubmissionID).
			Count(&count).Error; err != nil {
			return Persistence(err)
		}
		fileIndex := int(count)

		now := time.Now()
		doc = models.Document{
			DocumentID:       uuid.NewString(),
			OwnerID:          sub.OwnerID,
			UploadedBy:       actor.UserID,
			Status:           models.DocumentStatusPending,
			Title:            sub.Title,
			PdfType:          sub.Type,
			Topic:            sub.Topic,
			PresentType:      sub.PresentType,
			Description:      p.Description,
			OriginalFilename: p.OriginalFilename,
			StoredPath:       p.StoredPath,
			FileSize:         p.FileSize,
			MimeType:         p.MimeType,
			ReviewerAuthored: annotation && actor.UserID != sub.OwnerID,
			UploadedAt:       now,
		}
		if err := tx.Create(&doc).Error; err != nil {
			return Persistence(err)
		}

		file := models.SubmissionFile{
			SubmissionID: sub.SubmissionID,
			FileIndex:    fileIndex,
			DocumentID:   doc.DocumentID,
			AttachedAt:   now,
		}
		if err := tx.Create(&file).Error; err != nil {
			return Persistence(err)
		}

		updates := map[string]interface{}{"updated_at": now}
		if !annotation {
			updates["status"] = models.SubmissionStatusPending
		}
		if err := tx.Model(&models.Submission{}).
			Where("submission_id = ?", sub.SubmissionID).
			Updates(updates).Error; err != nil {
			return Persistence(err)
		}

		if !annotation && sub.Status != models.SubmissionStatusPending {
			oldStatus := sub.Status
			history := models.SubmissionStatusHistory{
				SubmissionID: sub.SubmissionID,
				OldStatus:    &oldStatus,
				NewStatus:    models.SubmissionStatusPending,
				ChangedBy:    actor.UserID,
				CreatedAt:    now,
			}
			if err := tx.Create(&history).Error; err != nil {
				return Persistence(err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.appendUploadIndex(&doc)

	return &doc, nil
}

// DeleteDocument removes an uploaded document that never got attached to a
// submission, pruning the owner's upload index alongside. Returns the stored
// path so the caller can discard the blob best-effort.
func (s *WorkflowService) DeleteDocument(documentID string, actor Actor) (string, error) {
	var storedPath string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var doc models.Document
		if err := tx.Where("document_id = ?", documentID).First(&doc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("Document not found")
			}
			return Persistence(err)
		}

		if doc.OwnerID != actor.UserID && actor.RoleID != models.RoleAdmin {
			return Forbiddenf("Only the document owner may delete it")
		}

		var attached int64
		if err := tx.Model(&models.SubmissionFile{}).
			Where("document_id = ?", doc.DocumentID).
			Count(&attached).Error; err != nil {
			return Persistence(err)
		}
		if attached > 0 || doc.Status != models.DocumentStatusUploaded {
			return Validationf("Document is attached to a submission and cannot be deleted")
		}

		if err := tx.Where("document_id = ?", doc.DocumentID).Delete(&models.DocumentNote{}).Error; err != nil {
			return Persistence(err)
		}
		if err := tx.Where("document_id = ?", doc.DocumentID).Delete(&models.DocumentReview{}).Error; err != nil {
			return Persistence(err)
		}
		if err := tx.Where("document_id = ?", doc.DocumentID).Delete(&models.Document{}).Error; err != nil {
			return Persistence(err)
		}
		if err := tx.Where("document_id = ?", doc.DocumentID).Delete(&models.UserUploadIndex{}).Error; err != nil {
			return Persistence(err)
		}

		storedPath = doc.StoredPath
		return nil
	})
	if err != nil {
		return "", err
	}

	return storedPath, nil
}

// AppendNote adds one free-text annotation to a document. Notes are
// append-only; there is no edit or delete path.
func (s *WorkflowService) AppendNote(documentID string, authorID int, note string) (*models.DocumentNote, error) {
	if note == "" {
		return nil, Validationf("Note text is required")
	}

	var doc models.Document
	if err := s.db.Where("document_id = ?", documentID).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("Document not found")
		}
		return nil, Persistence(err)
	}

	record := models.DocumentNote{
		DocumentID: documentID,
		AuthorID:   authorID,
		Note:       note,
		CreatedAt:  time.Now(),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, Persistence(err)
	}

	return &record, nil
}
