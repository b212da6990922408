package services

import (
	"errors"
	"time"

	"conference-submission-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewService is the verdict ledger: per-reviewer records on documents,
// mirrored onto the owning submission keyed by (reviewer, file index).
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// VerdictOpinion translates the boolean verdict into the mirrored opinion
// string stored on the submission ledger.
func VerdictOpinion(approved bool) string {
	if approved {
		return models.SubmissionStatusApproved
	}
	return models.SubmissionStatusRejected
}

// RecordVerdict writes a reviewer's verdict against a document. A repeat
// verdict from the same reviewer replaces the earlier one in place — the
// upsert is a single ON DUPLICATE KEY statement, not remove-then-push. The
// verdict is mirrored onto the owning submission when one references the
// document; an unattached document keeps its verdict with no mirror.
func (s *ReviewService) RecordVerdict(documentID string, actor Actor, approved bool, note string) (*models.DocumentReview, error) {
	if !actor.Privileged() {
		return nil, Forbiddenf("Only reviewers and admins may record verdicts")
	}

	now := time.Now()
	review := models.DocumentReview{
		DocumentID: documentID,
		ReviewerID: actor.UserID,
		Approved:   approved,
		Note:       note,
		ReviewedAt: now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var doc models.Document
		if err := tx.Where("document_id = ?", documentID).First(&doc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("Document not found")
			}
			return Persistence(err)
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "document_id"}, {Name: "reviewer_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"approved", "note", "reviewed_at"}),
		}).Create(&review).Error; err != nil {
			return Persistence(err)
		}

		// Mirror step. No owning submission means a silent no-op.
		var file models.SubmissionFile
		if err := tx.Where("document_id = ?", documentID).First(&file).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return Persistence(err)
		}

		mirror := models.SubmissionReview{
			SubmissionID: file.SubmissionID,
			ReviewerID:   actor.UserID,
			FileIndex:    file.FileIndex,
			Opinion:      VerdictOpinion(approved),
			Comment:      note,
			ReviewedAt:   now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "submission_id"}, {Name: "reviewer_id"}, {Name: "file_index"}},
			DoUpdates: clause.AssignmentColumns([]string{"opinion", "comment", "reviewed_at"}),
		}).Create(&mirror).Error; err != nil {
			return Persistence(err)
		}

		if err := tx.Model(&models.Submission{}).
			Where("submission_id = ?", file.SubmissionID).
			Update("updated_at", now).Error; err != nil {
			return Persistence(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &review, nil
}

// Decide applies the external decision to a submission: replied, approved or
// rejected. Records status history and returns the previous status.
func (s *ReviewService) Decide(submissionID string, actor Actor, newStatus, reason string) (*models.Submission, string, error) {
	if !actor.Privileged() {
		return nil, "", Forbiddenf("Only reviewers and admins may decide submissions")
	}
	if !models.IsValidSubmissionStatus(newStatus) || newStatus == models.SubmissionStatusPending {
		return nil, "", Validationf("Decision must be one of replied, approved, rejected")
	}

	var sub models.Submission
	var oldStatus string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("submission_id = ?", submissionID).First(&sub).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("Submission not found")
			}
			return Persistence(err)
		}

		oldStatus = sub.Status
		if oldStatus == newStatus {
			return nil
		}
		if IsTerminalForType(oldStatus, sub.Type) {
			return Validationf("Submission is already %s", oldStatus)
		}

		now := time.Now()
		if err := tx.Model(&models.Submission{}).
			Where("submission_id = ?", sub.SubmissionID).
			Updates(map[string]interface{}{"status": newStatus, "updated_at": now}).Error; err != nil {
			return Persistence(err)
		}

		history := models.SubmissionStatusHistory{
			SubmissionID: sub.SubmissionID,
			OldStatus:    &oldStatus,
			NewStatus:    newStatus,
			ChangedBy:    actor.UserID,
			CreatedAt:    now,
		}
		if reason != "" {
			history.Reason = &reason
		}
		if err := tx.Create(&history).Error; err != nil {
			return Persistence(err)
		}

		sub.Status = newStatus
		sub.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	return &sub, oldStatus, nil
}
