package services

import (
	"conference-submission-api/models"

	"gorm.io/gorm"
)

// ReconcileDocumentStatuses corrects documents that a submission references
// but that still carry the advisory "uploaded" status, e.g. after a partial
// write from an older deployment. Membership in submission_files wins.
// Returns the number of corrected rows.
func ReconcileDocumentStatuses(db *gorm.DB) (int64, error) {
	result := db.Model(&models.Document{}).
		Where("status <> ?", models.DocumentStatusPending).
		Where("document_id IN (?)", db.Model(&models.SubmissionFile{}).Select("document_id")).
		Update("status", models.DocumentStatusPending)
	if result.Error != nil {
		return 0, Persistence(result.Error)
	}
	return result.RowsAffected, nil
}
