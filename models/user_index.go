package models

import "time"

// UserUploadIndex is one row of the per-user upload listing, denormalized for
// fast "my uploads" reads. Maintained only by the workflow engine; eventually
// consistent with the documents table and never authoritative.
type UserUploadIndex struct {
	ID          int       `gorm:"primaryKey;column:id" json:"id"`
	UserID      int       `gorm:"column:user_id;index:idx_upload_index_user" json:"user_id"`
	PdfType     string    `gorm:"column:pdf_type;index:idx_upload_index_user" json:"pdf_type"`
	DocumentID  string    `gorm:"column:document_id" json:"document_id"`
	Title       string    `gorm:"column:title" json:"title"`
	Description string    `gorm:"column:description" json:"description"`
	StoredPath  string    `gorm:"column:stored_path" json:"stored_path"`
	UploadedAt  time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`
}

// UserSubmissionIndex is the matching denormalized list of submission ids a
// user owns, grouped by submission type.
type UserSubmissionIndex struct {
	ID             int       `gorm:"primaryKey;column:id" json:"id"`
	UserID         int       `gorm:"column:user_id;index:idx_submission_index_user" json:"user_id"`
	SubmissionType string    `gorm:"column:submission_type;index:idx_submission_index_user" json:"submission_type"`
	SubmissionID   string    `gorm:"column:submission_id" json:"submission_id"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides
func (UserUploadIndex) TableName() string {
	return "user_upload_index"
}

func (UserSubmissionIndex) TableName() string {
	return "user_submission_index"
}
