package models

import (
	"time"
)

// Submission is one review case. It references documents by identifier; the
// file list is append-only and a document's position in it (file_index) is
// the stable key reviews correlate on.
type Submission struct {
	SubmissionID string    `gorm:"primaryKey;column:submission_id" json:"submission_id"`
	OwnerID      int       `gorm:"column:owner_id;index:idx_sub_dedup" json:"owner_id"`
	Title        string    `gorm:"column:title;index:idx_sub_dedup" json:"title"`
	Type         string    `gorm:"column:submission_type;index:idx_sub_dedup" json:"submission_type"` // abstracts|full_paper
	Topic        string    `gorm:"column:topic" json:"topic"`
	PresentType  string    `gorm:"column:present_type" json:"present_type"`
	Status       string    `gorm:"column:status" json:"status"` // pending|replied|approved|rejected
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`

	// Relations
	Owner   *User              `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Files   []SubmissionFile   `gorm:"foreignKey:SubmissionID" json:"files,omitempty"`
	Reviews []SubmissionReview `gorm:"foreignKey:SubmissionID" json:"reviewed_by,omitempty"`
}

// SubmissionFile binds one document into a submission at a fixed position.
// A document belongs to at most one submission.
type SubmissionFile struct {
	ID           int       `gorm:"primaryKey;column:id" json:"id"`
	SubmissionID string    `gorm:"column:submission_id;uniqueIndex:uq_sub_file_index" json:"submission_id"`
	FileIndex    int       `gorm:"column:file_index;uniqueIndex:uq_sub_file_index" json:"file_index"`
	DocumentID   string    `gorm:"column:document_id;unique" json:"document_id"`
	AttachedAt   time.Time `gorm:"column:attached_at" json:"attached_at"`

	Document *Document `gorm:"foreignKey:DocumentID" json:"document,omitempty"`
}

// SubmissionReview mirrors a document verdict onto the owning submission,
// keyed by (reviewer, file_index). Last write per key wins.
type SubmissionReview struct {
	ReviewID     int       `gorm:"primaryKey;column:review_id" json:"review_id"`
	SubmissionID string    `gorm:"column:submission_id;uniqueIndex:uq_sub_reviewer_file" json:"submission_id"`
	ReviewerID   int       `gorm:"column:reviewer_id;uniqueIndex:uq_sub_reviewer_file" json:"reviewer_id"`
	FileIndex    int       `gorm:"column:file_index;uniqueIndex:uq_sub_reviewer_file" json:"file_index"`
	Opinion      string    `gorm:"column:opinion" json:"opinion"` // approved|rejected
	Comment      string    `gorm:"column:comment" json:"comment"`
	ReviewedAt   time.Time `gorm:"column:reviewed_at" json:"reviewed_at"`

	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

// SubmissionStatusHistory records one status transition for audit.
type SubmissionStatusHistory struct {
	HistoryID    int       `gorm:"primaryKey;column:history_id" json:"history_id"`
	SubmissionID string    `gorm:"column:submission_id" json:"submission_id"`
	OldStatus    *string   `gorm:"column:old_status" json:"old_status,omitempty"`
	NewStatus    string    `gorm:"column:new_status" json:"new_status"`
	ChangedBy    int       `gorm:"column:changed_by" json:"changed_by"`
	Reason       *string   `gorm:"column:reason" json:"reason,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides
func (Submission) TableName() string {
	return "submissions"
}

func (SubmissionFile) TableName() string {
	return "submission_files"
}

func (SubmissionReview) TableName() string {
	return "submission_reviews"
}

func (SubmissionStatusHistory) TableName() string {
	return "submission_status_history"
}
