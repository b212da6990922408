package models

import (
	"time"
)

// Document is one uploaded artifact. Its status is advisory: whether the
// document is attached to a review case is decided by submission_files
// membership, not by this column (see services.ReconcileDocumentStatuses).
type Document struct {
	DocumentID       string    `gorm:"primaryKey;column:document_id" json:"document_id"`
	OwnerID          int       `gorm:"column:owner_id" json:"owner_id"`
	UploadedBy       int       `gorm:"column:uploaded_by" json:"uploaded_by"`
	Status           string    `gorm:"column:status" json:"status"` // uploaded|pending
	Title            string    `gorm:"column:title" json:"title"`
	PdfType          string    `gorm:"column:pdf_type" json:"pdf_type"` // abstracts|full_paper
	Topic            string    `gorm:"column:topic" json:"topic"`
	PresentType      string    `gorm:"column:present_type" json:"present_type"` // oral|poster|undecided
	Description      string    `gorm:"column:description" json:"description"`
	OriginalFilename string    `gorm:"column:original_filename" json:"original_filename"`
	StoredPath       string    `gorm:"column:stored_path" json:"stored_path"`
	FileSize         int64     `gorm:"column:file_size" json:"file_size"`
	MimeType         string    `gorm:"column:mime_type" json:"mime_type"`
	ReviewerAuthored bool      `gorm:"column:reviewer_authored" json:"reviewer_authored"`
	UploadedAt       time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`

	// Relations
	Owner   *User            `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Notes   []DocumentNote   `gorm:"foreignKey:DocumentID" json:"notes,omitempty"`
	Reviews []DocumentReview `gorm:"foreignKey:DocumentID" json:"reviewed_by,omitempty"`
}

// DocumentNote is one free-text annotation. Notes are append-only.
type DocumentNote struct {
	NoteID     int       `gorm:"primaryKey;column:note_id" json:"note_id"`
	DocumentID string    `gorm:"column:document_id" json:"document_id"`
	AuthorID   int       `gorm:"column:author_id" json:"author_id"`
	Note       string    `gorm:"column:note" json:"note"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

// DocumentReview is one reviewer's verdict on a document. There is at most
// one row per (document, reviewer); a later verdict from the same reviewer
// replaces the earlier one in place.
type DocumentReview struct {
	ReviewID   int       `gorm:"primaryKey;column:review_id" json:"review_id"`
	DocumentID string    `gorm:"column:document_id;uniqueIndex:uq_doc_reviewer" json:"document_id"`
	ReviewerID int       `gorm:"column:reviewer_id;uniqueIndex:uq_doc_reviewer" json:"reviewer_id"`
	Approved   bool      `gorm:"column:approved" json:"approved"`
	Note       string    `gorm:"column:note" json:"note"`
	ReviewedAt time.Time `gorm:"column:reviewed_at" json:"reviewed_at"`

	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

// TableName overrides
func (Document) TableName() string {
	return "documents"
}

func (DocumentNote) TableName() string {
	return "document_notes"
}

func (DocumentReview) TableName() string {
	return "document_reviews"
}
