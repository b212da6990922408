package services

import (
	"database/sql/driver"
	"regexp"
	"testing"

	"conference-submission-api/models"
)

func TestVerdictOpinion(t *testing.T) {
	if got := VerdictOpinion(true); got != models.SubmissionStatusApproved {
		t.Fatalf("VerdictOpinion(true) = %q", got)
	}
	if got := VerdictOpinion(false); got != models.SubmissionStatusRejected {
		t.Fatalf("VerdictOpinion(false) = %q", got)
	}
}

func TestRecordVerdictRequiresReviewerRole(t *testing.T) {
	svc := NewReviewService(nil)

	_, err := svc.RecordVerdict("doc-1", Actor{UserID: 4, RoleID: models.RoleAttendee}, true, "")
	if !IsKind(err, KindForbidden) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestRecordVerdictMissingDocument(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `documents` WHERE document_id = \\?"),
			columns: []string{"document_id"},
			rows:    [][]driver.Value{},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewReviewService(db)

	_, err := svc.RecordVerdict("doc-gone", Actor{UserID: 4, RoleID: models.RoleReviewer}, true, "looks fine")
	if !IsKind(err, KindNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordVerdictUpsertsAndMirrors(t *testing.T) {
	docID := "doc-9"

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `documents` WHERE document_id = \\?"),
			args:    []driver.Value{docID},
			columns: []string{"document_id", "owner_id", "status", "title"},
			rows: [][]driver.Value{
				{docID, int64(7), "pending", "A"},
			},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `document_reviews` .*ON DUPLICATE KEY UPDATE `approved`=VALUES\\(`approved`\\),`note`=VALUES\\(`note`\\),`reviewed_at`=VALUES\\(`reviewed_at`\\)"),
			args:    []driver.Value{docID, int64(9), true, "solid work", anyArg},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `submission_files` WHERE document_id = \\?"),
			args:    []driver.Value{docID},
			columns: []string{"submission_id", "file_index", "document_id"},
			rows: [][]driver.Value{
				{"sub-1", int64(2), docID},
			},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `submission_reviews` .*ON DUPLICATE KEY UPDATE `opinion`=VALUES\\(`opinion`\\),`comment`=VALUES\\(`comment`\\),`reviewed_at`=VALUES\\(`reviewed_at`\\)"),
			args:    []driver.Value{"sub-1", int64(9), int64(2), "approved", "solid work", anyArg},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `submissions` SET `updated_at`=\\? WHERE submission_id = \\?"),
			args:    []driver.Value{anyArg, "sub-1"},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewReviewService(db)

	review, err := svc.RecordVerdict(docID, Actor{UserID: 9, RoleID: models.RoleReviewer}, true, "solid work")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if review.ReviewerID != 9 || !review.Approved || review.Note != "solid work" {
		t.Fatalf("unexpected review record: %+v", review)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordVerdictUnattachedDocumentSkipsMirror(t *testing.T) {
	docID := "doc-loose"

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `documents` WHERE document_id = \\?"),
			args:    []driver.Value{docID},
			columns: []string{"document_id", "owner_id", "status", "title"},
			rows: [][]driver.Value{
				{docID, int64(7), "uploaded", "B"},
			},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `document_reviews` .*ON DUPLICATE KEY UPDATE"),
			args:    []driver.Value{docID, int64(9), false, "needs work", anyArg},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `submission_files` WHERE document_id = \\?"),
			args:    []driver.Value{docID},
			columns: []string{"submission_id", "file_index", "document_id"},
			rows:    [][]driver.Value{},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewReviewService(db)

	review, err := svc.RecordVerdict(docID, Actor{UserID: 9, RoleID: models.RoleReviewer}, false, "needs work")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if review.Approved {
		t.Fatalf("expected a rejecting verdict, got %+v", review)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDecideValidation(t *testing.T) {
	svc := NewReviewService(nil)

	if _, _, err := svc.Decide("sub-1", Actor{UserID: 4, RoleID: models.RoleAttendee}, "approved", ""); !IsKind(err, KindForbidden) {
		t.Fatalf("expected forbidden for attendee, got %v", err)
	}

	admin := Actor{UserID: 4, RoleID: models.RoleAdmin}
	if _, _, err := svc.Decide("sub-1", admin, "shortlisted", ""); !IsKind(err, KindValidation) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
	if _, _, err := svc.Decide("sub-1", admin, models.SubmissionStatusPending, ""); !IsKind(err, KindValidation) {
		t.Fatalf("expected validation error for pending decision, got %v", err)
	}
}

func TestDecideRejectsAlreadyTerminal(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `submissions` WHERE submission_id = \\?.*FOR UPDATE"),
			columns: []string{"submission_id", "owner_id", "title", "submission_type", "status"},
			rows: [][]driver.Value{
				{"sub-1", int64(7), "A", "abstracts", "rejected"},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewReviewService(db)

	_, _, err := svc.Decide("sub-1", Actor{UserID: 4, RoleID: models.RoleAdmin}, "approved", "")
	if !IsKind(err, KindValidation) {
		t.Fatalf("expected validation error for terminal submission, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
