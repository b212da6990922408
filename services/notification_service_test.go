package services

import "testing"

func TestRelatedSubmissionRef(t *testing.T) {
	if ref := relatedSubmissionRef(""); ref != nil {
		t.Fatalf("expected nil reference for empty submission id, got %q", *ref)
	}

	ref := relatedSubmissionRef("sub-1")
	if ref == nil || *ref != "sub-1" {
		t.Fatalf("expected reference to sub-1, got %v", ref)
	}
}
