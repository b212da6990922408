package models

// Document statuses. "uploaded" means not yet attached to an active review
// case; "pending" means attached and awaiting/under review.
const (
	DocumentStatusUploaded = "uploaded"
	DocumentStatusPending  = "pending"
)

// Submission statuses.
const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusReplied  = "replied"
	SubmissionStatusApproved = "approved"
	SubmissionStatusRejected = "rejected"
)

// Paper types.
const (
	PdfTypeAbstracts = "abstracts"
	PdfTypeFullPaper = "full_paper"
)

// Presentation types.
const (
	PresentTypeOral      = "oral"
	PresentTypePoster    = "poster"
	PresentTypeUndecided = "undecided"
)

// TopicCatchAll absorbs submissions whose topic is not in the track list.
const TopicCatchAll = "other"

// TopicAll is the reporting pseudo-topic aggregating every track.
const TopicAll = "ALL"

// ConferenceTopics is the authoritative track enumeration for the current
// conference edition. Keep this as the single copy; ingestion, reporting and
// tests all read from here.
var ConferenceTopics = []string{
	"machine_learning",
	"data_systems",
	"networking",
	"security",
	"software_engineering",
	"theory",
	"human_computer_interaction",
	TopicCatchAll,
}

var validTopics = func() map[string]bool {
	m := make(map[string]bool, len(ConferenceTopics))
	for _, t := range ConferenceTopics {
		m[t] = true
	}
	return m
}()

// IsValidTopic reports whether topic is one of the conference tracks.
func IsValidTopic(topic string) bool {
	return validTopics[topic]
}

// FoldTopic maps unknown topics into the catch-all track.
func FoldTopic(topic string) string {
	if validTopics[topic] {
		return topic
	}
	return TopicCatchAll
}

// IsValidPdfType reports whether t is a known paper type.
func IsValidPdfType(t string) bool {
	return t == PdfTypeAbstracts || t == PdfTypeFullPaper
}

// IsValidPresentType reports whether t is a known presentation type.
func IsValidPresentType(t string) bool {
	return t == PresentTypeOral || t == PresentTypePoster || t == PresentTypeUndecided
}

// IsValidSubmissionStatus reports whether s is a known submission status.
func IsValidSubmissionStatus(s string) bool {
	switch s {
	case SubmissionStatusPending, SubmissionStatusReplied, SubmissionStatusApproved, SubmissionStatusRejected:
		return true
	}
	return false
}
