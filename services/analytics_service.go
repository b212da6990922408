package services

import (
	"conference-submission-api/models"

	"gorm.io/gorm"
)

// PresentCounts splits a bucket by presentation type.
type PresentCounts struct {
	Oral      int `json:"oral"`
	Poster    int `json:"poster"`
	Undecided int `json:"undecided"`
	Total     int `json:"total"`
}

func (c *PresentCounts) add(presentType string) {
	switch presentType {
	case models.PresentTypeOral:
		c.Oral++
	case models.PresentTypePoster:
		c.Poster++
	default:
		c.Undecided++
	}
	c.Total++
}

// TopicBuckets is the per-topic report row.
type TopicBuckets struct {
	FullPaperInvitation PresentCounts `json:"full_paper_invitation"`
	FullPaperAccepted   PresentCounts `json:"full_paper_accepted"`
	StillInAbstract     PresentCounts `json:"still_in_abstract"`
}

// AnalyticsService produces the read-only conference report.
type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// BuildConferenceReport reduces the submission collection into per-topic,
// per-presentation-type counts. Unknown topics fold into the catch-all track
// and the ALL pseudo-topic aggregates everything.
func BuildConferenceReport(subs []models.Submission) map[string]*TopicBuckets {
	report := make(map[string]*TopicBuckets, len(models.ConferenceTopics)+1)
	for _, topic := range models.ConferenceTopics {
		report[topic] = &TopicBuckets{}
	}
	report[models.TopicAll] = &TopicBuckets{}

	for _, sub := range subs {
		row := report[models.FoldTopic(sub.Topic)]
		all := report[models.TopicAll]

		switch sub.Type {
		case models.PdfTypeFullPaper:
			row.FullPaperInvitation.add(sub.PresentType)
			all.FullPaperInvitation.add(sub.PresentType)
			if sub.Status == models.SubmissionStatusApproved {
				row.FullPaperAccepted.add(sub.PresentType)
				all.FullPaperAccepted.add(sub.PresentType)
			}
		case models.PdfTypeAbstracts:
			row.StillInAbstract.add(sub.PresentType)
			all.StillInAbstract.add(sub.PresentType)
		}
	}

	return report
}

// ConferenceReport loads every submission and reduces it. No writes.
func (s *AnalyticsService) ConferenceReport() (map[string]*TopicBuckets, error) {
	var subs []models.Submission
	if err := s.db.Find(&subs).Error; err != nil {
		return nil, Persistence(err)
	}
	return BuildConferenceReport(subs), nil
}
