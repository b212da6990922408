package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"conference-submission-api/config"
	"conference-submission-api/models"

	"gorm.io/gorm"
)

// NotifySubmissionEvent writes an in-app notification for the user and sends
// a matching email in the background. Both are fire-and-forget side effects:
// a failure here never fails the triggering operation.
func NotifySubmissionEvent(db *gorm.DB, userID int, submissionID, title, message, kind string) {
	notification := models.Notification{
		UserID:              userID,
		Title:               title,
		Message:             message,
		Type:                kind,
		RelatedSubmissionID: relatedSubmissionRef(submissionID),
		CreateAt:            time.Now(),
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("Warning: failed to create notification for user %d: %v", userID, err)
	}

	go sendNotificationMail(db, userID, title, message)
}

// relatedSubmissionRef keeps related_submission_id NULL for events with no
// owning submission, such as a verdict on an unattached document.
func relatedSubmissionRef(submissionID string) *string {
	if submissionID == "" {
		return nil
	}
	return &submissionID
}

func sendNotificationMail(db *gorm.DB, userID int, subject, message string) {
	var user models.User
	if err := db.Where("user_id = ? AND delete_at IS NULL", userID).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Warning: failed to load user %d for notification mail: %v", userID, err)
		}
		return
	}
	if user.Email == "" {
		return
	}

	html := fmt.Sprintf("<p>Dear %s,</p><p>%s</p><p>— Conference Submission Desk</p>", user.Name, message)
	if err := config.SendMail([]string{user.Email}, subject, html); err != nil {
		log.Printf("Warning: failed to send notification mail to %s: %v", user.Email, err)
	}
}
