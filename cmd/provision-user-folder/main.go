// Provisions the owner-scoped upload tree for specific users, e.g. after
// moving the blob store to a new volume.
package main

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"conference-submission-api/config"
	"conference-submission-api/models"
	"conference-submission-api/utils"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	log.Println("Starting targeted user folder provisioning...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to environment variables")
	}

	config.InitDB()

	targetUserIDs := parseUserIDs(os.Args[1:])
	if len(targetUserIDs) == 0 {
		log.Fatal("Usage: provision-user-folder <user_id> [user_id ...]")
	}

	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}

	var (
		succeeded int
		failed    []string
	)

	for _, targetUserID := range targetUserIDs {
		log.Printf("Provisioning user_id=%d", targetUserID)

		var user models.User
		if err := config.DB.First(&user, "user_id = ?", targetUserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				failed = append(failed, formatFailureLabel(targetUserID, "record not found"))
			} else {
				failed = append(failed, formatFailureLabel(targetUserID, err.Error()))
			}
			continue
		}

		folderPath, err := utils.CreateUserFolderIfNotExists(user, uploadPath)
		if err != nil {
			failed = append(failed, formatFailureLabel(targetUserID, err.Error()))
			continue
		}

		log.Printf("User folder ready at %s", folderPath)
		succeeded++
	}

	if len(failed) > 0 {
		log.Fatalf("completed with errors. successful: %d, failed: %s", succeeded, strings.Join(failed, ", "))
	}

	log.Printf("Successfully provisioned %d user(s)", succeeded)
}

func parseUserIDs(args []string) []int {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil || id <= 0 {
			log.Printf("Skipping invalid user id %q", arg)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func formatFailureLabel(userID int, reason string) string {
	return "user_id=" + strconv.Itoa(userID) + " (" + reason + ")"
}
