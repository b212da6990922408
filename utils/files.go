package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"conference-submission-api/models"
)

// resubmitExtensions is the uniform allow-list for file replacement.
var resubmitExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// IngestExtensionAllowed applies the per-route upload rules: abstracts accept
// Word drafts, full papers must already be PDF.
func IngestExtensionAllowed(pdfType, ext string) bool {
	ext = strings.ToLower(ext)
	if pdfType == models.PdfTypeFullPaper {
		return ext == ".pdf"
	}
	return resubmitExtensions[ext]
}

// ResubmitExtensionAllowed accepts .pdf/.doc/.docx uniformly.
func ResubmitExtensionAllowed(ext string) bool {
	return resubmitExtensions[strings.ToLower(ext)]
}

// GetUserFolderName returns the owner-scoped folder segment for a user.
func GetUserFolderName(user models.User) string {
	return fmt.Sprintf("user_%d", user.UserID)
}

// CreateUserFolderIfNotExists ensures the owner-scoped upload tree exists and
// returns the user's root folder. One subfolder per paper type.
func CreateUserFolderIfNotExists(user models.User, uploadRoot string) (string, error) {
	userFolder := filepath.Join(uploadRoot, "users", GetUserFolderName(user))
	for _, sub := range []string{models.PdfTypeAbstracts, models.PdfTypeFullPaper} {
		if err := os.MkdirAll(filepath.Join(userFolder, sub), 0755); err != nil {
			return "", err
		}
	}
	return userFolder, nil
}

// GenerateUniqueFilename returns filename, or a numbered variant when the
// name is already taken in dir.
func GenerateUniqueFilename(dir, filename string) string {
	candidate := filename
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	for i := 1; ; i++ {
		if _, err := os.Stat(filepath.Join(dir, candidate)); os.IsNotExist(err) {
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d%s", base, i, ext)
	}
}
