package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"conference-submission-api/models"

	"github.com/gin-gonic/gin"
)

func authTestRouter() *gin.Engine {
	router := gin.New()
	router.POST("/login", Login)
	router.PUT("/change-password", asUser(7, models.RoleAttendee), ChangePassword)
	return router
}

func TestLoginRejectsMalformedEmail(t *testing.T) {
	body := strings.NewReader(`{"email":"not-an-address","password":"whatever1"}`)
	req := httptest.NewRequest("POST", "/login", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	authTestRouter().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed email, got %d: %s", w.Code, w.Body.String())
	}
}

func TestChangePasswordRejectsShortPassword(t *testing.T) {
	body := strings.NewReader(`{"current_password":"oldpassword","new_password":"short"}`)
	req := httptest.NewRequest("PUT", "/change-password", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	authTestRouter().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short password, got %d: %s", w.Code, w.Body.String())
	}
}
