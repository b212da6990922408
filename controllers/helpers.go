package controllers

import (
	"os"

	"conference-submission-api/services"

	"github.com/gin-gonic/gin"
)

// currentActor rebuilds the acting principal from the auth context.
func currentActor(c *gin.Context) services.Actor {
	actor := services.Actor{}
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(int); ok {
			actor.UserID = id
		}
	}
	if v, ok := c.Get("roleID"); ok {
		if id, ok := v.(int); ok {
			actor.RoleID = id
		}
	}
	if v, ok := c.Get("userName"); ok {
		if name, ok := v.(string); ok {
			actor.Name = name
		}
	}
	return actor
}

func uploadRoot() string {
	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	return uploadPath
}

// abortWithServiceError maps a service error onto the standard error
// envelope. Persistence detail stays in the log, not in the response.
func abortWithServiceError(c *gin.Context, err error) {
	c.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
}
