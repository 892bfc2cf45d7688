package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/julian-of-21twelve-interactive/bytServer-sub001/utils"
)

var ErrNoPermission = &CustomError{"You do not have permission"}

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

// actorFrom resolves the acting user for event tagging. Best effort: a
// request without an authenticated user broadcasts with an empty actor and
// must never fail because of it.
func actorFrom(c *gin.Context) string {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.InfoLogger.Printf("No authenticated user on %s %s, broadcasting with empty actor",
			c.Request.Method, c.Request.URL.Path)
		return ""
	}
	return fmt.Sprintf("%v", userID)
}
