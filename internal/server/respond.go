package server

import (
	"github.com/gin-gonic/gin"
)

// envelope is the response wrapper every endpoint uses. Business failures
// travel as success=false, which may ride on a 200; clients branch on the
// flag, not on the status code alone.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondFail(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{
		Success: false,
		Message: message,
	})
}

func respondFailAbort(c *gin.Context, status int, message string) {
	respondFail(c, status, message)
	c.Abort()
}
