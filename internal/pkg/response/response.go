// Package response renders the one JSON envelope every handler speaks:
// {"success":true,"data":...} on success and
// {"success":false,"error":{"code","message"[,"details"]}} on failure.
package response

import "github.com/gin-gonic/gin"

// Success writes data wrapped in the success envelope.
func Success(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// Error writes a machine-readable code and a human-readable message.
func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   errorBody(code, message, nil),
	})
}

// ErrorWithDetails attaches structured context to the error body, such
// as the accepted container formats on a rejected upload.
func ErrorWithDetails(c *gin.Context, status int, code, message string, details any) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   errorBody(code, message, details),
	})
}

func errorBody(code, message string, details any) gin.H {
	body := gin.H{
		"code":    code,
		"message": message,
	}
	if details != nil {
		body["details"] = details
	}
	return body
}
