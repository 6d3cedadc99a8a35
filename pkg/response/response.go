package response

import (
	"github.com/gin-gonic/gin"
)

// Fail writes the {"success": false, "error": ...} envelope used by the
// account endpoints.
func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// Error writes the bare {"error": ...} envelope used by the media endpoints.
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}
