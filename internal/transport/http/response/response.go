package response

import "github.com/gin-gonic/gin"

// Answer writes the chat contract body: {"answer": ...}.
func Answer(c *gin.Context, text string) {
	c.JSON(200, gin.H{"answer": text})
}

// Error writes {"error": ...} with the given status.
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, gin.H{"error": message})
}
