package util

import "github.com/gin-gonic/gin"

// Error writes a flat {"error": msg} body. The wire contract has no
// code/data envelope.
func Error(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{"error": msg})
}
