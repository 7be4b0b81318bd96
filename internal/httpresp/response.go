package httpresp

import "github.com/gin-gonic/gin"

// Success writes {"success": true, "message": ..., ...payload}.
func Success(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func OK(c *gin.Context, message string, payload gin.H) {
	Success(c, 200, message, payload)
}

func Created(c *gin.Context, message string, payload gin.H) {
	Success(c, 201, message, payload)
}

// Fail writes {"success": false, "message": ..., ...extra} and aborts the chain.
func Fail(c *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{"success": false, "message": message}
	for k, v := range extra {
		if k == "success" || k == "message" {
			continue
		}
		body[k] = v
	}
	c.AbortWithStatusJSON(status, body)
}
