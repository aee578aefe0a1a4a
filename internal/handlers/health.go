package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/task-management-services/internal/response"
)

// Health reports that the named service is up.
func Health(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, http.StatusOK, "OK", gin.H{"service": service})
	}
}
