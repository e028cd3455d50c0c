package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler carries the route-independent endpoints.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"status": "healthy",
		},
	})
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	// The console holds no connections of its own; backend reachability is
	// surfaced per screen through refresh errors.
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"status": "ready",
		},
	})
}
