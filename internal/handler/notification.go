package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hospitalms/admin-console/internal/notifier"
	"github.com/hospitalms/admin-console/pkg/httputil"
)

// Notification serves the recent success/failure messages recorded by the
// engine, newest first.
type Notification struct {
	recorder *notifier.Recorder
}

func NewNotification(recorder *notifier.Recorder) *Notification {
	return &Notification{recorder: recorder}
}

func (h *Notification) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications", h.List)
}

func (h *Notification) List(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.recorder.Recent())
}
