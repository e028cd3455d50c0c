package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospitalms/admin-console/internal/handler"
	"github.com/hospitalms/admin-console/internal/notifier"
)

func TestNotificationsNewestFirst(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := notifier.NewRecorder(10)
	recorder.Success("outpatient", "outpatient added")
	recorder.Failure("doctor", "error saving doctor")

	engine := gin.New()
	handler.NewNotification(recorder).RegisterRoutes(engine.Group("/api/v1"))

	w := perform(engine, http.MethodGet, "/api/v1/notifications", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool                    `json:"success"`
		Data    []notifier.Notification `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "error saving doctor", resp.Data[0].Message)
	assert.Equal(t, "error", resp.Data[0].Level)
	assert.Equal(t, "outpatient added", resp.Data[1].Message)
}

func TestNotificationsEmptyHistory(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	handler.NewNotification(notifier.NewRecorder(10)).RegisterRoutes(engine.Group("/api/v1"))

	w := perform(engine, http.MethodGet, "/api/v1/notifications", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []notifier.Notification `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data)
}
