// File: handlers/notification.go
package handlers

import (
	"net/http"

	"pristine/middleware"
	"pristine/services/notification"
	"pristine/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationHandler serves the user's in-app notifications.
type NotificationHandler struct {
	Svc    notification.NotificationService
	Logger *zap.Logger
}

func NewNotificationHandler(svc notification.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{Svc: svc, Logger: logger}
}

// List returns the user's notifications, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.Svc.ListForUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		h.Logger.Error("failed to list notifications", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load notifications", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkRead flags one notification as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.Svc.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification marked read"})
}
