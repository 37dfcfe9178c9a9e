package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindbuilders/dtmms/internal/models"
	"github.com/mindbuilders/dtmms/internal/service"
	"github.com/mindbuilders/dtmms/pkg/response"
)

type messagingService interface {
	Inbox(ctx context.Context, userID string) ([]models.Message, error)
	Sent(ctx context.Context, userID string) ([]models.Message, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	Send(ctx context.Context, senderID string, req service.SendMessageRequest) (*models.Message, error)
	Reply(ctx context.Context, senderID, messageID string, req service.ReplyRequest) (*models.Message, error)
	MarkMessageRead(ctx context.Context, userID, messageID string) error
	Notifications(ctx context.Context, userID string) ([]models.Notification, error)
	Notify(ctx context.Context, req service.CreateNotificationRequest) (*models.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID string) error
}

// MessageHandler serves the caller's messages and notifications.
type MessageHandler struct {
	service messagingService
}

func NewMessageHandler(svc messagingService) *MessageHandler {
	return &MessageHandler{service: svc}
}

// Inbox godoc
// @Summary Received messages, newest first
// @Tags Messages
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /messages/inbox [get]
func (h *MessageHandler) Inbox(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}
	messages, err := h.service.Inbox(c.Request.Context(), caller.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	unread, err := h.service.UnreadCount(c.Request.Context(), caller.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}
	response.JSON(c, http.StatusOK, messages, map[string]interface{}{"total": len(messages), "unread": unread})
}

// Sent godoc
// @Summary Sent messages, newest first
// @Tags Messages
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /messages/sent [get]
func (h *MessageHandler) Sent(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}
	messages, err := h.service.Sent(c.Request.Context(), caller.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, messages)
}

// Send godoc
// @Summary Send message
// @Tags Messages
// @Accept json
// @Produce json
// @Param payload body service.SendMessageRequest true "Message payload"
// @Success 201 {object} response.Envelope
// @Router /messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}
	var req service.SendMessageRequest
	if !bindJSON(c, &req, "invalid message payload") {
		return
	}
	message, err := h.service.Send(c.Request.Context(), caller.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, message)
}

// Reply godoc
// @Summary Reply to a received message
// @Tags Messages
// @Accept json
// @Produce json
// @Param id path string true "Message ID"
// @Param payload body service.ReplyRequest true "Reply payload"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /messages/{id}/reply [post]
func (h *MessageHandler) Reply(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}
	var req service.ReplyRequest
	if !bindJSON(c, &req, "invalid reply payload") {
		return
	}
	message, err := h.service.Reply(c.Request.Context(), caller.ID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, message)
}

// MarkRead godoc
// @Summary Mark message read
// @Tags Messages
// @Param id path string true "Message ID"
// @Success 204
// @Router /messages/{id}/read [post]
func (h *MessageHandler) MarkRead(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}
	if err := h.service.MarkMessageRead(c.Request.Context(), caller.ID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Notifications godoc
// @Summary Caller's notifications, newest first
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /notifications [get]
func (h *MessageHandler) Notifications(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}
	notifications, err := h.service.Notifications(c.Request.Context(), caller.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, notifications)
}

// Notify godoc
// @Summary Create notification
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body service.CreateNotificationRequest true "Notification payload"
// @Success 201 {object} response.Envelope
// @Router /notifications [post]
func (h *MessageHandler) Notify(c *gin.Context) {
	var req service.CreateNotificationRequest
	if !bindJSON(c, &req, "invalid notification payload") {
		return
	}
	notification, err := h.service.Notify(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, notification)
}

// MarkNotificationRead godoc
// @Summary Mark notification read
// @Tags Notifications
// @Param id path string true "Notification ID"
// @Success 204
// @Router /notifications/{id}/read [post]
func (h *MessageHandler) MarkNotificationRead(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		return
	}
	if err := h.service.MarkNotificationRead(c.Request.Context(), caller.ID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
