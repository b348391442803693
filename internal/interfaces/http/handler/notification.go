package handler

import (
	"github.com/gin-gonic/gin"
	notifyapp "github.com/niorc/backend/internal/application/notify"
)

// NotificationHandler handles notification and outbound message endpoints
type NotificationHandler struct {
	BaseHandler
	notificationService *notifyapp.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *notifyapp.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// SendMessageRequest is the body for sending an outbound message
type SendMessageRequest struct {
	To      string `json:"to" binding:"required,min=1,max=200"`
	Message string `json:"message" binding:"required,min=1,max=2000"`
}

// RegisterRoutes registers the notification endpoints
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.GET("/unread-count", h.UnreadCount)
		notifications.POST("/:id/read", h.MarkRead)
		notifications.DELETE("/:id", h.Delete)
	}
	rg.POST("/messages", h.SendMessage)
}

// List lists the vendor's notifications
func (h *NotificationHandler) List(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	filter, err := listFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.notificationService.List(c.Request.Context(), vendor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, result.Items, result.Total, result.Page, result.PageSize)
}

// UnreadCount returns the count of unread notifications
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}

	count, err := h.notificationService.UnreadCount(c.Request.Context(), vendor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"unread": count})
}

// MarkRead marks a notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	notification, err := h.notificationService.MarkRead(c.Request.Context(), vendor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, notification)
}

// Delete removes a notification
func (h *NotificationHandler) Delete(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.notificationService.Delete(c.Request.Context(), vendor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SendMessage delivers a message to a customer through the messaging gateway
func (h *NotificationHandler) SendMessage(c *gin.Context) {
	vendor, ok := vendorID(c)
	if !ok {
		h.Unauthorized(c, "Missing vendor identity")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.notificationService.SendMessage(c.Request.Context(), vendor, req.To, req.Message); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"sent": true})
}
