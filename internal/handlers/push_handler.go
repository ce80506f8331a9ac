package handlers

import (
	"net/http"

	"cinemarathi_backend/internal/middleware"
	"cinemarathi_backend/internal/push"
	"cinemarathi_backend/internal/services"
	"cinemarathi_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PushHandler struct {
	*BaseHandler
	pushService services.PushService
}

func NewPushHandler(base *BaseHandler, pushService services.PushService) *PushHandler {
	return &PushHandler{BaseHandler: base, pushService: pushService}
}

func (h *PushHandler) RegisterRoutes(r *gin.RouterGroup) {
	fcm := r.Group("/fcm")
	fcm.Use(middleware.AuthMiddleware())
	{
		fcm.POST("/device/register", h.RegisterDevice)
		fcm.POST("/device/unregister", h.UnregisterDevice)
		fcm.GET("/device/tokens", h.DeviceToken)
		fcm.POST("/send/device", h.SendToDevice)

		admin := fcm.Group("")
		admin.Use(middleware.AdminMiddleware())
		admin.POST("/send/multiple", h.SendToDevices)
		admin.POST("/send/user", h.SendToUser)
		admin.POST("/send/topic", h.SendToTopic)
		admin.POST("/topic/subscribe", h.SubscribeToTopic)
		admin.POST("/topic/unsubscribe", h.UnsubscribeFromTopic)
	}
}

// --- Devices ---

func (h *PushHandler) RegisterDevice(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.RegisterDeviceRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	if err := h.pushService.RegisterDevice(h.GetDB(c), userID, req.DeviceToken); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Device token registered successfully",
		"token":   req.DeviceToken,
	})
}

func (h *PushHandler) UnregisterDevice(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	if err := h.pushService.UnregisterDevice(h.GetDB(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Device token unregistered successfully"})
}

func (h *PushHandler) DeviceToken(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	token, err := h.pushService.DeviceToken(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fcm_token": token})
}

// --- Sending ---

func (h *PushHandler) SendToDevice(c *gin.Context) {
	var req dto.SendToDeviceRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	id, err := h.pushService.SendToDevice(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	sent(c, "Notification sent successfully", id)
}

func (h *PushHandler) SendToDevices(c *gin.Context) {
	var req dto.SendToDevicesRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	res, err := h.pushService.SendToDevices(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Notifications sent",
		"successCount": res.SuccessCount,
		"failureCount": res.FailureCount,
		"responses":    res.Responses,
	})
}

func (h *PushHandler) SendToUser(c *gin.Context) {
	var req dto.SendToUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	id, err := h.pushService.SendToUser(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	sent(c, "Notification sent to user successfully", id)
}

func (h *PushHandler) SendToTopic(c *gin.Context) {
	var req dto.SendToTopicRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	id, err := h.pushService.SendToTopic(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	sent(c, "Notification sent to topic successfully", id)
}

// --- Topics ---

func (h *PushHandler) SubscribeToTopic(c *gin.Context) {
	var req dto.TopicSubscriptionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	res, err := h.pushService.SubscribeToTopic(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	topicResult(c, "Subscribed to topic successfully", res)
}

func (h *PushHandler) UnsubscribeFromTopic(c *gin.Context) {
	var req dto.TopicSubscriptionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	res, err := h.pushService.UnsubscribeFromTopic(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	topicResult(c, "Unsubscribed from topic successfully", res)
}

func sent(c *gin.Context, message, messageID string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "messageId": messageID})
}

func topicResult(c *gin.Context, message string, res *push.TopicResult) {
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      message,
		"successCount": res.SuccessCount,
		"failureCount": res.FailureCount,
		"errors":       res.Errors,
	})
}
