package handlers

import (
	"net/http"

	"cinemarathi_backend/internal/middleware"
	"cinemarathi_backend/internal/services"
	"cinemarathi_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// SubscriptionHandler serves both the /premium and the /subscriptions groups.
// They share plans and subscriptions but answer with different shapes.
type SubscriptionHandler struct {
	*BaseHandler
	subscriptionService services.SubscriptionService
}

func NewSubscriptionHandler(base *BaseHandler, subscriptionService services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		BaseHandler:         base,
		subscriptionService: subscriptionService,
	}
}

func (h *SubscriptionHandler) RegisterRoutes(r *gin.RouterGroup) {
	premium := r.Group("/premium")
	premium.Use(middleware.AuthMiddleware())
	{
		premium.GET("/plans", h.PremiumPlans)
		premium.POST("/subscribe", h.PremiumSubscribe)
		premium.GET("/my-subscription", h.MySubscription)
	}

	subscriptions := r.Group("/subscriptions")
	{
		subscriptions.GET("/plans", h.Plans)

		protected := subscriptions.Group("")
		protected.Use(middleware.AuthMiddleware())
		protected.GET("/status", h.Status)
		protected.POST("/subscribe", h.Subscribe)
		protected.POST("/cancel", h.Cancel)
	}
}

// --- /premium ---

func (h *SubscriptionHandler) PremiumPlans(c *gin.Context) {
	plans, err := h.subscriptionService.Plans(h.GetDB(c), false)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *SubscriptionHandler) PremiumSubscribe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubscribeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	sub, _, err := h.subscriptionService.Subscribe(h.GetDB(c), userID, req.PlanID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Subscription created",
		"subscriptionId": sub.ID,
		"startDate":      sub.StartDate,
		"endDate":        sub.EndDate,
	})
}

func (h *SubscriptionHandler) MySubscription(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.Current(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// --- /subscriptions ---

func (h *SubscriptionHandler) Plans(c *gin.Context) {
	plans, err := h.subscriptionService.Plans(h.GetDB(c), true)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *SubscriptionHandler) Status(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	status, err := h.subscriptionService.Status(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if status == nil {
		c.JSON(http.StatusOK, gin.H{"message": "No active subscription", "isActive": false})
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubscribeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	sub, plan, err := h.subscriptionService.Subscribe(h.GetDB(c), userID, req.PlanID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "Subscription created",
		"subscription_id":  sub.ID,
		"plan":             plan,
		"subscription_end": sub.EndDate,
	})
}

func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.subscriptionService.Cancel(h.GetDB(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subscription cancelled"})
}
