package handlers

import (
	"net/http"

	"cinemarathi_backend/internal/middleware"
	"cinemarathi_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	*BaseHandler
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(base *BaseHandler, analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{BaseHandler: base, analyticsService: analyticsService}
}

// RegisterRoutes mounts /admin/analytics. Revenue and active users are also
// reachable under the older /analytics/* paths.
func (h *AnalyticsHandler) RegisterRoutes(r *gin.RouterGroup) {
	analytics := r.Group("/admin/analytics")
	analytics.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		analytics.GET("/stats", h.Stats)
		analytics.GET("/trends/registrations", h.RegistrationTrends)
		analytics.GET("/revenue", h.Revenue)
		analytics.GET("/analytics/revenue", h.Revenue)
		analytics.GET("/active-users", h.ActiveUsers)
		analytics.GET("/analytics/active-users", h.ActiveUsers)
		analytics.GET("/overview", h.Overview)
	}
}

func (h *AnalyticsHandler) Stats(c *gin.Context) {
	stats, err := h.analyticsService.Stats(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AnalyticsHandler) RegistrationTrends(c *gin.Context) {
	trends, err := h.analyticsService.RegistrationTrends(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, trends)
}

func (h *AnalyticsHandler) Revenue(c *gin.Context) {
	revenue, err := h.analyticsService.Revenue(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, revenue)
}

func (h *AnalyticsHandler) ActiveUsers(c *gin.Context) {
	users, err := h.analyticsService.ActiveUsers(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AnalyticsHandler) Overview(c *gin.Context) {
	overview, err := h.analyticsService.Overview(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}
