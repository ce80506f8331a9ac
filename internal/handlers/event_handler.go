package handlers

import (
	"net/http"

	"cinemarathi_backend/internal/middleware"
	"cinemarathi_backend/internal/repositories"
	"cinemarathi_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	*BaseHandler
	eventService services.EventService
}

func NewEventHandler(base *BaseHandler, eventService services.EventService) *EventHandler {
	return &EventHandler{BaseHandler: base, eventService: eventService}
}

func (h *EventHandler) RegisterRoutes(r *gin.RouterGroup) {
	events := r.Group("/events")
	events.Use(middleware.AuthMiddleware())
	{
		events.GET("/upcoming", h.Upcoming)
		events.GET("/:id", h.Get)
		events.POST("/:id/register", h.Register)
		events.POST("/:id/unregister", h.Unregister)
	}
}

func (h *EventHandler) Upcoming(c *gin.Context) {
	page, limit := ParsePagination(c, 10)
	list, err := h.eventService.Upcoming(h.GetDB(c), repositories.EventFilter{
		Location: c.Query("location"),
		Type:     c.Query("type"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *EventHandler) Get(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	event, err := h.eventService.Get(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Register(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	reg, err := h.eventService.Register(h.GetDB(c), id, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Registered for event", "registration_id": reg.ID})
}

func (h *EventHandler) Unregister(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.eventService.Unregister(h.GetDB(c), id, userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unregistered from event"})
}
