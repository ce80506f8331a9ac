package handlers

import (
	"net/http"

	"cinemarathi_backend/internal/middleware"
	"cinemarathi_backend/internal/repositories"
	"cinemarathi_backend/internal/services"
	"cinemarathi_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type TechnicianHandler struct {
	*BaseHandler
	technicianService services.TechnicianService
}

func NewTechnicianHandler(base *BaseHandler, technicianService services.TechnicianService) *TechnicianHandler {
	return &TechnicianHandler{BaseHandler: base, technicianService: technicianService}
}

func (h *TechnicianHandler) RegisterRoutes(r *gin.RouterGroup) {
	technicians := r.Group("/technicians")
	technicians.Use(middleware.AuthMiddleware())
	{
		technicians.GET("/all", h.List)
		technicians.GET("/:id", h.Get)
		technicians.PUT("/:id", h.Update)
	}
}

func (h *TechnicianHandler) List(c *gin.Context) {
	page, limit := ParsePagination(c, 10)
	filter := repositories.TechnicianFilter{
		Specialization: c.Query("specialization"),
		Location:       c.Query("location"),
		Page:           page,
		Limit:          limit,
	}
	if c.Query("experience_min") != "" {
		min := ParseQueryInt(c, "experience_min", 0)
		filter.ExperienceMin = &min
	}

	list, err := h.technicianService.List(h.GetDB(c), filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *TechnicianHandler) Get(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	tech, err := h.technicianService.Get(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tech)
}

func (h *TechnicianHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTechnicianRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.technicianService.Update(h.GetDB(c), userID, middleware.GetRole(c), id, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Technician profile updated"})
}
