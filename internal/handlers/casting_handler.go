package handlers

import (
	"net/http"

	"cinemarathi_backend/internal/auth"
	"cinemarathi_backend/internal/middleware"
	"cinemarathi_backend/internal/services"
	"cinemarathi_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CastingHandler struct {
	*BaseHandler
	castingService services.CastingService
}

func NewCastingHandler(base *BaseHandler, castingService services.CastingService) *CastingHandler {
	return &CastingHandler{
		BaseHandler:    base,
		castingService: castingService,
	}
}

func (h *CastingHandler) RegisterRoutes(r *gin.RouterGroup) {
	casting := r.Group("/casting")
	casting.Use(middleware.AuthMiddleware())
	{
		casting.POST("/calls",
			middleware.RequireRoles("Only production houses can create casting calls", auth.RoleProductionHouse),
			h.CreateCall)
		casting.GET("/calls", h.ListCalls)
		casting.GET("/calls/:id", h.GetCall)

		casting.POST("/apply", h.Apply)
		casting.GET("/applications/my", h.MyApplications)
		casting.PUT("/applications/:id/status", h.UpdateApplicationStatus)
	}
}

func (h *CastingHandler) CreateCall(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCastingCallRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	call, err := h.castingService.CreateCall(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Casting call created", "castingCallId": call.ID})
}

func (h *CastingHandler) ListCalls(c *gin.Context) {
	calls, err := h.castingService.ListCalls(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, calls)
}

func (h *CastingHandler) GetCall(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	call, err := h.castingService.GetCall(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, call)
}

func (h *CastingHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	app, err := h.castingService.Apply(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Application submitted", "applicationId": app.ID})
}

func (h *CastingHandler) MyApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	apps, err := h.castingService.MyApplications(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *CastingHandler) UpdateApplicationStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	appID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.castingService.UpdateApplicationStatus(c.Request.Context(), h.GetDB(c), userID, appID, req.Status); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application status updated"})
}
