package handlers

import (
	"net/http"

	"cinemarathi_backend/internal/middleware"
	"cinemarathi_backend/internal/services"
	"cinemarathi_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	*BaseHandler
	searchService services.SearchService
}

func NewSearchHandler(base *BaseHandler, searchService services.SearchService) *SearchHandler {
	return &SearchHandler{BaseHandler: base, searchService: searchService}
}

func (h *SearchHandler) RegisterRoutes(r *gin.RouterGroup) {
	search := r.Group("/search")
	search.Use(middleware.AuthMiddleware())
	{
		search.GET("/casting-calls", h.CastingCalls)
		search.GET("/profiles", h.Profiles)
		search.GET("/trending", h.Trending)
	}
}

func (h *SearchHandler) CastingCalls(c *gin.Context) {
	var req dto.CastingSearchRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}
	req.Page, req.Limit = ParsePagination(c, 10)

	result, err := h.searchService.CastingCalls(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *SearchHandler) Profiles(c *gin.Context) {
	var req dto.ProfileSearchRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}
	req.Page, req.Limit = ParsePagination(c, 10)

	result, err := h.searchService.Profiles(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *SearchHandler) Trending(c *gin.Context) {
	trending, err := h.searchService.Trending(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, trending)
}
