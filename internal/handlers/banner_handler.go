package handlers

import (
	"net/http"

	"cinemarathi_backend/internal/middleware"
	"cinemarathi_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type BannerHandler struct {
	*BaseHandler
	bannerService services.BannerService
}

func NewBannerHandler(base *BaseHandler, bannerService services.BannerService) *BannerHandler {
	return &BannerHandler{BaseHandler: base, bannerService: bannerService}
}

func (h *BannerHandler) RegisterRoutes(r *gin.RouterGroup) {
	banners := r.Group("/admin/banners")
	banners.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		banners.GET("", h.List)
		banners.POST("", h.Upload)
		banners.PUT("/:filename", h.Replace)
		banners.DELETE("/:filename", h.Delete)
	}
}

func (h *BannerHandler) List(c *gin.Context) {
	banners, err := h.bannerService.List(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Banners retrieved successfully",
		"banners": banners,
		"count":   len(banners),
	})
}

func (h *BannerHandler) Upload(c *gin.Context) {
	file, err := h.FormFile(c, "file")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	banner, err := h.bannerService.Upload(c.Request.Context(), file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Banner uploaded successfully", "banner": banner})
}

func (h *BannerHandler) Replace(c *gin.Context) {
	file, err := h.FormFile(c, "file")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	banner, err := h.bannerService.Replace(c.Request.Context(), c.Param("filename"), file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Banner updated successfully", "banner": banner})
}

func (h *BannerHandler) Delete(c *gin.Context) {
	banner, err := h.bannerService.Delete(c.Request.Context(), c.Param("filename"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Banner deleted successfully",
		"deleted": gin.H{"key": banner.Key, "filename": banner.Filename},
	})
}
