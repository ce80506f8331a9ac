package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"cinemarathi_backend/internal/middleware"
	"cinemarathi_backend/internal/services"
	"cinemarathi_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	*BaseHandler
	portfolioService services.PortfolioService
}

func NewPortfolioHandler(base *BaseHandler, portfolioService services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{BaseHandler: base, portfolioService: portfolioService}
}

func (h *PortfolioHandler) RegisterRoutes(r *gin.RouterGroup) {
	portfolio := r.Group("/portfolio")
	portfolio.Use(middleware.AuthMiddleware())
	{
		// Image gallery stored on users.portfolio_images
		portfolio.POST("/image", h.UploadImage)
		portfolio.POST("/images", h.UploadImages)
		portfolio.GET("/images", h.MyImages)
		portfolio.GET("/images/user/:user_id", h.UserImages)
		portfolio.PUT("/images/:index", h.ReplaceImage)
		portfolio.DELETE("/images/:index", h.DeleteImage)
		portfolio.DELETE("/images", h.ClearImages)

		// Legacy portfolio_items
		portfolio.GET("/user/:user_id", h.UserItems)
		portfolio.POST("", h.CreateItem)
		portfolio.PUT("/:id", h.UpdateItem)
		portfolio.DELETE("/:id", h.DeleteItem)
	}
}

func (h *PortfolioHandler) UploadImage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	file, err := h.FormFile(c, "file")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	image, all, err := h.portfolioService.AddImage(c.Request.Context(), h.GetDB(c), userID, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       1,
		"message":      "Portfolio image uploaded successfully",
		"image":        image,
		"total_images": len(all),
		"portfolio":    all,
	})
}

func (h *PortfolioHandler) UploadImages(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	files, err := h.FormFiles(c, "files")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	uploaded, all, err := h.portfolioService.AddImages(c.Request.Context(), h.GetDB(c), userID, files)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      fmt.Sprintf("%d portfolio image(s) uploaded successfully", len(uploaded)),
		"uploaded":     uploaded,
		"total_images": len(all),
		"portfolio":    all,
	})
}

func (h *PortfolioHandler) MyImages(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	images, err := h.portfolioService.Images(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "portfolio": images, "total": len(images)})
}

func (h *PortfolioHandler) UserImages(c *gin.Context) {
	userID, ok := h.ParamID(c, "user_id")
	if !ok {
		return
	}
	images, err := h.portfolioService.Images(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    1,
		"user_id":   userID,
		"portfolio": images,
		"total":     len(images),
	})
}

func (h *PortfolioHandler) ReplaceImage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	file, err := h.FormFile(c, "file")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	index := imageIndex(c)

	image, all, err := h.portfolioService.ReplaceImage(c.Request.Context(), h.GetDB(c), userID, index, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   fmt.Sprintf("Portfolio image at index %d updated successfully", index),
		"index":     image.Index,
		"url":       image.URL,
		"key":       image.Key,
		"portfolio": all,
	})
}

func (h *PortfolioHandler) DeleteImage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	index := imageIndex(c)

	all, err := h.portfolioService.DeleteImage(h.GetDB(c), userID, index)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   fmt.Sprintf("Portfolio image at index %d deleted successfully", index),
		"portfolio": all,
		"total":     len(all),
	})
}

func (h *PortfolioHandler) ClearImages(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	if err := h.portfolioService.ClearImages(h.GetDB(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "All portfolio images cleared successfully",
		"portfolio": []string{},
	})
}

// --- Items ---

func (h *PortfolioHandler) UserItems(c *gin.Context) {
	userID, ok := h.ParamID(c, "user_id")
	if !ok {
		return
	}
	items, err := h.portfolioService.Items(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *PortfolioHandler) CreateItem(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	var req dto.PortfolioItemRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	item, err := h.portfolioService.CreateItem(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Portfolio item added", "id": item.ID})
}

func (h *PortfolioHandler) UpdateItem(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.PortfolioItemRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	if err := h.portfolioService.UpdateItem(h.GetDB(c), userID, id, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Portfolio item updated"})
}

func (h *PortfolioHandler) DeleteItem(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.portfolioService.DeleteItem(h.GetDB(c), userID, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Portfolio item deleted"})
}

// imageIndex yields 0 for anything non-numeric; the service rejects it.
func imageIndex(c *gin.Context) int {
	n, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0
	}
	return n
}
