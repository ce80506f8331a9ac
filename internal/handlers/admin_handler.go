package handlers

import (
	"net/http"

	"cinemarathi_backend/internal/middleware"
	"cinemarathi_backend/internal/services"
	"cinemarathi_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	adminService   services.AdminService
	accountService services.AccountService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService, accountService services.AccountService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:    base,
		adminService:   adminService,
		accountService: accountService,
	}
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/dashboard", h.Dashboard)

		users := admin.Group("/users")
		{
			users.GET("", h.ListUsers)
			users.PUT("/:id/verify", h.VerifyUser)
			users.PUT("/:id/suspend", h.SuspendUser)
			users.DELETE("/:id", h.DeleteUser)
			users.POST("/:id/assign-premium", h.AssignPremium)
			users.DELETE("/:id/remove-premium", h.RemovePremium)
		}

		calls := admin.Group("/casting-calls")
		{
			calls.GET("", h.ListCastingCalls)
			calls.GET("/:id/applications", h.CastingApplications)
			calls.PUT("/:id/approve", h.ApproveCastingCall)
			calls.PUT("/:id/reject", h.RejectCastingCall)
			calls.DELETE("/:id", h.DeleteCastingCall)
		}

		admin.GET("/news", h.ListNews)
		admin.POST("/news", h.CreateNews)
		admin.DELETE("/news/:id", h.DeleteNews)

		admin.GET("/featured-profiles", h.ListFeatured)
		admin.POST("/featured-profiles", h.CreateFeatured)

		subs := admin.Group("/subscriptions")
		{
			subs.GET("", h.ListSubscriptions)
			subs.POST("", h.CreateSubscription)
			subs.PUT("/:id", h.UpdateSubscription)
			subs.DELETE("/:id", h.DeleteSubscription)
		}
		admin.GET("/premium-users", h.PremiumUsers)

		admin.POST("/delete-account-request", h.RequestAccountDeletion)
		admin.GET("/delete-account-requests", h.ListDeletionRequests)
		admin.PUT("/delete-account-requests/:id", h.ProcessDeletionRequest)
	}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.adminService.Dashboard(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// --- Users ---

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers(h.GetDB(c), c.Query("user_type"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *AdminHandler) VerifyUser(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.VerifyUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.adminService.VerifyUser(h.GetDB(c), id, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User verification status updated"})
}

func (h *AdminHandler) SuspendUser(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.adminService.SuspendUser(h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User suspended"})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.adminService.DeleteUser(h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

func (h *AdminHandler) AssignPremium(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.AssignPremiumRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	sub, err := h.adminService.AssignPremium(h.GetDB(c), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":         "Premium access assigned successfully",
		"subscription_id": sub.ID,
	})
}

func (h *AdminHandler) RemovePremium(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.adminService.RemovePremium(h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Premium access removed successfully"})
}

// --- Casting calls ---

func (h *AdminHandler) ListCastingCalls(c *gin.Context) {
	calls, err := h.adminService.ListCastingCalls(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"casting_calls": calls})
}

func (h *AdminHandler) CastingApplications(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	apps, err := h.adminService.CastingApplications(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *AdminHandler) ApproveCastingCall(c *gin.Context) {
	h.setApproval(c, true, "Casting call approved successfully")
}

func (h *AdminHandler) RejectCastingCall(c *gin.Context) {
	h.setApproval(c, false, "Casting call rejected successfully")
}

func (h *AdminHandler) setApproval(c *gin.Context, approved bool, message string) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.adminService.SetCastingApproval(h.GetDB(c), id, approved); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *AdminHandler) DeleteCastingCall(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.adminService.DeleteCastingCall(h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Casting call deleted"})
}

// --- Content ---

func (h *AdminHandler) ListNews(c *gin.Context) {
	news, err := h.adminService.ListNews(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, news)
}

func (h *AdminHandler) CreateNews(c *gin.Context) {
	var req dto.CreateNewsRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	news, err := h.adminService.CreateNews(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "News created", "newsId": news.ID})
}

func (h *AdminHandler) DeleteNews(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.adminService.DeleteNews(h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "News deleted"})
}

func (h *AdminHandler) ListFeatured(c *gin.Context) {
	featured, err := h.adminService.ListFeatured(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, featured)
}

func (h *AdminHandler) CreateFeatured(c *gin.Context) {
	var req dto.CreateFeaturedRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	featured, err := h.adminService.CreateFeatured(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Profile featured", "featuredId": featured.ID})
}

// --- Subscriptions ---

func (h *AdminHandler) ListSubscriptions(c *gin.Context) {
	subs, err := h.adminService.ListSubscriptions(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscriptions": subs})
}

func (h *AdminHandler) CreateSubscription(c *gin.Context) {
	var req dto.CreateSubscriptionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	sub, err := h.adminService.CreateSubscription(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Subscription created successfully", "id": sub.ID})
}

func (h *AdminHandler) UpdateSubscription(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateSubscriptionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	if err := h.adminService.UpdateSubscription(h.GetDB(c), id, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subscription updated successfully"})
}

func (h *AdminHandler) DeleteSubscription(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.adminService.DeleteSubscription(h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subscription deleted successfully"})
}

func (h *AdminHandler) PremiumUsers(c *gin.Context) {
	users, err := h.adminService.PremiumUsers(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"premium_users": users})
}

// --- Account deletion ---

func (h *AdminHandler) RequestAccountDeletion(c *gin.Context) {
	var req dto.DeleteAccountRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	request, err := h.accountService.RequestDeletion(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Delete account request submitted successfully",
		"request_id": request.ID,
		"status":     request.Status,
	})
}

func (h *AdminHandler) ListDeletionRequests(c *gin.Context) {
	requests, err := h.accountService.ListDeletionRequests(h.GetDB(c), c.Query("status"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests, "total": len(requests)})
}

func (h *AdminHandler) ProcessDeletionRequest(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.ProcessDeleteRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	request, err := h.accountService.ProcessDeletionRequest(c.Request.Context(), h.GetDB(c), adminID, id, req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Delete account request " + string(request.Status),
		"request": request,
	})
}
