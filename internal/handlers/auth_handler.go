package handlers

import (
	"net/http"

	"cinemarathi_backend/internal/middleware"
	"cinemarathi_backend/internal/services"
	"cinemarathi_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService    services.AuthService
	accountService services.AccountService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, accountService services.AccountService) *AuthHandler {
	return &AuthHandler{
		BaseHandler:    base,
		authService:    authService,
		accountService: accountService,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/delete-account-request", h.RequestAccountDeletion)
		authGroup.POST("/change-password", middleware.AuthMiddleware(), h.ChangePassword)
	}

	adminAuth := r.Group("/admin-auth")
	{
		adminAuth.POST("/login", h.AdminLogin)
		adminAuth.POST("/logout", h.AdminLogout)

		verify := adminAuth.Group("/verify", middleware.AuthMiddleware(), middleware.AdminMiddleware())
		verify.GET("", h.AdminVerify)
		verify.POST("", h.AdminVerify)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	res, err := h.authService.Register(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"userId":  res.UserID,
		"token":   res.Token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	res, err := h.authService.Login(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"userId":  res.UserID,
		"token":   res.Token,
		"user":    res.User,
	})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(h.GetDB(c), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// RequestAccountDeletion is public: the requester proves ownership with
// email and password.
func (h *AuthHandler) RequestAccountDeletion(c *gin.Context) {
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

// --- Admin auth ---

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	res, err := h.authService.AdminLogin(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   res.Token,
		"user":    res.User,
	})
}

func (h *AuthHandler) AdminVerify(c *gin.Context) {
	claims := middleware.GetClaims(c)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":    claims.UserID,
			"email": claims.Email,
			"name":  claims.Name,
			"role":  claims.Role,
		},
	})
}

// AdminLogout only acknowledges; tokens are stateless.
func (h *AuthHandler) AdminLogout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}
