package handlers

import (
	"net/http"

	"cinemarathi_backend/internal/middleware"
	"cinemarathi_backend/internal/services"
	"cinemarathi_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")

	// Public directory
	{
		users.GET("/actors/:id", h.GetActor)
		users.GET("/actors", h.ListActors)
		users.GET("/talents", h.SearchTalents)
		users.POST("/talents", h.SearchTalents)
		users.GET("/talent/categories", h.TalentCategories)
	}

	protected := users.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/profile", h.GetProfile)
		protected.PUT("/profile", h.UpdateProfile)
		protected.GET("/profile/stats", h.GetStats)
		protected.GET("/profile/portfolio", h.GetPortfolio)
		protected.GET("/profile/full", h.GetFullProfile)
		protected.GET("/plan", h.GetPlan)
		protected.PUT("/actors/profile", h.UpdateActor)
		protected.GET("/dashboard", h.Dashboard)
	}
}

// --- Profile ---

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleStatusError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Profile fetched successfully",
		"profile": profile,
	})
}

func (h *UserHandler) GetStats(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	stats, err := h.userService.GetStats(h.GetDB(c), userID)
	if err != nil {
		h.HandleStatusError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "stats": stats})
}

func (h *UserHandler) GetPortfolio(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	portfolio, err := h.userService.GetPortfolio(h.GetDB(c), userID)
	if err != nil {
		h.HandleStatusError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "portfolio": portfolio})
}

func (h *UserHandler) GetPlan(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "plan": h.userService.GetPlan(h.GetDB(c), userID)})
}

func (h *UserHandler) GetFullProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	full, err := h.userService.GetFullProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleStatusError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    true,
		"profile":   full.Profile,
		"stats":     full.Stats,
		"portfolio": full.Portfolio,
		"plan":      full.Plan,
	})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.userService.UpdateProfile(h.GetDB(c), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// --- Actors ---

func (h *UserHandler) GetActor(c *gin.Context) {
	id, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	actor, err := h.userService.GetActor(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, actor)
}

func (h *UserHandler) UpdateActor(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateActorRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.userService.UpdateActor(h.GetDB(c), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Actor profile updated"})
}

func (h *UserHandler) ListActors(c *gin.Context) {
	actors, err := h.userService.ListActors(h.GetDB(c), c.Query("category"), c.Query("gender"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, actors)
}

// --- Talents ---

// SearchTalents reads filters from the query on GET and from the body on POST.
func (h *UserHandler) SearchTalents(c *gin.Context) {
	var req dto.TalentSearchRequest
	if c.Request.Method == http.MethodPost {
		if !h.BindAndValidateJSON(c, &req) {
			return
		}
	} else if !h.BindAndValidateQuery(c, &req) {
		return
	}

	list, err := h.userService.SearchTalents(h.GetDB(c), &req)
	if err != nil {
		h.HandleStatusError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Talents fetched successfully",
		"filters": list.Filters,
		"talents": list.Talents,
	})
}

func (h *UserHandler) TalentCategories(c *gin.Context) {
	categories, err := h.userService.TalentCategories(h.GetDB(c))
	if err != nil {
		h.HandleStatusError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "categories": categories})
}

func (h *UserHandler) Dashboard(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	dash, err := h.userService.Dashboard(h.GetDB(c), userID)
	if err != nil {
		h.HandleStatusError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           1,
		"message":          "Dashboard fetched successfully",
		"plan":             dash.Plan,
		"stats":            dash.Stats,
		"featured_talents": dash.FeaturedTalents,
		"trending_jobs":    dash.TrendingJobs,
	})
}
