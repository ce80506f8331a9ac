package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"cinemarathi_backend/internal/middleware"
	"cinemarathi_backend/internal/repositories"
	"cinemarathi_backend/internal/services"
	"cinemarathi_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// RoleHandler answers with a status flag on every response, failures included.
type RoleHandler struct {
	*BaseHandler
	roleService services.RoleService
}

func NewRoleHandler(base *BaseHandler, roleService services.RoleService) *RoleHandler {
	return &RoleHandler{BaseHandler: base, roleService: roleService}
}

func (h *RoleHandler) RegisterRoutes(r *gin.RouterGroup) {
	roles := r.Group("/roles")
	roles.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		roles.GET("", h.List)
		roles.POST("", h.Create)
		roles.PUT("/assign", h.Assign)
		roles.PUT("/bulk-assign", h.BulkAssign)
		roles.GET("/:id", h.Get)
		roles.PUT("/:id", h.Update)
		roles.DELETE("/:id", h.Delete)
		roles.GET("/:id/users", h.Users)
	}
}

func (h *RoleHandler) List(c *gin.Context) {
	filter := repositories.RoleFilter{Search: c.Query("search")}
	if v := c.Query("is_active"); v != "" {
		active := v == "true" || v == "1"
		filter.IsActive = &active
	}

	roles, err := h.roleService.List(h.GetDB(c), filter)
	if err != nil {
		h.HandleStatusError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Roles fetched successfully",
		"roles":   roles,
		"total":   len(roles),
	})
}

func (h *RoleHandler) Get(c *gin.Context) {
	id, ok := h.roleID(c)
	if !ok {
		return
	}
	role, err := h.roleService.Get(h.GetDB(c), id)
	if err != nil {
		h.HandleStatusError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Role fetched successfully", "role": role})
}

func (h *RoleHandler) Create(c *gin.Context) {
	var req dto.CreateRoleRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	role, err := h.roleService.Create(h.GetDB(c), &req)
	if err != nil {
		h.HandleStatusError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": true, "message": "Role created successfully", "role": role})
}

func (h *RoleHandler) Update(c *gin.Context) {
	id, ok := h.roleID(c)
	if !ok {
		return
	}
	var req dto.UpdateRoleRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	role, err := h.roleService.Update(h.GetDB(c), id, &req)
	if err != nil {
		h.HandleStatusError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Role updated successfully", "role": role})
}

func (h *RoleHandler) Delete(c *gin.Context) {
	id, ok := h.roleID(c)
	if !ok {
		return
	}
	if err := h.roleService.Delete(h.GetDB(c), id); err != nil {
		h.HandleStatusError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Role deleted successfully"})
}

func (h *RoleHandler) Users(c *gin.Context) {
	id, ok := h.roleID(c)
	if !ok {
		return
	}
	db := h.GetDB(c)

	role, err := h.roleService.Get(db, id)
	if err != nil {
		h.HandleStatusError(c, err)
		return
	}

	page, limit := ParsePagination(c, 20)
	users, pagination, err := h.roleService.Users(db, id, page, limit)
	if err != nil {
		h.HandleStatusError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     true,
		"message":    "Users fetched successfully",
		"role":       gin.H{"id": role.ID, "name": role.Name},
		"users":      users,
		"pagination": pagination,
	})
}

func (h *RoleHandler) Assign(c *gin.Context) {
	var req dto.AssignRoleRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	if err := h.roleService.Assign(h.GetDB(c), &req); err != nil {
		h.HandleStatusError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Role assigned successfully",
		"user_id": req.UserID,
		"role_id": req.RoleID,
	})
}

func (h *RoleHandler) BulkAssign(c *gin.Context) {
	var req dto.BulkAssignRoleRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	affected, err := h.roleService.BulkAssign(h.GetDB(c), &req)
	if err != nil {
		h.HandleStatusError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        true,
		"message":       fmt.Sprintf("Role assigned to %d user(s) successfully", affected),
		"affected_rows": affected,
		"role_id":       req.RoleID,
	})
}

func (h *RoleHandler) roleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "error": "Invalid role id"})
		return 0, false
	}
	return id, true
}
