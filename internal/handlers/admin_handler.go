package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Avinash9006/InfinityPower/internal/middleware"
	"github.com/Avinash9006/InfinityPower/internal/models"
	"github.com/Avinash9006/InfinityPower/internal/services"
)

// AdminHandler exposes tenant-admin user management.
type AdminHandler struct {
	users *services.UserService
}

func NewAdminHandler(users *services.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

// ListUsers handles GET /admin/users — every user in the caller's tenant
// except the caller themselves.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	tenantID, _ := middleware.GetTenantID(c)
	callerID, _ := middleware.GetUserID(c)

	result, err := h.users.ListUsers(c.Request.Context(), tenantID, callerID, bindPagination(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "users retrieved", gin.H{
		"users": result.Items,
		"total": result.Total,
		"page":  result.Page,
		"limit": result.Limit,
	})
}

// AssignRole handles POST /admin/users/:id/assign-role. Approves a pending
// user and sets their role in a single transition.
func (h *AdminHandler) AssignRole(c *gin.Context) {
	var req models.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "role is required", err)
		return
	}

	tenantID, _ := middleware.GetTenantID(c)

	if err := h.users.ApproveAndAssignRole(c.Request.Context(), tenantID, c.Param("id"), req.Role); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "role assigned", nil)
}

// DeleteUser handles DELETE /admin/users/:id.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	tenantID, _ := middleware.GetTenantID(c)

	if err := h.users.DeleteUser(c.Request.Context(), tenantID, c.Param("id")); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "user deleted", nil)
}

// InviteLink handles GET /admin/invite-link — mints a fresh single-use
// registration link for the caller's tenant.
func (h *AdminHandler) InviteLink(c *gin.Context) {
	tenantID, _ := middleware.GetTenantID(c)
	callerID, _ := middleware.GetUserID(c)

	link, err := h.users.GenerateInviteLink(c.Request.Context(), tenantID, callerID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "invite link generated", gin.H{"invite_link": link})
}
