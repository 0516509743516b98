package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Avinash9006/InfinityPower/internal/middleware"
	"github.com/Avinash9006/InfinityPower/internal/models"
	"github.com/Avinash9006/InfinityPower/internal/services"
)

// TenantHandler exposes tenant registration, platform-admin reads and
// invite dispatch.
type TenantHandler struct {
	tenants *services.TenantService
}

func NewTenantHandler(tenants *services.TenantService) *TenantHandler {
	return &TenantHandler{tenants: tenants}
}

// CreateTenant handles POST /tenants. Multipart so an optional logo can
// accompany the registration fields.
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	var req models.CreateTenantRequest
	if err := c.ShouldBind(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "name, companyName, email and password are required", err)
		return
	}

	var logo *services.FileUpload
	if fh, err := c.FormFile("logo"); err == nil {
		upload, file, openErr := openUpload(fh)
		if openErr != nil {
			ErrorResponse(c, http.StatusBadRequest, "could not read logo file", openErr)
			return
		}
		defer file.Close()
		logo = upload
	}

	resp, err := h.tenants.CreateTenant(c.Request.Context(), &req, logo)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "tenant created successfully", gin.H{
		"tenant":     resp.Tenant,
		"admin_user": resp.Admin,
	})
}

// ListTenants handles GET /tenants (platform admin).
func (h *TenantHandler) ListTenants(c *gin.Context) {
	tenants, err := h.tenants.ListTenants(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "tenants retrieved", gin.H{"tenants": tenants})
}

// GetTenant handles GET /tenants/:id (platform admin).
func (h *TenantHandler) GetTenant(c *gin.Context) {
	tenant, err := h.tenants.GetTenant(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "tenant retrieved", gin.H{"tenant": tenant})
}

// SendInvite handles POST /tenants/invite (tenant admin).
func (h *TenantHandler) SendInvite(c *gin.Context) {
	var req models.SendInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "email is required", err)
		return
	}

	tenantID, _ := middleware.GetTenantID(c)
	userID, _ := middleware.GetUserID(c)

	link, err := h.tenants.SendInvite(c.Request.Context(), tenantID, userID, req.Email)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "invite sent", gin.H{"invite_link": link})
}
