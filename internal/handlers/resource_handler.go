package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Avinash9006/InfinityPower/internal/metrics"
	"github.com/Avinash9006/InfinityPower/internal/middleware"
	"github.com/Avinash9006/InfinityPower/internal/models"
	"github.com/Avinash9006/InfinityPower/internal/services"
)

// ResourceHandler mirrors the video lifecycle for notes, DPPs and other
// attachments.
type ResourceHandler struct {
	media   *services.MediaService
	metrics *metrics.Metrics
}

func NewResourceHandler(media *services.MediaService, m *metrics.Metrics) *ResourceHandler {
	return &ResourceHandler{media: media, metrics: m}
}

// Upload handles POST /resources/upload (multipart, field "file").
func (h *ResourceHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "file is required", err)
		return
	}
	upload, file, err := openUpload(fh)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "could not read file", err)
		return
	}
	defer file.Close()

	meta := services.ResourceMeta{
		Title:     c.PostForm("title"),
		Category:  c.PostForm("category"),
		CourseID:  c.PostForm("courseId"),
		ChapterID: c.PostForm("chapterId"),
	}

	tenantID, _ := middleware.GetTenantID(c)
	userID, _ := middleware.GetUserID(c)

	resource, err := h.media.UploadResource(c.Request.Context(), tenantID, userID, upload, meta)
	if err != nil {
		h.metrics.MediaUploadsTotal.WithLabelValues("resource", "error").Inc()
		HandleServiceError(c, err)
		return
	}
	h.metrics.MediaUploadsTotal.WithLabelValues("resource", "success").Inc()
	SuccessResponse(c, http.StatusCreated, "resource uploaded", gin.H{"resource": resource})
}

// AddLink handles POST /resources/link.
func (h *ResourceHandler) AddLink(c *gin.Context) {
	var req models.AddResourceLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "title and url are required", err)
		return
	}

	tenantID, _ := middleware.GetTenantID(c)
	userID, _ := middleware.GetUserID(c)

	resource, err := h.media.AddResourceLink(c.Request.Context(), tenantID, userID, &req)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "resource link added", gin.H{"resource": resource})
}

// List handles GET /resources — standalone resources only.
func (h *ResourceHandler) List(c *gin.Context) {
	tenantID, _ := middleware.GetTenantID(c)

	result, err := h.media.ListResources(c.Request.Context(), tenantID, bindPagination(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "resources retrieved", gin.H{
		"resources": result.Items,
		"total":     result.Total,
		"page":      result.Page,
		"limit":     result.Limit,
	})
}

// ListByChapter handles GET /resources/chapter/:chapterId.
func (h *ResourceHandler) ListByChapter(c *gin.Context) {
	chapterID, ok := parseIDParam(c, "chapterId")
	if !ok {
		return
	}
	tenantID, _ := middleware.GetTenantID(c)

	result, err := h.media.ListChapterResources(c.Request.Context(), tenantID, chapterID, bindPagination(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "resources retrieved", gin.H{
		"resources": result.Items,
		"total":     result.Total,
		"page":      result.Page,
		"limit":     result.Limit,
	})
}

// Get handles GET /resources/:id.
func (h *ResourceHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tenantID, _ := middleware.GetTenantID(c)

	resource, err := h.media.GetResource(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "resource retrieved", gin.H{"resource": resource})
}

// Delete handles DELETE /resources/:id.
func (h *ResourceHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tenantID, _ := middleware.GetTenantID(c)

	if err := h.media.DeleteResource(c.Request.Context(), tenantID, id); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "resource deleted", nil)
}
