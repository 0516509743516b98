package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Avinash9006/InfinityPower/internal/metrics"
	"github.com/Avinash9006/InfinityPower/internal/middleware"
	"github.com/Avinash9006/InfinityPower/internal/models"
	"github.com/Avinash9006/InfinityPower/internal/services"
)

// VideoHandler exposes the video lifecycle: upload, external link,
// tenant-scoped reads with signed URLs, partial update and delete.
type VideoHandler struct {
	media   *services.MediaService
	metrics *metrics.Metrics
}

func NewVideoHandler(media *services.MediaService, m *metrics.Metrics) *VideoHandler {
	return &VideoHandler{media: media, metrics: m}
}

// Upload handles POST /videos/upload (multipart, field "video",
// optional field "thumbnail").
func (h *VideoHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("video")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "video file is required", err)
		return
	}
	upload, file, err := openUpload(fh)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "could not read video file", err)
		return
	}
	defer file.Close()

	var thumbnail *services.FileUpload
	if thumbFh, thumbErr := c.FormFile("thumbnail"); thumbErr == nil {
		thumbUpload, thumbFile, openErr := openUpload(thumbFh)
		if openErr != nil {
			ErrorResponse(c, http.StatusBadRequest, "could not read thumbnail file", openErr)
			return
		}
		defer thumbFile.Close()
		thumbnail = thumbUpload
	}

	meta := services.VideoMeta{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		CourseID:    c.PostForm("courseId"),
		ChapterID:   c.PostForm("chapterId"),
		Level:       c.PostForm("level"),
		Language:    c.PostForm("language"),
	}

	tenantID, _ := middleware.GetTenantID(c)
	userID, _ := middleware.GetUserID(c)

	video, err := h.media.UploadVideo(c.Request.Context(), tenantID, userID, upload, meta, thumbnail)
	if err != nil {
		h.metrics.MediaUploadsTotal.WithLabelValues("video", "error").Inc()
		HandleServiceError(c, err)
		return
	}
	h.metrics.MediaUploadsTotal.WithLabelValues("video", "success").Inc()
	SuccessResponse(c, http.StatusCreated, "video uploaded", gin.H{"video": video})
}

// AddLink handles POST /videos/link.
func (h *VideoHandler) AddLink(c *gin.Context) {
	var req models.AddVideoLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "title and url are required", err)
		return
	}

	tenantID, _ := middleware.GetTenantID(c)
	userID, _ := middleware.GetUserID(c)

	video, err := h.media.AddVideoLink(c.Request.Context(), tenantID, userID, &req)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "video link added", gin.H{"video": video})
}

// List handles GET /videos — standalone videos only.
func (h *VideoHandler) List(c *gin.Context) {
	tenantID, _ := middleware.GetTenantID(c)

	result, err := h.media.ListVideos(c.Request.Context(), tenantID, bindPagination(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "videos retrieved", gin.H{
		"videos": result.Items,
		"total":  result.Total,
		"page":   result.Page,
		"limit":  result.Limit,
	})
}

// ListByChapter handles GET /videos/chapter/:chapterId.
func (h *VideoHandler) ListByChapter(c *gin.Context) {
	chapterID, ok := parseIDParam(c, "chapterId")
	if !ok {
		return
	}
	tenantID, _ := middleware.GetTenantID(c)

	result, err := h.media.ListChapterVideos(c.Request.Context(), tenantID, chapterID, bindPagination(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "videos retrieved", gin.H{
		"videos": result.Items,
		"total":  result.Total,
		"page":   result.Page,
		"limit":  result.Limit,
	})
}

// Get handles GET /videos/:id.
func (h *VideoHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tenantID, _ := middleware.GetTenantID(c)

	video, err := h.media.GetVideo(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "video retrieved", gin.H{"video": video})
}

// Update handles PUT /videos/:id. Accepts either JSON fields or a
// multipart form with a replacement file.
func (h *VideoHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateVideoRequest
	var newFile *services.FileUpload

	if fh, err := c.FormFile("video"); err == nil {
		upload, file, openErr := openUpload(fh)
		if openErr != nil {
			ErrorResponse(c, http.StatusBadRequest, "could not read video file", openErr)
			return
		}
		defer file.Close()
		newFile = upload

		assignFormField(c, "title", &req.Title)
		assignFormField(c, "description", &req.Description)
		assignFormField(c, "chapterId", &req.ChapterID)
		assignFormField(c, "level", &req.Level)
		assignFormField(c, "language", &req.Language)
	} else if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	tenantID, _ := middleware.GetTenantID(c)
	video, err := h.media.UpdateVideo(c.Request.Context(), tenantID, id, &req, newFile)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "video updated", gin.H{"video": video})
}

// Delete handles DELETE /videos/:id.
func (h *VideoHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tenantID, _ := middleware.GetTenantID(c)

	if err := h.media.DeleteVideo(c.Request.Context(), tenantID, id); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "video deleted", nil)
}

// assignFormField sets target only when the form carries the key, so
// absent fields stay untouched in partial updates.
func assignFormField(c *gin.Context, key string, target **string) {
	if value, ok := c.GetPostForm(key); ok {
		*target = &value
	}
}
