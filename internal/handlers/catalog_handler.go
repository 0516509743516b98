package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Avinash9006/InfinityPower/internal/middleware"
	"github.com/Avinash9006/InfinityPower/internal/models"
	"github.com/Avinash9006/InfinityPower/internal/services"
)

// CatalogHandler exposes course, subject and chapter CRUD. Every
// operation runs inside the caller's tenant scope.
type CatalogHandler struct {
	catalog *services.CatalogService
}

func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// parseIDParam reads a uuid path parameter, writing a 400 on failure.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid "+name, err)
		return uuid.Nil, false
	}
	return id, true
}

func bindPagination(c *gin.Context) models.Pagination {
	var p models.Pagination
	_ = c.ShouldBindQuery(&p)
	p.Normalize()
	return p
}

func (h *CatalogHandler) CreateCourse(c *gin.Context) {
	var req models.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "title is required", err)
		return
	}

	tenantID, _ := middleware.GetTenantID(c)
	userID, _ := middleware.GetUserID(c)

	course, err := h.catalog.CreateCourse(c.Request.Context(), tenantID, userID, &req)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "course created", gin.H{"course": course})
}

func (h *CatalogHandler) ListCourses(c *gin.Context) {
	tenantID, _ := middleware.GetTenantID(c)
	result, err := h.catalog.ListCourses(c.Request.Context(), tenantID, bindPagination(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "courses retrieved", gin.H{
		"courses": result.Items,
		"total":   result.Total,
		"page":    result.Page,
		"limit":   result.Limit,
	})
}

func (h *CatalogHandler) GetCourse(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tenantID, _ := middleware.GetTenantID(c)

	course, err := h.catalog.GetCourse(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "course retrieved", gin.H{"course": course})
}

func (h *CatalogHandler) UpdateCourse(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	tenantID, _ := middleware.GetTenantID(c)
	course, err := h.catalog.UpdateCourse(c.Request.Context(), tenantID, id, &req)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "course updated", gin.H{"course": course})
}

func (h *CatalogHandler) DeleteCourse(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tenantID, _ := middleware.GetTenantID(c)

	if err := h.catalog.DeleteCourse(c.Request.Context(), tenantID, id); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "course deleted", nil)
}

func (h *CatalogHandler) CreateSubject(c *gin.Context) {
	var req models.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "courseId and title are required", err)
		return
	}
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid courseId", err)
		return
	}

	tenantID, _ := middleware.GetTenantID(c)
	subject, err := h.catalog.CreateSubject(c.Request.Context(), tenantID, courseID, &req)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "subject created", gin.H{"subject": subject})
}

func (h *CatalogHandler) ListSubjects(c *gin.Context) {
	courseID, ok := parseIDParam(c, "courseId")
	if !ok {
		return
	}
	tenantID, _ := middleware.GetTenantID(c)

	subjects, err := h.catalog.ListSubjects(c.Request.Context(), tenantID, courseID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "subjects retrieved", gin.H{"subjects": subjects})
}

func (h *CatalogHandler) GetSubject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tenantID, _ := middleware.GetTenantID(c)

	subject, err := h.catalog.GetSubject(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "subject retrieved", gin.H{"subject": subject})
}

func (h *CatalogHandler) UpdateSubject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	tenantID, _ := middleware.GetTenantID(c)
	subject, err := h.catalog.UpdateSubject(c.Request.Context(), tenantID, id, &req)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "subject updated", gin.H{"subject": subject})
}

func (h *CatalogHandler) DeleteSubject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tenantID, _ := middleware.GetTenantID(c)

	if err := h.catalog.DeleteSubject(c.Request.Context(), tenantID, id); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "subject deleted", nil)
}

func (h *CatalogHandler) CreateChapter(c *gin.Context) {
	var req models.CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "subjectId and title are required", err)
		return
	}
	subjectID, err := uuid.Parse(req.SubjectID)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid subjectId", err)
		return
	}

	tenantID, _ := middleware.GetTenantID(c)
	chapter, err := h.catalog.CreateChapter(c.Request.Context(), tenantID, subjectID, &req)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "chapter created", gin.H{"chapter": chapter})
}

func (h *CatalogHandler) ListChapters(c *gin.Context) {
	subjectID, ok := parseIDParam(c, "subjectId")
	if !ok {
		return
	}
	tenantID, _ := middleware.GetTenantID(c)

	chapters, err := h.catalog.ListChapters(c.Request.Context(), tenantID, subjectID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "chapters retrieved", gin.H{"chapters": chapters})
}

func (h *CatalogHandler) GetChapter(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tenantID, _ := middleware.GetTenantID(c)

	chapter, err := h.catalog.GetChapter(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "chapter retrieved", gin.H{"chapter": chapter})
}

func (h *CatalogHandler) UpdateChapter(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	tenantID, _ := middleware.GetTenantID(c)
	chapter, err := h.catalog.UpdateChapter(c.Request.Context(), tenantID, id, &req)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "chapter updated", gin.H{"chapter": chapter})
}

func (h *CatalogHandler) DeleteChapter(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tenantID, _ := middleware.GetTenantID(c)

	if err := h.catalog.DeleteChapter(c.Request.Context(), tenantID, id); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "chapter deleted", nil)
}
