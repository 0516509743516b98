package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Avinash9006/InfinityPower/internal/middleware"
	"github.com/Avinash9006/InfinityPower/internal/models"
	"github.com/Avinash9006/InfinityPower/internal/services"
)

// UserHandler serves the authenticated user's own profile.
type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GetProfile handles GET /users/me.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	user, err := h.users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "profile retrieved", gin.H{"user": user})
}

// UpdateProfile handles PUT /users/me. Accepts either a JSON body or a
// multipart form with an optional "profileImage" file.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	var image *services.FileUpload

	if fh, err := c.FormFile("profileImage"); err == nil {
		upload, file, err := openUpload(fh)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "could not read profile image", err)
			return
		}
		defer file.Close()
		image = upload

		assignFormField(c, "name", &req.Name)
		assignFormField(c, "email", &req.Email)
		assignFormField(c, "password", &req.Password)
		assignFormField(c, "designation", &req.Designation)
	} else if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	userID, _ := middleware.GetUserID(c)

	user, err := h.users.UpdateProfile(c.Request.Context(), userID, &req, image)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "profile updated", gin.H{"user": user})
}
