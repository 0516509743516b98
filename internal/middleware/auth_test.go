package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avinash9006/InfinityPower/internal/models"
	"github.com/Avinash9006/InfinityPower/internal/repository"
	"github.com/Avinash9006/InfinityPower/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUserResolver struct {
	user *models.User
	err  error
}

func (s *stubUserResolver) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func authTestRouter(jwt *services.JWTService, resolver UserResolver) *gin.Engine {
	router := gin.New()
	router.GET("/protected", AuthRequired(jwt, resolver), func(c *gin.Context) {
		tenantID, _ := GetTenantID(c)
		c.JSON(http.StatusOK, gin.H{"tenant_id": tenantID.String(), "role": GetUserRole(c)})
	})
	return router
}

func TestAuthRequired(t *testing.T) {
	jwtSvc := services.NewJWTService("test-secret", time.Hour)
	tenantID := uuid.New()
	user := &models.User{
		ID:       uuid.New(),
		TenantID: tenantID,
		Email:    "teacher@acme.com",
		Role:     models.RoleTeacher,
		Status:   models.StatusApproved,
	}

	t.Run("missing token is 401", func(t *testing.T) {
		router := authTestRouter(jwtSvc, &stubUserResolver{user: user})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "MISSING_TOKEN")
	})

	t.Run("malformed token is 401", func(t *testing.T) {
		router := authTestRouter(jwtSvc, &stubUserResolver{user: user})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "INVALID_TOKEN")
	})

	t.Run("expired token is 401", func(t *testing.T) {
		expired := services.NewJWTService("test-secret", -time.Minute)
		token, err := expired.GenerateToken(user)
		require.NoError(t, err)

		router := authTestRouter(jwtSvc, &stubUserResolver{user: user})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("vanished user is 404", func(t *testing.T) {
		token, err := jwtSvc.GenerateToken(user)
		require.NoError(t, err)

		router := authTestRouter(jwtSvc, &stubUserResolver{err: repository.ErrNotFound})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		token, err := jwtSvc.GenerateToken(user)
		require.NoError(t, err)

		router := authTestRouter(jwtSvc, &stubUserResolver{user: user})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), tenantID.String())
		assert.Contains(t, rec.Body.String(), models.RoleTeacher)
	})

	t.Run("bearer scheme is case-insensitive", func(t *testing.T) {
		token, err := jwtSvc.GenerateToken(user)
		require.NoError(t, err)

		router := authTestRouter(jwtSvc, &stubUserResolver{user: user})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "bearer "+token)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
