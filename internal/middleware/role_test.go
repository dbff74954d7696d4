package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/engivid/engivid-backend/internal/config"
	"github.com/engivid/engivid-backend/internal/model"
	"github.com/engivid/engivid-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService() *service.AuthService {
	return service.NewAuthService(&config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: 4,
	}, nil)
}

func newProtectedRouter(authService *service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/protected",
		RequireJWT(authService),
		RequireProfessor(),
		func(c *gin.Context) {
			claims := GetClaims(c)
			c.JSON(http.StatusOK, gin.H{"username": claims.Username})
		},
	)
	return r
}

func TestRequireProfessorAllowsProfessor(t *testing.T) {
	authService := newTestAuthService()
	r := newProtectedRouter(authService)

	token, _, err := authService.GenerateToken(&model.User{ID: 1, Username: "drsmith", Type: model.UserTypeProfessor})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "drsmith")
}

func TestRequireProfessorRejectsStudent(t *testing.T) {
	authService := newTestAuthService()
	r := newProtectedRouter(authService)

	token, _, err := authService.GenerateToken(&model.User{ID: 2, Username: "student1", Type: model.UserTypeStudent})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "PROFESSOR_ACCESS_ONLY")
}

func TestRequireJWTRejectsMissingToken(t *testing.T) {
	authService := newTestAuthService()
	r := newProtectedRouter(authService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireJWTRejectsTamperedToken(t *testing.T) {
	authService := newTestAuthService()
	r := newProtectedRouter(authService)

	token, _, err := authService.GenerateToken(&model.User{ID: 1, Username: "drsmith", Type: model.UserTypeProfessor})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token+"x")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetClaimsReturnsNilOutsideMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetClaims(c))
}
