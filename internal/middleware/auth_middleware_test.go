package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvind/placementdesk/internal/app/models"
	"github.com/arvind/placementdesk/internal/pkg/apperrors"
	"github.com/arvind/placementdesk/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "middleware-test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "placementdesk.test",
	})
}

func tokenFor(t *testing.T, svc *auth.JWTService, user *models.User) string {
	t.Helper()
	token, _, err := svc.GenerateToken(user)
	require.NoError(t, err)
	return token
}

func setupRouter(m *AuthMiddleware, roles ...models.Role) *gin.Engine {
	router := gin.New()
	group := router.Group("", m.JWTAuth())
	if len(roles) > 0 {
		group.Use(m.RolesRequired(roles...))
	}
	group.GET("/probe", func(c *gin.Context) {
		identity, _ := IdentityFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": identity.UserID, "role": identity.Role})
	})
	return router
}

func probe(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func studentUser() *models.User {
	dept := "CSE"
	return &models.User{ID: 5, Name: "Asha", Email: "asha@college.edu", Role: models.RoleStudent, Department: &dept}
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	svc := testJWTService()
	m := NewAuthMiddleware(svc, nil)
	router := setupRouter(m)

	rec := probe(router, "Bearer "+tokenFor(t, svc, studentUser()))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	m := NewAuthMiddleware(testJWTService(), nil)
	router := setupRouter(m)

	rec := probe(router, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsGarbageToken(t *testing.T) {
	m := NewAuthMiddleware(testJWTService(), nil)
	router := setupRouter(m)

	rec := probe(router, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	expired := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "middleware-test-secret",
		AccessTokenExp: -time.Minute,
		TokenIssuer:    "placementdesk.test",
	})
	m := NewAuthMiddleware(testJWTService(), nil)
	router := setupRouter(m)

	rec := probe(router, "Bearer "+tokenFor(t, expired, studentUser()))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_004")
}

func TestJWTAuthRejectsDisabledCoordinator(t *testing.T) {
	svc := testJWTService()
	dept := "ECE"
	coordinator := &models.User{ID: 9, Name: "Ravi", Email: "ravi@college.edu", Role: models.RoleCoordinator, Department: &dept, IsEnabled: false}

	m := NewAuthMiddleware(svc, func(c *gin.Context, id int64) (*models.User, error) {
		return coordinator, nil
	})
	router := setupRouter(m)

	rec := probe(router, "Bearer "+tokenFor(t, svc, coordinator))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_002")
}

func TestJWTAuthAcceptsEnabledCoordinator(t *testing.T) {
	svc := testJWTService()
	dept := "ECE"
	coordinator := &models.User{ID: 9, Name: "Ravi", Email: "ravi@college.edu", Role: models.RoleCoordinator, Department: &dept, IsEnabled: true}

	m := NewAuthMiddleware(svc, func(c *gin.Context, id int64) (*models.User, error) {
		return coordinator, nil
	})
	router := setupRouter(m)

	rec := probe(router, "Bearer "+tokenFor(t, svc, coordinator))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthRejectsDeletedCoordinator(t *testing.T) {
	svc := testJWTService()
	dept := "ECE"
	coordinator := &models.User{ID: 9, Name: "Ravi", Email: "ravi@college.edu", Role: models.RoleCoordinator, Department: &dept, IsEnabled: true}

	m := NewAuthMiddleware(svc, func(c *gin.Context, id int64) (*models.User, error) {
		return nil, apperrors.ErrUserNotFound
	})
	router := setupRouter(m)

	rec := probe(router, "Bearer "+tokenFor(t, svc, coordinator))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRolesRequiredAllowsListedRole(t *testing.T) {
	svc := testJWTService()
	m := NewAuthMiddleware(svc, nil)
	router := setupRouter(m, models.RoleStudent, models.RoleAdmin)

	rec := probe(router, "Bearer "+tokenFor(t, svc, studentUser()))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRolesRequiredForbidsOtherRoles(t *testing.T) {
	svc := testJWTService()
	m := NewAuthMiddleware(svc, nil)
	router := setupRouter(m, models.RoleAdmin)

	rec := probe(router, "Bearer "+tokenFor(t, svc, studentUser()))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH_006")
}
