package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noor-edu/portal-api/internal/models"
)

func performWithClaims(claims *models.JWTClaims, roles ...models.UserRole) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	r := gin.New()
	r.GET("/protected", func(c *gin.Context) {
		if claims != nil {
			c.Set(ContextUserKey, claims)
		}
	}, RequireRoles(roles...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRequireRolesAllows(t *testing.T) {
	w := performWithClaims(&models.JWTClaims{UserID: "u1", Role: models.RoleAdmin}, models.RoleAdmin, models.RoleTeacher)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesForbidsOtherRole(t *testing.T) {
	w := performWithClaims(&models.JWTClaims{UserID: "u1", Role: models.RoleStudent}, models.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolesRejectsMissingClaims(t *testing.T) {
	w := performWithClaims(nil, models.RoleAdmin)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCurrentClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, CurrentClaims(c))

	claims := &models.JWTClaims{UserID: "u1", Role: models.RoleAdmin}
	c.Set(ContextUserKey, claims)
	assert.Equal(t, claims, CurrentClaims(c))
}
