package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func roleRouter(user *User, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/guarded",
		func(c *gin.Context) {
			if user != nil {
				c.Set("user", user)
			}
		},
		RequireRole(roles...),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "success"})
		},
	)
	return router
}

func TestRequireRole_NoUser(t *testing.T) {
	router := roleRouter(nil, RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole_WrongRole(t *testing.T) {
	user := &User{ID: primitive.NewObjectID(), Role: RoleCitizen}
	router := roleRouter(user, RoleAdmin, RoleOfficer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_AllowedRole(t *testing.T) {
	user := &User{ID: primitive.NewObjectID(), Role: RoleOfficer}
	router := roleRouter(user, RoleAdmin, RoleOfficer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestCurrentUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	require.Nil(t, CurrentUser(c))

	user := &User{ID: primitive.NewObjectID(), Role: RoleCitizen}
	c.Set("user", user)
	require.Equal(t, user, CurrentUser(c))
}

func TestUserRoleHelpers(t *testing.T) {
	require.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	require.True(t, (&User{Role: RoleOfficer}).IsOfficer())
	require.True(t, (&User{Role: RoleCitizen}).IsCitizen())
	require.False(t, (&User{Role: RoleCitizen}).IsAdmin())
}

func TestFullName(t *testing.T) {
	u := &User{FirstName: "Jane", LastName: "Doe"}
	require.Equal(t, "Jane Doe", u.FullName())
}
