package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHierarchy(t *testing.T) {
	assert.True(t, HasRole(RoleAdmin, RoleClient))
	assert.True(t, HasRole(RoleSuperadmin, RoleAdmin))
	assert.True(t, HasRole(RoleClient, RoleClient))
	assert.False(t, HasRole(RoleClient, RoleAdmin))
	assert.False(t, HasRole(RoleAdmin, RoleSuperadmin))
}

func TestHierarchyFailsClosed(t *testing.T) {
	assert.False(t, HasRole("", RoleClient))
	assert.False(t, HasRole("root", RoleClient))
	assert.False(t, HasRole(RoleSuperadmin, ""))
	assert.False(t, HasRole(RoleSuperadmin, "owner"))
}

func TestParse(t *testing.T) {
	r, err := Parse("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	_, err = Parse("moderator")
	assert.ErrorIs(t, err, ErrUnknownRole)
	_, err = Parse("")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestPermissionSets(t *testing.T) {
	assert.True(t, HasPermission(RoleClient, PermManageCart))
	assert.True(t, HasPermission(RoleClient, PermPlaceOrders))
	assert.False(t, HasPermission(RoleClient, PermManageProducts))

	// Admin inherits client's set.
	assert.True(t, HasPermission(RoleAdmin, PermManageCart))
	assert.True(t, HasPermission(RoleAdmin, PermUpdateOrderStatus))
	assert.False(t, HasPermission(RoleAdmin, PermManageAdmins))

	assert.True(t, HasPermission(RoleSuperadmin, PermManageAdmins))
	assert.True(t, HasPermission(RoleSuperadmin, PermSystemBackup))
}

func TestSuperadminFastPathMatchesSet(t *testing.T) {
	// The short-circuit must be indistinguishable from set membership.
	for _, p := range Permissions(RoleSuperadmin) {
		assert.True(t, HasPermission(RoleSuperadmin, p), p)
	}
	// Every admin permission is also held.
	for _, p := range Permissions(RoleAdmin) {
		assert.True(t, HasPermission(RoleSuperadmin, p), p)
	}
}

func TestPermissionAnyOf(t *testing.T) {
	// ANY-of semantics: one match in the list grants.
	assert.True(t, HasPermission(RoleClient, PermManageProducts, PermManageCart))
	assert.False(t, HasPermission(RoleClient, PermManageProducts, PermViewAllOrders))
}

func TestPermissionFailsClosed(t *testing.T) {
	// No requirement means deny, even for superadmin.
	assert.False(t, HasPermission(RoleSuperadmin))
	assert.False(t, HasPermission(RoleClient))

	assert.False(t, HasPermission("", PermManageCart))
	assert.False(t, HasPermission("owner", PermManageCart))
}

func newTestRouter(mw gin.HandlerFunc, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded",
		func(c *gin.Context) {
			if role != "" {
				c.Set(ContextRoleKey, role)
			}
		},
		mw,
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)
	return r
}

func TestRequireRoleMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		required Role
		want     int
	}{
		{"client blocked from admin route", "client", RoleAdmin, http.StatusForbidden},
		{"admin allowed on client route", "admin", RoleClient, http.StatusOK},
		{"superadmin allowed on admin route", "superadmin", RoleAdmin, http.StatusOK},
		{"missing role is unauthorized", "", RoleClient, http.StatusUnauthorized},
		{"unknown role is forbidden", "owner", RoleClient, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			newTestRouter(RequireRole(tt.required), tt.role).ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequirePermissionMiddleware(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	newTestRouter(RequirePermission(PermManageProducts), "client").ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	newTestRouter(RequirePermission(PermManageProducts), "admin").ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
