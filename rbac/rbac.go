// Package rbac is the single source of truth for access decisions. Route
// handlers never compare roles themselves; they go through HasRole /
// HasPermission or the gin middleware below.
package rbac

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Role is one of the closed set client < admin < superadmin.
type Role string

const (
	RoleClient     Role = "client"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

var (
	ErrUnknownRole  = errors.New("unknown role")
	ErrAccessDenied = errors.New("access denied")
)

// ContextRoleKey is where the auth middleware stores the principal's role.
const ContextRoleKey = "role"

var ranks = map[Role]int{
	RoleClient:     1,
	RoleAdmin:      2,
	RoleSuperadmin: 3,
}

// Permission strings, grouped by the lowest role that holds them.
const (
	PermViewProducts      = "view_products"
	PermManageOwnProfile  = "manage_own_profile"
	PermPlaceOrders       = "place_orders"
	PermViewOwnOrders     = "view_own_orders"
	PermManageCart        = "manage_cart"
	PermManageProducts    = "manage_products"
	PermViewAllOrders     = "view_all_orders"
	PermUpdateOrderStatus = "update_order_status"
	PermViewClients       = "view_clients"
	PermManageClients     = "manage_clients"
	PermManageAdmins      = "manage_admins"
	PermViewAnalytics     = "view_analytics"
	PermManageSettings    = "manage_site_settings"
	PermManagePermissions = "manage_permissions"
	PermSystemBackup      = "system_backup"
	PermSystemRestore     = "system_restore"
)

var clientPerms = []string{
	PermViewProducts,
	PermManageOwnProfile,
	PermPlaceOrders,
	PermViewOwnOrders,
	PermManageCart,
}

var adminPerms = append(append([]string{}, clientPerms...),
	PermManageProducts,
	PermViewAllOrders,
	PermUpdateOrderStatus,
	PermViewClients,
	PermManageClients,
)

var superadminPerms = append(append([]string{}, adminPerms...),
	PermManageAdmins,
	PermViewAnalytics,
	PermManageSettings,
	PermManagePermissions,
	PermSystemBackup,
	PermSystemRestore,
)

var rolePermissions = map[Role]map[string]bool{
	RoleClient:     toSet(clientPerms),
	RoleAdmin:      toSet(adminPerms),
	RoleSuperadmin: toSet(superadminPerms),
}

func toSet(perms []string) map[string]bool {
	set := make(map[string]bool, len(perms))
	for _, p := range perms {
		set[p] = true
	}
	return set
}

// Parse validates a raw role string against the closed set.
func Parse(s string) (Role, error) {
	r := Role(s)
	if _, ok := ranks[r]; !ok {
		return "", ErrUnknownRole
	}
	return r, nil
}

// Permissions returns a copy of the role's permission set.
func Permissions(role Role) []string {
	switch role {
	case RoleClient:
		return append([]string{}, clientPerms...)
	case RoleAdmin:
		return append([]string{}, adminPerms...)
	case RoleSuperadmin:
		return append([]string{}, superadminPerms...)
	}
	return nil
}

// HasRole reports whether userRole satisfies required in the hierarchy:
// rank(userRole) >= rank(required). Unknown or empty roles on either side
// deny — never default-allow.
func HasRole(userRole, required Role) bool {
	ur, ok := ranks[userRole]
	if !ok {
		return false
	}
	rr, ok := ranks[required]
	if !ok {
		return false
	}
	return ur >= rr
}

// HasPermission reports whether the role holds ANY of the requested
// permissions. An empty request denies: no requirement means no grant.
// Superadmin short-circuits; by construction it is present in every set.
func HasPermission(role Role, perms ...string) bool {
	if len(perms) == 0 {
		return false
	}
	if _, ok := ranks[role]; !ok {
		return false
	}
	if role == RoleSuperadmin {
		return true
	}
	set := rolePermissions[role]
	for _, p := range perms {
		if set[p] {
			return true
		}
	}
	return false
}

// RequireRole returns gin middleware that allows only principals whose role
// satisfies required in the hierarchy. Expects the auth middleware to have
// stored the role in context.
func RequireRole(required Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := roleFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		if !HasRole(role, required) {
			c.JSON(http.StatusForbidden, gin.H{"error": ErrAccessDenied.Error()})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePermission returns gin middleware that allows principals holding
// any of the given permissions.
func RequirePermission(perms ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := roleFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		if !HasPermission(role, perms...) {
			c.JSON(http.StatusForbidden, gin.H{"error": ErrAccessDenied.Error()})
			c.Abort()
			return
		}
		c.Next()
	}
}

func roleFromContext(c *gin.Context) (Role, bool) {
	val, exists := c.Get(ContextRoleKey)
	if !exists {
		return "", false
	}
	s, ok := val.(string)
	if !ok || s == "" {
		return "", false
	}
	return Role(s), true
}
