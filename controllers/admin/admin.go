package adminController

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shoplane-dev/storefront-api/models"
	"github.com/shoplane-dev/storefront-api/rbac"
)

// GET /admin/admins — lists admin and superadmin accounts.
func GetAllAdmins(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var admins []models.User
		if err := db.Where("role IN ?", []rbac.Role{rbac.RoleAdmin, rbac.RoleSuperadmin}).
			Find(&admins).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch admins"})
			return
		}
		c.JSON(http.StatusOK, admins)
	}
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// PUT /admin/users/:user_id/role — the only way a role ever changes.
// Route is gated on the manage_admins permission (superadmin only).
func UpdateUserRole(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		var req UpdateRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		role, err := rbac.Parse(req.Role)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			}
			return
		}

		if err := db.Model(&user).Update("role", role).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Role updated", "user_id": user.ID, "role": role})
	}
}

// GET /admin/permissions/:role — shows the permission set derived from a role.
func GetRolePermissions() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := rbac.Parse(c.Param("role"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"role": role, "permissions": rbac.Permissions(role)})
	}
}
