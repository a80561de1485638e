package models

import "gorm.io/gorm"

// Allowed user roles. Authorization is exact-match against these values,
// there is no seniority ordering between them.
const (
	RoleAdmin     = "admin"
	RoleUser      = "user"
	RolePremium   = "premium"
	RoleModerator = "moderator"
)

// AllowedRoles lists every valid role value
var AllowedRoles = []string{RoleAdmin, RoleUser, RolePremium, RoleModerator}

// IsValidRole reports whether role is one of the allowed role values
func IsValidRole(role string) bool {
	for _, r := range AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	gorm.Model
	Username string `json:"username"`
	Email    string `json:"email" gorm:"unique;not null"` // stored lowercase
	Password string `json:"-" gorm:"not null"`
	Role     string `json:"role" gorm:"default:'user'"`
}
