package Models

import (
	"gorm.io/gorm"
)

// Permission levels. Middleware gates routes with Verify(level); a user
// passes when their permission is >= the required level.
const (
	PermissionDriver  = 1 // Condutor
	PermissionManager = 3 // Gestor
	PermissionAdmin   = 4 // Administrator
)

type User struct {
	gorm.Model
	Name       string `json:"name" gorm:"size:255;not null"`
	Email      string `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password   []byte `json:"-"`
	Permission int    `json:"permission" gorm:"not null;default:1"`
	IsApproved bool   `json:"is_approved" gorm:"default:true"`
}

// RoleName maps the permission level to the role label shown in the UI.
func (u *User) RoleName() string {
	switch {
	case u.Permission >= PermissionAdmin:
		return "Administrator"
	case u.Permission >= PermissionManager:
		return "Gestor"
	default:
		return "Condutor"
	}
}

// IsElevated reports whether the user may act on records they do not own.
func (u *User) IsElevated() bool {
	return u.Permission >= PermissionManager
}
