package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Exactly one role per user; admins additionally get IsStaff.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// ValidRole reports whether role is one of the known role values.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleInstructor || role == RoleAdmin
}

type User struct {
	gorm.Model
	Username  string `json:"username" gorm:"uniqueIndex;not null"`
	Email     string `json:"email" gorm:"uniqueIndex;not null"` // stored lowercased
	Password  string `json:"-" gorm:"not null"`
	FirstName string `json:"first_name" gorm:"default:''"`
	LastName  string `json:"last_name" gorm:"default:''"`
	Role      string `json:"role" gorm:"default:'student'"`
	IsStaff   bool   `json:"is_staff" gorm:"default:false"`
	LastLogin time.Time
	IsDeleted bool `json:"-" gorm:"default:false"`
}

// PublicProfile is the shape returned by /users/me and registration
type PublicProfile struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// Public strips everything not safe to return to a client
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}
