package auth

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account roles. Public registration always produces a citizen; officer
// and admin accounts are provisioned by an administrator.
const (
	RoleAdmin   = "admin"
	RoleOfficer = "officer"
	RoleCitizen = "citizen"
)

// User represents an account in the system
type User struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Email        string              `bson:"email" json:"email"`
	Password     string              `bson:"password" json:"-"`
	FirstName    string              `bson:"firstName" json:"firstName"`
	LastName     string              `bson:"lastName" json:"lastName"`
	Phone        string              `bson:"phone,omitempty" json:"phone,omitempty"`
	Address      string              `bson:"address,omitempty" json:"address,omitempty"`
	Role         string              `bson:"role" json:"role"`
	DepartmentID *primitive.ObjectID `bson:"departmentId,omitempty" json:"departmentId,omitempty"`
	IsActive     bool                `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u *User) IsOfficer() bool { return u.Role == RoleOfficer }
func (u *User) IsCitizen() bool { return u.Role == RoleCitizen }

// FullName returns the display name for notifications and listings
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// RegisterRequest represents the payload for citizen self-registration
type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Address   string `json:"address"`
}

// LoginRequest represents the payload for email/password login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UpdateProfileRequest represents the payload for updating the own profile
type UpdateProfileRequest struct {
	FirstName string `json:"firstName" binding:"omitempty,min=2,max=50"`
	LastName  string `json:"lastName" binding:"omitempty,min=2,max=50"`
	Phone     string `json:"phone" binding:"omitempty"`
	Address   string `json:"address" binding:"omitempty,max=300"`
}

// ChangePasswordRequest represents the payload for changing the own password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}
