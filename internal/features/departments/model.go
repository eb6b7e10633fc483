package departments

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Department represents a police department that reports are routed to
type Department struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Location        string             `bson:"location,omitempty" json:"location,omitempty"`
	ContactNumber   string             `bson:"contactNumber,omitempty" json:"contactNumber,omitempty"`
	EstablishedDate *time.Time         `bson:"establishedDate,omitempty" json:"establishedDate,omitempty"`
	IsActive        bool               `bson:"isActive" json:"isActive"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DepartmentWithCount is a department plus its current officer headcount,
// used by the admin listing
type DepartmentWithCount struct {
	Department   `bson:",inline"`
	OfficerCount int64 `bson:"officerCount" json:"officerCount"`
}

// CreateDepartmentRequest represents the payload for creating a department
type CreateDepartmentRequest struct {
	Name            string `json:"name" binding:"required,min=2,max=100"`
	Location        string `json:"location" binding:"omitempty,max=200"`
	ContactNumber   string `json:"contactNumber" binding:"omitempty"`
	EstablishedDate string `json:"establishedDate" binding:"omitempty"` // YYYY-MM-DD
}

// UpdateDepartmentRequest represents the payload for updating a department
type UpdateDepartmentRequest struct {
	Name          string `json:"name" binding:"omitempty,min=2,max=100"`
	Location      string `json:"location" binding:"omitempty,max=200"`
	ContactNumber string `json:"contactNumber" binding:"omitempty"`
	IsActive      *bool  `json:"isActive" binding:"omitempty"`
}
