package officers

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/crimewatch/crimewatch-api/internal/features/auth"
)

// Officer ranks, lowest to highest.
const (
	RankASP = "ASP"
	RankDSP = "DSP"
	RankSP  = "SP"
	RankCSP = "CSP"
	RankACP = "ACP"
	RankDCP = "DCP"
	RankCP  = "CP"
)

var validRanks = map[string]bool{
	RankASP: true,
	RankDSP: true,
	RankSP:  true,
	RankCSP: true,
	RankACP: true,
	RankDCP: true,
	RankCP:  true,
}

// IsValidRank reports whether the given rank is one of the known ranks
func IsValidRank(rank string) bool {
	return validRanks[rank]
}

// Officer represents an officer profile linked to a user account
type Officer struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID  `bson:"userId" json:"userId"`
	BadgeNumber  string              `bson:"badgeNumber" json:"badgeNumber"`
	Rank         string              `bson:"rank" json:"rank"`
	DepartmentID *primitive.ObjectID `bson:"departmentId,omitempty" json:"departmentId,omitempty"`
	OnDuty       bool                `bson:"onDuty" json:"onDuty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// OfficerDetail joins the profile with its account for admin listings
type OfficerDetail struct {
	Officer `bson:",inline"`
	User    *auth.User `bson:"user,omitempty" json:"user,omitempty"`
}

// CreateOfficerRequest represents the payload for provisioning an officer.
// It creates both the user account and the officer profile.
type CreateOfficerRequest struct {
	Email        string `json:"email" binding:"required"`
	Password     string `json:"password" binding:"required"`
	FirstName    string `json:"firstName" binding:"required"`
	LastName     string `json:"lastName" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Address      string `json:"address"`
	BadgeNumber  string `json:"badgeNumber" binding:"required"`
	Rank         string `json:"rank" binding:"required"`
	DepartmentID string `json:"departmentId" binding:"required"`
}

// UpdateOfficerRequest represents the payload for updating an officer profile
type UpdateOfficerRequest struct {
	BadgeNumber  string `json:"badgeNumber" binding:"omitempty"`
	Rank         string `json:"rank" binding:"omitempty"`
	DepartmentID string `json:"departmentId" binding:"omitempty"`
	OnDuty       *bool  `json:"onDuty" binding:"omitempty"`
}
