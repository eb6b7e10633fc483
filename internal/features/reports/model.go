package reports

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report statuses. Pending is the initial status; Resolved and Dismissed
// are terminal by convention, the transition graph itself is free.
const (
	StatusPending       = "Pending"
	StatusInvestigating = "Investigating"
	StatusResolved      = "Resolved"
	StatusDismissed     = "Dismissed"
)

// Priorities
const (
	PriorityLow       = "Low"
	PriorityMedium    = "Medium"
	PriorityHigh      = "High"
	PriorityEmergency = "Emergency"
)

// Incident types
const (
	IncidentAssault          = "ASSAULT"
	IncidentBurglary         = "BURGLARY"
	IncidentTheft            = "THEFT"
	IncidentRobbery          = "ROBBERY"
	IncidentVandalism        = "VANDALISM"
	IncidentFraud            = "FRAUD"
	IncidentCybercrime       = "CYBERCRIME"
	IncidentDrugOffense      = "DRUG_OFFENSE"
	IncidentTrafficAccident  = "TRAFFIC_ACCIDENT"
	IncidentDomesticViolence = "DOMESTIC_VIOLENCE"
	IncidentHarassment       = "HARASSMENT"
	IncidentOther            = "OTHER"
)

var validStatuses = map[string]bool{
	StatusPending:       true,
	StatusInvestigating: true,
	StatusResolved:      true,
	StatusDismissed:     true,
}

var validPriorities = map[string]bool{
	PriorityLow:       true,
	PriorityMedium:    true,
	PriorityHigh:      true,
	PriorityEmergency: true,
}

var validIncidentTypes = map[string]bool{
	IncidentAssault:          true,
	IncidentBurglary:         true,
	IncidentTheft:            true,
	IncidentRobbery:          true,
	IncidentVandalism:        true,
	IncidentFraud:            true,
	IncidentCybercrime:       true,
	IncidentDrugOffense:      true,
	IncidentTrafficAccident:  true,
	IncidentDomesticViolence: true,
	IncidentHarassment:       true,
	IncidentOther:            true,
}

func IsValidStatus(s string) bool       { return validStatuses[s] }
func IsValidPriority(p string) bool     { return validPriorities[p] }
func IsValidIncidentType(t string) bool { return validIncidentTypes[t] }

// Evidence references a media asset previously uploaded to Cloudinary
type Evidence struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"publicId" json:"publicId"`
	FileSize int64  `bson:"fileSize" json:"fileSize"`
	Format   string `bson:"format" json:"format"`
}

// CrimeReport represents a filed incident report
type CrimeReport struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ReportCode   string              `bson:"reportCode" json:"reportCode"`
	ReporterID   *primitive.ObjectID `bson:"reporterId,omitempty" json:"reporterId,omitempty"`
	DepartmentID *primitive.ObjectID `bson:"departmentId,omitempty" json:"departmentId,omitempty"`
	Title        string              `bson:"title" json:"title"`
	Description  string              `bson:"description" json:"description"`
	Location     string              `bson:"location" json:"location"`
	Latitude     *float64            `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude    *float64            `bson:"longitude,omitempty" json:"longitude,omitempty"`
	IncidentType string              `bson:"incidentType" json:"incidentType"`
	Priority     string              `bson:"priority" json:"priority"`
	Status       string              `bson:"status" json:"status"`
	Image        *Evidence           `bson:"image,omitempty" json:"image,omitempty"`
	Video        *Evidence           `bson:"video,omitempty" json:"video,omitempty"`
	Audio        *Evidence           `bson:"audio,omitempty" json:"audio,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// Request DTOs

// EvidenceInput carries the result of a prior call to the media upload
// endpoint
type EvidenceInput struct {
	URL      string `json:"url" binding:"required"`
	PublicID string `json:"publicId" binding:"required"`
	FileSize int64  `json:"fileSize"`
	Format   string `json:"format"`
}

type CreateReportRequest struct {
	Title        string         `json:"title" binding:"required,min=3,max=200"`
	Description  string         `json:"description" binding:"required,min=10,max=5000"`
	Location     string         `json:"location" binding:"required,min=2,max=300"`
	Latitude     *float64       `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude    *float64       `json:"longitude" binding:"omitempty,min=-180,max=180"`
	IncidentType string         `json:"incidentType" binding:"required"`
	Priority     string         `json:"priority" binding:"omitempty"`
	DepartmentID string         `json:"departmentId" binding:"omitempty"`
	Image        *EvidenceInput `json:"image" binding:"omitempty"`
	Video        *EvidenceInput `json:"video" binding:"omitempty"`
	Audio        *EvidenceInput `json:"audio" binding:"omitempty"`
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// AdminUpdateRequest mirrors the single admin update endpoint: status
// and/or department in one request.
type AdminUpdateRequest struct {
	Status       string `json:"status" binding:"omitempty"`
	DepartmentID string `json:"departmentId" binding:"omitempty"`
}

type ListQuery struct {
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=20" binding:"min=1,max=100"`
	Status string `form:"status"`
	Type   string `form:"type"`
}

type SearchQuery struct {
	Q      string `form:"q"`
	Status string `form:"status"`
	Type   string `form:"type"`
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=20" binding:"min=1,max=100"`
}
