package notifications

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Citizen notification types
const (
	CitizenTypeStatusUpdate = "status_update"
	CitizenTypeReminder     = "reminder"
	CitizenTypeAssignment   = "assignment"
	CitizenTypeGeneral      = "general"
)

// Notification represents an officer-facing notification, created only by
// fan-out when a report lands in or moves through the officer's department.
type Notification struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	OfficerID primitive.ObjectID  `bson:"officerId" json:"officerId"`
	ReportID  *primitive.ObjectID `bson:"reportId,omitempty" json:"reportId,omitempty"`
	Message   string              `bson:"message" json:"message"`
	IsRead    bool                `bson:"isRead" json:"isRead"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}

// CitizenNotification represents a notification for the citizen who filed
// a report
type CitizenNotification struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID  `bson:"userId" json:"userId"`
	Type      string              `bson:"type" json:"type"`
	Title     string              `bson:"title" json:"title"`
	Message   string              `bson:"message" json:"message"`
	ReportID  *primitive.ObjectID `bson:"reportId,omitempty" json:"reportId,omitempty"`
	IsRead    bool                `bson:"isRead" json:"isRead"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}

// Request DTOs

type NotificationListQuery struct {
	Page       int  `form:"page,default=1" binding:"min=1"`
	Limit      int  `form:"limit,default=20" binding:"min=1,max=50"`
	UnreadOnly bool `form:"unreadOnly"`
}

// Response DTOs

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unreadCount"`
}

type MarkReadResponse struct {
	ID     primitive.ObjectID `json:"id"`
	IsRead bool               `json:"isRead"`
}

type MarkAllReadResponse struct {
	MarkedCount int64 `json:"markedCount"`
}
