package notifications

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/crimewatch/crimewatch-api/pkg/errors"
)

// Repository handles both the officer and the citizen notification
// collections. The two audiences never see each other's rows.
type Repository struct {
	officer *mongo.Collection
	citizen *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	officer := db.Collection("notifications")
	citizen := db.Collection("citizen_notifications")

	recipientIndex := func(field string) []mongo.IndexModel {
		return []mongo.IndexModel{
			{
				Keys: bson.D{
					{Key: field, Value: 1},
					{Key: "isRead", Value: 1},
					{Key: "createdAt", Value: -1},
				},
			},
			{
				Keys: bson.D{{Key: "createdAt", Value: 1}},
			},
		}
	}

	officer.Indexes().CreateMany(context.Background(), recipientIndex("officerId"))
	citizen.Indexes().CreateMany(context.Background(), recipientIndex("userId"))

	return &Repository{officer: officer, citizen: citizen}
}

// CreateMany inserts a batch of officer notifications
func (r *Repository) CreateMany(ctx context.Context, notifications []Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	docs := make([]interface{}, len(notifications))
	for i := range notifications {
		notifications[i].ID = primitive.NewObjectID()
		notifications[i].CreatedAt = time.Now()
		notifications[i].IsRead = false
		docs[i] = notifications[i]
	}

	_, err := r.officer.InsertMany(ctx, docs)
	return err
}

// GetForOfficer retrieves notifications for an officer, unread first
func (r *Repository) GetForOfficer(ctx context.Context, officerUserID primitive.ObjectID, unreadOnly bool, page, limit int) ([]Notification, int64, error) {
	filter := bson.M{"officerId": officerUserID}
	if unreadOnly {
		filter["isRead"] = false
	}

	opts := options.Find().
		SetSort(bson.D{
			{Key: "isRead", Value: 1},
			{Key: "createdAt", Value: -1},
		}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.officer.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	items := []Notification{}
	if err = cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}

	total, err := r.officer.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// GetByID retrieves an officer notification by ID
func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*Notification, error) {
	var n Notification
	err := r.officer.FindOne(ctx, bson.M{"_id": id}).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// CountUnread counts unread officer notifications
func (r *Repository) CountUnread(ctx context.Context, officerUserID primitive.ObjectID) (int64, error) {
	return r.officer.CountDocuments(ctx, bson.M{
		"officerId": officerUserID,
		"isRead":    false,
	})
}

// MarkAsRead marks a single officer notification as read
func (r *Repository) MarkAsRead(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.officer.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkAllAsRead marks every unread notification of one officer as read.
// Other officers' rows are untouched.
func (r *Repository) MarkAllAsRead(ctx context.Context, officerUserID primitive.ObjectID) (int64, error) {
	result, err := r.officer.UpdateMany(
		ctx,
		bson.M{"officerId": officerUserID, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// CreateCitizen inserts a single citizen notification
func (r *Repository) CreateCitizen(ctx context.Context, n *CitizenNotification) error {
	n.ID = primitive.NewObjectID()
	n.CreatedAt = time.Now()
	n.IsRead = false

	_, err := r.citizen.InsertOne(ctx, n)
	return err
}

// GetForCitizen retrieves notifications for a citizen, unread first
func (r *Repository) GetForCitizen(ctx context.Context, userID primitive.ObjectID, unreadOnly bool, page, limit int) ([]CitizenNotification, int64, error) {
	filter := bson.M{"userId": userID}
	if unreadOnly {
		filter["isRead"] = false
	}

	opts := options.Find().
		SetSort(bson.D{
			{Key: "isRead", Value: 1},
			{Key: "createdAt", Value: -1},
		}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.citizen.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	items := []CitizenNotification{}
	if err = cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}

	total, err := r.citizen.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// GetCitizenByID retrieves a citizen notification by ID
func (r *Repository) GetCitizenByID(ctx context.Context, id primitive.ObjectID) (*CitizenNotification, error) {
	var n CitizenNotification
	err := r.citizen.FindOne(ctx, bson.M{"_id": id}).Decode(&n)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// CountCitizenUnread counts unread citizen notifications
func (r *Repository) CountCitizenUnread(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.citizen.CountDocuments(ctx, bson.M{
		"userId": userID,
		"isRead": false,
	})
}

// MarkCitizenAsRead marks a single citizen notification as read
func (r *Repository) MarkCitizenAsRead(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.citizen.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkAllCitizenAsRead marks every unread notification of one citizen as read
func (r *Repository) MarkAllCitizenAsRead(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	result, err := r.citizen.UpdateMany(
		ctx,
		bson.M{"userId": userID, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}
