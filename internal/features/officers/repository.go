package officers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/crimewatch/crimewatch-api/pkg/errors"
)

// Repository handles database interactions for officer profiles
type Repository struct {
	collection *mongo.Collection
}

// NewRepository initializes the repository and creates necessary indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("officers")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "badgeNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "departmentId", Value: 1}},
		},
	})

	return &Repository{collection: collection}
}

// Create inserts a new officer profile
func (r *Repository) Create(ctx context.Context, officer *Officer) error {
	now := time.Now()
	officer.CreatedAt = now
	officer.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, officer)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("badge number already in use: %w", apperrors.ErrDuplicate)
		}
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		officer.ID = oid
	}

	return nil
}

// FindByID finds an officer profile by its MongoDB ID
func (r *Repository) FindByID(ctx context.Context, officerID primitive.ObjectID) (*Officer, error) {
	var officer Officer
	err := r.collection.FindOne(ctx, bson.M{"_id": officerID}).Decode(&officer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &officer, nil
}

// FindByUserID finds the officer profile belonging to a user account
func (r *Repository) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*Officer, error) {
	var officer Officer
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&officer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &officer, nil
}

// List returns a page of officer profiles joined with their accounts,
// optionally filtered by department, with the total for pagination
func (r *Repository) List(ctx context.Context, departmentID *primitive.ObjectID, offset, limit int) ([]OfficerDetail, int64, error) {
	match := bson.M{}
	if departmentID != nil {
		match["departmentId"] = *departmentID
	}

	total, err := r.collection.CountDocuments(ctx, match)
	if err != nil {
		return nil, 0, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "userId",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$user", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$sort", Value: bson.D{{Key: "badgeNumber", Value: 1}}}},
		{{Key: "$skip", Value: offset}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	officers := []OfficerDetail{}
	if err = cursor.All(ctx, &officers); err != nil {
		return nil, 0, err
	}
	return officers, total, nil
}

// ListUserIDsByDepartment returns the account IDs of all officers assigned
// to a department. Used by notification fan-out.
func (r *Repository) ListUserIDsByDepartment(ctx context.Context, departmentID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"departmentId": departmentID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var officers []Officer
	if err = cursor.All(ctx, &officers); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(officers))
	for _, o := range officers {
		ids = append(ids, o.UserID)
	}
	return ids, nil
}

// Update updates specific fields of an officer profile
func (r *Repository) Update(ctx context.Context, officerID primitive.ObjectID, updates bson.M) error {
	updates["updatedAt"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": officerID}, bson.M{"$set": updates})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("badge number already in use: %w", apperrors.ErrDuplicate)
		}
		return err
	}

	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// Delete removes an officer profile
func (r *Repository) Delete(ctx context.Context, officerID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": officerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Count returns the total number of officer profiles
// ScrubUserData detaches a removed officer account from the rest of the
// data. Their reports stay on record but lose the reporter reference, so
// they read as anonymous, and their notification rows are removed.
func (r *Repository) ScrubUserData(ctx context.Context, userID primitive.ObjectID) error {
	db := r.collection.Database()

	if _, err := db.Collection("reports").UpdateMany(ctx,
		bson.M{"reporterId": userID},
		bson.M{"$unset": bson.M{"reporterId": ""}},
	); err != nil {
		return err
	}

	if _, err := db.Collection("notifications").DeleteMany(ctx,
		bson.M{"officerId": userID},
	); err != nil {
		return err
	}

	return nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
