package departments

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

// Repository handles database interactions for departments
type Repository struct {
	collection *mongo.Collection
}

// NewRepository initializes the repository and creates necessary indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("departments")

	_, _ = collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &Repository{collection: collection}
}

// Create inserts a new department
func (r *Repository) Create(ctx context.Context, dept *Department) error {
	now := time.Now()
	dept.CreatedAt = now
	dept.UpdatedAt = now
	dept.IsActive = true

	result, err := r.collection.InsertOne(ctx, dept)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("department name already taken: %w", apperrors.ErrDuplicate)
		}
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		dept.ID = oid
	}

	return nil
}

// FindByID finds a department by its MongoDB ID
func (r *Repository) FindByID(ctx context.Context, deptID primitive.ObjectID) (*Department, error) {
	var dept Department
	err := r.collection.FindOne(ctx, bson.M{"_id": deptID}).Decode(&dept)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &dept, nil
}

// List returns all departments sorted by name
func (r *Repository) List(ctx context.Context) ([]Department, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	depts := []Department{}
	if err = cursor.All(ctx, &depts); err != nil {
		return nil, err
	}
	return depts, nil
}

// ListWithCounts returns all departments with their officer headcount,
// sorted by name
func (r *Repository) ListWithCounts(ctx context.Context) ([]DepartmentWithCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         "officers",
			"localField":   "_id",
			"foreignField": "departmentId",
			"as":           "officers",
		}}},
		{{Key: "$addFields", Value: bson.M{"officerCount": bson.M{"$size": "$officers"}}}},
		{{Key: "$project", Value: bson.M{"officers": 0}}},
		{{Key: "$sort", Value: bson.D{{Key: "name", Value: 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	depts := []DepartmentWithCount{}
	if err = cursor.All(ctx, &depts); err != nil {
		return nil, err
	}
	return depts, nil
}

// Update updates specific fields of a department
func (r *Repository) Update(ctx context.Context, deptID primitive.ObjectID, updates bson.M) error {
	updates["updatedAt"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": deptID}, bson.M{"$set": updates})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("department name already taken: %w", apperrors.ErrDuplicate)
		}
		return err
	}

	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// Delete removes a department and clears dangling references. Officers and
// reports keep existing but their department becomes unassigned until an
// admin reassigns them.
func (r *Repository) Delete(ctx context.Context, deptID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": deptID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}

	db := r.collection.Database()
	clear := bson.M{"$set": bson.M{"departmentId": nil, "updatedAt": time.Now()}}

	if _, err := db.Collection("officers").UpdateMany(ctx, bson.M{"departmentId": deptID}, clear); err != nil {
		return err
	}
	if _, err := db.Collection("users").UpdateMany(ctx, bson.M{"departmentId": deptID}, clear); err != nil {
		return err
	}
	if _, err := db.Collection("reports").UpdateMany(ctx, bson.M{"departmentId": deptID}, clear); err != nil {
		return err
	}

	return nil
}

// CountOfficers returns the number of officers assigned to a department
func (r *Repository) CountOfficers(ctx context.Context, deptID primitive.ObjectID) (int64, error) {
	return r.collection.Database().Collection("officers").CountDocuments(ctx, bson.M{"departmentId": deptID})
}

// Count returns the total number of departments
func (r *Repository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
