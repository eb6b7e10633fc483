package reports

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/crimewatch/crimewatch-api/pkg/errors"
	"github.com/crimewatch/crimewatch-api/internal/pkg/logger"
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	repo := &Repository{
		collection: db.Collection("reports"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "reportCode", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "departmentId", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "reporterId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	}
	if _, err := repo.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Error("Failed to create report indexes: %v", err)
	}

	return repo
}

// Create inserts a new report. The report code is regenerated and the
// insert retried when the unique index reports a collision.
func (r *Repository) Create(ctx context.Context, report *CrimeReport) error {
	now := time.Now()
	report.CreatedAt = now
	report.UpdatedAt = now

	const maxAttempts = 3
	for attempt := 0; attempt < maxAttempts; attempt++ {
		report.ReportCode = NewReportCode()
		result, err := r.collection.InsertOne(ctx, report)
		if err == nil {
			report.ID = result.InsertedID.(primitive.ObjectID)
			return nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("failed to create report: %w", err)
		}
		logger.Warn("Report code collision on %s, retrying", report.ReportCode)
	}
	return fmt.Errorf("could not allocate a unique report code: %w", apperrors.ErrInternal)
}

func (r *Repository) FindByID(ctx context.Context, id primitive.ObjectID) (*CrimeReport, error) {
	var report CrimeReport
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("report not found: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return &report, nil
}

// List returns reports matching filter, newest first, with the total
// count for pagination.
func (r *Repository) List(ctx context.Context, filter bson.M, page, limit int) ([]CrimeReport, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	defer cursor.Close(ctx)

	reports := make([]CrimeReport, 0)
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, 0, fmt.Errorf("failed to decode reports: %w", err)
	}
	return reports, total, nil
}

// Search matches q against the report code (exact, case-insensitive on
// input) or against title and location as a substring, optionally
// narrowed by status and incident type on top of the caller's scope.
func (r *Repository) Search(ctx context.Context, scope bson.M, q, status, incidentType string, page, limit int) ([]CrimeReport, int64, error) {
	filter := bson.M{}
	for k, v := range scope {
		filter[k] = v
	}
	if q != "" {
		if IsReportCode(q) {
			filter["reportCode"] = normalizeCode(q)
		} else {
			pattern := primitive.Regex{Pattern: regexQuote(q), Options: "i"}
			filter["$or"] = []bson.M{
				{"title": pattern},
				{"location": pattern},
			}
		}
	}
	if status != "" {
		filter["status"] = status
	}
	if incidentType != "" {
		filter["incidentType"] = incidentType
	}
	return r.List(ctx, filter, page, limit)
}

// Update applies a partial update and returns the fresh document.
func (r *Repository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*CrimeReport, error) {
	updates["updatedAt"] = time.Now()

	var report CrimeReport
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&report)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("report not found: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}
	return &report, nil
}

func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("report not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *Repository) Count(ctx context.Context, filter bson.M) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return count, nil
}

// CountsByStatus groups reports within scope by status.
func (r *Repository) CountsByStatus(ctx context.Context, scope bson.M) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: scope}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate report counts: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int64)
	var row struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	for cursor.Next(ctx) {
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode report counts: %w", err)
		}
		counts[row.Status] = row.Count
	}
	return counts, cursor.Err()
}

// Recent returns the newest reports within scope.
func (r *Repository) Recent(ctx context.Context, scope bson.M, limit int) ([]CrimeReport, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, scope, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent reports: %w", err)
	}
	defer cursor.Close(ctx)

	reports := make([]CrimeReport, 0)
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode recent reports: %w", err)
	}
	return reports, nil
}
