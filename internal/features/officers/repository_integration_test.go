//go:build integration

package officers

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func testDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)

	db := client.Database("crimewatch_test_" + primitive.NewObjectID().Hex())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

func TestScrubUserData(t *testing.T) {
	db := testDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	removed := primitive.NewObjectID()
	other := primitive.NewObjectID()

	_, err := db.Collection("reports").InsertMany(ctx, []interface{}{
		bson.M{"reportCode": "CR-AAAA0001", "reporterId": removed, "status": "Pending"},
		bson.M{"reportCode": "CR-AAAA0002", "reporterId": other, "status": "Pending"},
	})
	require.NoError(t, err)

	_, err = db.Collection("notifications").InsertMany(ctx, []interface{}{
		bson.M{"officerId": removed, "message": "New crime reported: CR-AAAA0001", "isRead": false},
		bson.M{"officerId": removed, "message": "New case assigned: CR-AAAA0002", "isRead": true},
		bson.M{"officerId": other, "message": "New crime reported: CR-AAAA0001", "isRead": false},
	})
	require.NoError(t, err)

	require.NoError(t, repo.ScrubUserData(ctx, removed))

	// The removed officer's report survives, anonymized.
	var report bson.M
	require.NoError(t, db.Collection("reports").FindOne(ctx, bson.M{"reportCode": "CR-AAAA0001"}).Decode(&report))
	_, hasReporter := report["reporterId"]
	require.False(t, hasReporter, "report should lose its reporter reference")

	// Other reporters keep theirs.
	require.NoError(t, db.Collection("reports").FindOne(ctx, bson.M{"reportCode": "CR-AAAA0002"}).Decode(&report))
	require.Equal(t, other, report["reporterId"])

	// The removed officer's notification rows are gone, read or not.
	count, err := db.Collection("notifications").CountDocuments(ctx, bson.M{"officerId": removed})
	require.NoError(t, err)
	require.Zero(t, count)

	count, err = db.Collection("notifications").CountDocuments(ctx, bson.M{"officerId": other})
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}
