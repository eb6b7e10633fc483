//go:build integration

package notifications

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

func testRepository(t *testing.T) *Repository {
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
	return NewRepository(db)
}

func TestMarkAllAsRead_OnlyTouchesOneOfficer(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	officerA := primitive.NewObjectID()
	officerB := primitive.NewObjectID()

	require.NoError(t, repo.CreateMany(ctx, []Notification{
		{OfficerID: officerA, Message: "New crime reported: CR-BEEF0001"},
		{OfficerID: officerA, Message: "New case assigned: CR-BEEF0002"},
		{OfficerID: officerB, Message: "New crime reported: CR-BEEF0001"},
		{OfficerID: officerB, Message: "Report CR-BEEF0003 status changed to Investigating"},
	}))

	modified, err := repo.MarkAllAsRead(ctx, officerA)
	require.NoError(t, err)
	require.Equal(t, int64(2), modified)

	unreadA, err := repo.CountUnread(ctx, officerA)
	require.NoError(t, err)
	require.Zero(t, unreadA)

	unreadB, err := repo.CountUnread(ctx, officerB)
	require.NoError(t, err)
	require.Equal(t, int64(2), unreadB)

	// A second pass finds nothing left to flip.
	modified, err = repo.MarkAllAsRead(ctx, officerA)
	require.NoError(t, err)
	require.Zero(t, modified)
}

func TestMarkAllAsRead_LeavesCitizenRowsAlone(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	userID := primitive.NewObjectID()
	require.NoError(t, repo.CreateCitizen(ctx, &CitizenNotification{
		UserID:  userID,
		Type:    "status_update",
		Title:   "Report status updated",
		Message: "Your report CR-BEEF0004 is now Investigating",
	}))

	// Marking all officer rows for the same ID must not reach into the
	// citizen collection.
	_, err := repo.MarkAllAsRead(ctx, userID)
	require.NoError(t, err)

	unread, err := repo.CountCitizenUnread(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, int64(1), unread)

	var row bson.M
	require.NoError(t, repo.citizen.FindOne(ctx, bson.M{"userId": userID}).Decode(&row))
	require.Equal(t, false, row["isRead"])
}
