package mongodb_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/geocoder89/birthdays/internal/apperror"
	"github.com/geocoder89/birthdays/internal/calendar"
	"github.com/geocoder89/birthdays/internal/db"
	"github.com/geocoder89/birthdays/internal/domain/user"
	"github.com/geocoder89/birthdays/internal/repo/mongodb"
)

// Runs against a real server, e.g. TEST_MONGO_URI=mongodb://127.0.0.1:27017
func TestUsersRepoIntegration(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	client, err := db.NewMongo(uri)
	require.NoError(t, err)

	database := client.Database("birthdays_test_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		_ = database.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	ctx := context.Background()
	r := mongodb.NewUsersRepo(database, nil)

	require.NoError(t, r.Ping(ctx))

	_, err = r.Retrieve(ctx, "jacob")
	assert.True(t, apperror.IsNotFound(err))

	require.NoError(t, r.Store(ctx, user.Restore("jacob", calendar.MustDate(1990, time.June, 13))))
	require.NoError(t, r.Store(ctx, user.Restore("jacob", calendar.MustDate(1992, time.February, 29))))

	got, err := r.Retrieve(ctx, "jacob")
	require.NoError(t, err)
	assert.Equal(t, "1992-02-29", got.Birthday().String())

	count, err := database.Collection(mongodb.CollectionName).CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
