package database

import (
	"context"
	"fmt"
	"time"

	notificationRepo "teamfeed/database/repository/notification"
	postRepo "teamfeed/database/repository/post"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// mongoIndexes lists the indexes backing the feed and notification queries.
var mongoIndexes = map[string][]mongo.IndexModel{
	postRepo.Collection: {
		{Keys: bson.D{{Key: "isDeleted", Value: 1}, {Key: "teams.value", Value: 1}, {Key: "createdAt", Value: -1}}},
	},
	notificationRepo.Collection: {
		{Keys: bson.D{{Key: "users.id", Value: 1}}},
	},
}

// EnsureMongoIndexes creates indexes for fields frequently used in queries.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for collection, models := range mongoIndexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}
	return nil
}
