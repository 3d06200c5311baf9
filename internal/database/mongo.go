package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"plantdefender/internal/config"
	"plantdefender/internal/repository"
)

func NewMongoClient(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, nil
}

// EnsureMongoIndexes creates the lookup indexes. The email index is unique
// only when uniqueEmail is set.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database, uniqueEmail bool) error {
	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
	}
	if uniqueEmail {
		emailIndex.Options = options.Index().SetUnique(true).SetName("email_unique")
	}

	users := db.Collection(repository.UsersCollection).Indexes()
	if _, err := users.CreateMany(ctx, []mongo.IndexModel{
		emailIndex,
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}); err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}

	scans := db.Collection(repository.ScansCollection).Indexes()
	if _, err := scans.CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "id", Value: 1}, {Key: "user_id", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("create scan indexes: %w", err)
	}
	return nil
}
