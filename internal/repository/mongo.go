package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"plantdefender/internal/models"
)

const (
	UsersCollection = "users"
	ScansCollection = "scans"
)

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(UsersCollection)}
}

func (r *MongoUserRepository) Create(ctx context.Context, user models.User) error {
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}}, opts)
}

func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	return r.findOne(ctx, bson.D{{Key: "id", Value: id}}, options.FindOne())
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.D, opts *options.FindOneOptionsBuilder) (models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

type MongoScanRepository struct {
	coll *mongo.Collection
}

func NewMongoScanRepository(db *mongo.Database) *MongoScanRepository {
	return &MongoScanRepository{coll: db.Collection(ScansCollection)}
}

func (r *MongoScanRepository) Create(ctx context.Context, scan models.Scan) error {
	if scan.Recommendations == nil {
		scan.Recommendations = []string{}
	}
	if _, err := r.coll.InsertOne(ctx, scan); err != nil {
		return fmt.Errorf("insert scan: %w", err)
	}
	return nil
}

func (r *MongoScanRepository) FindByOwner(ctx context.Context, userID string, scanID string) (models.Scan, error) {
	filter := bson.D{
		{Key: "id", Value: scanID},
		{Key: "user_id", Value: userID},
	}

	var scan models.Scan
	if err := r.coll.FindOne(ctx, filter).Decode(&scan); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Scan{}, ErrScanNotFound
		}
		return models.Scan{}, fmt.Errorf("find scan: %w", err)
	}
	return normalizeScan(scan), nil
}

func (r *MongoScanRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.Scan, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(clampLimit(limit)))

	cursor, err := r.coll.Find(ctx, bson.D{{Key: "user_id", Value: userID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find scans: %w", err)
	}
	defer cursor.Close(ctx)

	scans := make([]models.Scan, 0)
	if err := cursor.All(ctx, &scans); err != nil {
		return nil, fmt.Errorf("decode scans: %w", err)
	}
	for i := range scans {
		scans[i] = normalizeScan(scans[i])
	}
	return scans, nil
}

func normalizeScan(scan models.Scan) models.Scan {
	if scan.Recommendations == nil {
		scan.Recommendations = []string{}
	}
	return scan
}
