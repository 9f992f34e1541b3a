package cleanerRepo

import (
	"context"
	"fmt"
	"time"

	"pristine/database"
	"pristine/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCleanerRepo implements CleanerRepository using MongoDB.
type MongoCleanerRepo struct {
	coll *mongo.Collection
}

// NewMongoCleanerRepo creates a new instance of CleanerRepository using MongoDB.
func NewMongoCleanerRepo() CleanerRepository {
	coll := database.Collection("cleaners")
	repo := &MongoCleanerRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoCleanerRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new cleaner document.
func (r *MongoCleanerRepo) Create(c *models.Cleaner) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, c)
	if err != nil {
		return fmt.Errorf("failed to create cleaner: %w", err)
	}
	return nil
}

// Update modifies an existing cleaner document.
func (r *MongoCleanerRepo) Update(c *models.Cleaner) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	c.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": c.ID}, bson.M{"$set": c})
	if err != nil {
		return fmt.Errorf("failed to update cleaner with id %s: %w", c.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("cleaner with id %s not found", c.ID)
	}
	return nil
}

// Deactivate removes a cleaner from the roster without deleting history.
func (r *MongoCleanerRepo) Deactivate(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"active": false, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to deactivate cleaner with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("cleaner with id %s not found", id)
	}
	return nil
}

// GetByID retrieves a cleaner by its unique ID.
func (r *MongoCleanerRepo) GetByID(id string) (*models.Cleaner, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var c models.Cleaner
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("cleaner with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch cleaner: %w", err)
	}
	return &c, nil
}

// GetAllActive retrieves every active cleaner.
func (r *MongoCleanerRepo) GetAllActive() ([]models.Cleaner, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cleaners: %w", err)
	}
	defer cursor.Close(ctx)

	var cleaners []models.Cleaner
	if err := cursor.All(ctx, &cleaners); err != nil {
		return nil, fmt.Errorf("failed to decode cleaners: %w", err)
	}
	return cleaners, nil
}
