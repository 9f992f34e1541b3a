// File: database/repository/service/serviceMongoCrud.go
package serviceRepo

import (
	"fmt"
	"time"

	"pristine/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new service document.
func (r *MongoServiceRepo) Create(svc *models.Service) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	svc.CreatedAt = now
	svc.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, svc)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

// Update modifies an existing service document.
func (r *MongoServiceRepo) Update(svc *models.Service) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	svc.UpdatedAt = time.Now()
	filter := bson.M{"id": svc.ID}
	update := bson.M{"$set": svc}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update service with id %s: %w", svc.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("service with id %s not found", svc.ID)
	}
	return nil
}

// SoftDelete marks a service deleted. Documents are never removed so booking
// snapshots keep resolving.
func (r *MongoServiceRepo) SoftDelete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to soft-delete service with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("service with id %s not found", id)
	}
	return nil
}

// GetByID retrieves a service by its unique ID, including soft-deleted ones.
func (r *MongoServiceRepo) GetByID(id string) (*models.Service, error) {
	return r.findOne(bson.M{"id": id})
}

// GetActiveByID retrieves a service by ID, excluding soft-deleted ones.
func (r *MongoServiceRepo) GetActiveByID(id string) (*models.Service, error) {
	return r.findOne(bson.M{"id": id, "is_deleted": false})
}

func (r *MongoServiceRepo) findOne(filter bson.M) (*models.Service, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var svc models.Service
	if err := r.coll.FindOne(ctx, filter).Decode(&svc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("service not found")
		}
		return nil, fmt.Errorf("failed to fetch service: %w", err)
	}
	return &svc, nil
}

// GetAllActive retrieves every service not soft-deleted.
func (r *MongoServiceRepo) GetAllActive() ([]models.Service, error) {
	return r.findAll(bson.M{"is_deleted": false})
}

// GetAll retrieves every service including soft-deleted ones.
func (r *MongoServiceRepo) GetAll() ([]models.Service, error) {
	return r.findAll(bson.M{})
}

func (r *MongoServiceRepo) findAll(filter bson.M) ([]models.Service, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}
