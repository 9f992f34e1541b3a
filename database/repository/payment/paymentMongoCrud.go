// File: database/repository/payment/paymentMongoCrud.go
package paymentRepo

import (
	"fmt"
	"time"

	"pristine/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new transaction document.
func (r *MongoPaymentRepo) Create(tx *models.Transaction) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, tx)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// SetStatus updates the status (and optionally the gateway reference) of a
// transaction.
func (r *MongoPaymentRepo) SetStatus(id string, status models.PaymentStatus, gatewayRef string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{"status": status, "updated_at": time.Now()}
	if gatewayRef != "" {
		set["transaction_id"] = gatewayRef
	}

	filter := bson.M{"id": id}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("transaction with id %s not found", id)
	}
	return nil
}

// GetByID retrieves a transaction by its unique ID.
func (r *MongoPaymentRepo) GetByID(id string) (*models.Transaction, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var tx models.Transaction
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&tx); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("transaction with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch transaction: %w", err)
	}
	return &tx, nil
}

// GetByBooking retrieves the latest transaction for a booking.
func (r *MongoPaymentRepo) GetByBooking(bookingID string) (*models.Transaction, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var tx models.Transaction
	if err := r.coll.FindOne(ctx, bson.M{"booking_id": bookingID}, opts).Decode(&tx); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("no transaction found for booking %s", bookingID)
		}
		return nil, fmt.Errorf("failed to fetch transaction: %w", err)
	}
	return &tx, nil
}
