package repository

import (
	"context"
	"fmt"
	"time"

	"merchops/internal/domain"
	"merchops/internal/infrastructure/repository/entity"
	"merchops/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRegistrationRepository implements RegistrationRepository using MongoDB
type MongoRegistrationRepository struct {
	collection *mongo.Collection
}

// NewMongoRegistrationRepository creates a new MongoDB registration repository
func NewMongoRegistrationRepository(db *mongo.Database) ports.RegistrationRepository {
	return &MongoRegistrationRepository{
		collection: db.Collection("registrations"),
	}
}

// Create creates a new registration and fills in its generated id
func (r *MongoRegistrationRepository) Create(ctx context.Context, registration *domain.Registration) error {
	doc := entity.MongoRegistrationDocFromDomain(registration)
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	doc.UpdatedAt = time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}

	registration.ID = doc.ID.Hex()
	return nil
}

// ListByCamp retrieves all registrations for a camp
func (r *MongoRegistrationRepository) ListByCamp(ctx context.Context, campID string) ([]*domain.Registration, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"campId": campID})
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer cursor.Close(ctx)

	var registrations []*domain.Registration
	for cursor.Next(ctx) {
		var doc entity.MongoRegistrationDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode registration: %w", err)
		}
		registrations = append(registrations, doc.ToDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return registrations, nil
}

// GetByOrderID retrieves a registration by its linked Shopify order id
func (r *MongoRegistrationRepository) GetByOrderID(ctx context.Context, orderID uint64) (*domain.Registration, error) {
	var doc entity.MongoRegistrationDoc
	err := r.collection.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}

	return doc.ToDomain(), nil
}

// UpdateStatusByOrderID updates the status of the registration linked
// to the given order. Orders without a registration are a no-op.
func (r *MongoRegistrationRepository) UpdateStatusByOrderID(ctx context.Context, orderID uint64, status domain.RegistrationStatus) error {
	update := bson.M{
		"$set": bson.M{
			"status":    string(status),
			"updatedAt": time.Now(),
		},
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"orderId": orderID}, update)
	if err != nil {
		return fmt.Errorf("failed to update registration status: %w", err)
	}

	return nil
}
