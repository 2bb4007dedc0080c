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

// MongoCampRepository implements CampRepository using MongoDB
type MongoCampRepository struct {
	collection *mongo.Collection
}

// NewMongoCampRepository creates a new MongoDB camp repository
func NewMongoCampRepository(db *mongo.Database) ports.CampRepository {
	return &MongoCampRepository{
		collection: db.Collection("camps"),
	}
}

// GetByID retrieves a camp by its id
func (r *MongoCampRepository) GetByID(ctx context.Context, id string) (*domain.Camp, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var doc entity.MongoCampDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get camp: %w", err)
	}

	return doc.ToDomain(), nil
}

// List retrieves all camps
func (r *MongoCampRepository) List(ctx context.Context) ([]*domain.Camp, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list camps: %w", err)
	}
	defer cursor.Close(ctx)

	var camps []*domain.Camp
	for cursor.Next(ctx) {
		var doc entity.MongoCampDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode camp: %w", err)
		}
		camps = append(camps, doc.ToDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return camps, nil
}

// Create creates a new camp
func (r *MongoCampRepository) Create(ctx context.Context, camp *domain.Camp) error {
	doc := entity.MongoCampDocFromDomain(camp)
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	doc.UpdatedAt = time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create camp: %w", err)
	}

	camp.ID = doc.ID.Hex()
	return nil
}
