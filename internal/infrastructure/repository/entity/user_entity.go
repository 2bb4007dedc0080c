package entity

import (
	"time"

	"merchops/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoUserDoc represents a dashboard user in MongoDB
type MongoUserDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	Name         string             `bson:"name"`
	Role         string             `bson:"role"`
	PasswordHash string             `bson:"passwordHash"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoUserDoc) ToDomain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		Name:         d.Name,
		Role:         domain.Role(d.Role),
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// MongoUserDocFromDomain converts a domain entity to a MongoDB document
func MongoUserDocFromDomain(user *domain.User) *MongoUserDoc {
	doc := &MongoUserDoc{
		Email:        user.Email,
		Name:         user.Name,
		Role:         string(user.Role),
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	if user.ID != "" {
		if objID, err := primitive.ObjectIDFromHex(user.ID); err == nil {
			doc.ID = objID
		}
	}

	return doc
}
