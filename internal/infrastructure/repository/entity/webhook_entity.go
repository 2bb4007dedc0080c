package entity

import (
	"time"

	"merchops/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoWebhookEventDoc represents a logged webhook delivery in MongoDB
type MongoWebhookEventDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Topic      string             `bson:"topic"`
	Shop       string             `bson:"shop"`
	DeliveryID string             `bson:"deliveryId,omitempty"`
	Payload    []byte             `bson:"payload"`
	Verified   bool               `bson:"verified"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

// MongoWebhookEventDocFromDomain converts a domain entity to a MongoDB document
func MongoWebhookEventDocFromDomain(event *domain.WebhookEvent) *MongoWebhookEventDoc {
	return &MongoWebhookEventDoc{
		Topic:      event.Topic,
		Shop:       event.Shop,
		DeliveryID: event.DeliveryID,
		Payload:    event.Payload,
		Verified:   event.Verified,
	}
}
