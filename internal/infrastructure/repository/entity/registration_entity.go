package entity

import (
	"time"

	"merchops/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoRegistrationItemDoc represents a registration line item in MongoDB
type MongoRegistrationItemDoc struct {
	Title        string `bson:"title"`
	VariantTitle string `bson:"variantTitle,omitempty"`
	SKU          string `bson:"sku,omitempty"`
	Quantity     int    `bson:"quantity"`
}

// MongoRegistrationDoc represents a registration in MongoDB
type MongoRegistrationDoc struct {
	ID           primitive.ObjectID         `bson:"_id,omitempty"`
	CampID       string                     `bson:"campId"`
	OrderID      uint64                     `bson:"orderId"`
	OrderName    string                     `bson:"orderName,omitempty"`
	CustomerName string                     `bson:"customerName"`
	Email        string                     `bson:"email"`
	Items        []MongoRegistrationItemDoc `bson:"items"`
	Status       string                     `bson:"status"`
	CreatedAt    time.Time                  `bson:"createdAt"`
	UpdatedAt    time.Time                  `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoRegistrationDoc) ToDomain() *domain.Registration {
	items := make([]domain.RegistrationItem, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, domain.RegistrationItem{
			Title:        item.Title,
			VariantTitle: item.VariantTitle,
			SKU:          item.SKU,
			Quantity:     item.Quantity,
		})
	}

	return &domain.Registration{
		ID:           d.ID.Hex(),
		CampID:       d.CampID,
		OrderID:      d.OrderID,
		OrderName:    d.OrderName,
		CustomerName: d.CustomerName,
		Email:        d.Email,
		Items:        items,
		Status:       domain.RegistrationStatus(d.Status),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// MongoRegistrationDocFromDomain converts a domain entity to a MongoDB document
func MongoRegistrationDocFromDomain(reg *domain.Registration) *MongoRegistrationDoc {
	items := make([]MongoRegistrationItemDoc, 0, len(reg.Items))
	for _, item := range reg.Items {
		items = append(items, MongoRegistrationItemDoc{
			Title:        item.Title,
			VariantTitle: item.VariantTitle,
			SKU:          item.SKU,
			Quantity:     item.Quantity,
		})
	}

	doc := &MongoRegistrationDoc{
		CampID:       reg.CampID,
		OrderID:      reg.OrderID,
		OrderName:    reg.OrderName,
		CustomerName: reg.CustomerName,
		Email:        reg.Email,
		Items:        items,
		Status:       string(reg.Status),
		CreatedAt:    reg.CreatedAt,
		UpdatedAt:    reg.UpdatedAt,
	}

	if reg.ID != "" {
		if objID, err := primitive.ObjectIDFromHex(reg.ID); err == nil {
			doc.ID = objID
		}
	}

	return doc
}
