package entity

import (
	"time"

	"merchops/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoCampDoc represents a camp in MongoDB
type MongoCampDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Location  string             `bson:"location"`
	StartDate time.Time          `bson:"startDate"`
	EndDate   time.Time          `bson:"endDate"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoCampDoc) ToDomain() *domain.Camp {
	return &domain.Camp{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Location:  d.Location,
		StartDate: d.StartDate,
		EndDate:   d.EndDate,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// MongoCampDocFromDomain converts a domain entity to a MongoDB document
func MongoCampDocFromDomain(camp *domain.Camp) *MongoCampDoc {
	doc := &MongoCampDoc{
		Name:      camp.Name,
		Location:  camp.Location,
		StartDate: camp.StartDate,
		EndDate:   camp.EndDate,
		CreatedAt: camp.CreatedAt,
		UpdatedAt: camp.UpdatedAt,
	}

	if camp.ID != "" {
		if objID, err := primitive.ObjectIDFromHex(camp.ID); err == nil {
			doc.ID = objID
		}
	}

	return doc
}
